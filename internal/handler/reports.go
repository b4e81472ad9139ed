package handler

import (
	"net/http"

	"github.com/Eljyoussef/POINTAGE-APP/internal/apierror"
	"github.com/Eljyoussef/POINTAGE-APP/internal/middleware"
	"github.com/Eljyoussef/POINTAGE-APP/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// List GET /v1/reports[?user_id=] — daily reports of owned agents, newest
// first. Filtering by a foreign agent reads as not-found.
func (h *ReportsHandler) List(c *gin.Context) {
	var userID *uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid user_id"))
			return
		}
		userID = &id
	}
	resp, err := h.svc.ListReports(c.Request.Context(), middleware.AdminID(c), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
