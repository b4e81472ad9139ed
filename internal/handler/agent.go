package handler

import (
	"net/http"

	"github.com/Eljyoussef/POINTAGE-APP/internal/dto"
	"github.com/Eljyoussef/POINTAGE-APP/internal/service"

	"github.com/gin-gonic/gin"
)

// AgentHandler serves the mobile field-agent API: credential check and daily
// report submission. These endpoints are public (rate-limited), mirroring the
// mobile contract of the original panel.
type AgentHandler struct {
	users   service.UserService
	reports service.ReportService
}

func NewAgentHandler(users service.UserService, reports service.ReportService) *AgentHandler {
	return &AgentHandler{users: users, reports: reports}
}

// Login godoc
// @Summary Agent credential check for the mobile client
// @Tags agent
// @Accept json
// @Produce json
// @Success 200 {object} dto.AgentLoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/agent/login [post]
func (h *AgentHandler) Login(c *gin.Context) {
	var req dto.AgentLoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.users.AgentLogin(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitReport POST /v1/agent/reports
func (h *AgentHandler) SubmitReport(c *gin.Context) {
	var req dto.SubmitReportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.reports.Submit(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
