package handler

import (
	"net/http"

	"github.com/Eljyoussef/POINTAGE-APP/internal/apierror"
	"github.com/Eljyoussef/POINTAGE-APP/internal/dto"
	"github.com/Eljyoussef/POINTAGE-APP/internal/middleware"
	"github.com/Eljyoussef/POINTAGE-APP/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type UsersHandler struct {
	svc service.UserService
	rdb *redis.Client
}

func NewUsersHandler(svc service.UserService, rdb *redis.Client) *UsersHandler {
	return &UsersHandler{svc: svc, rdb: rdb}
}

// List GET /v1/users — all agents of the acting admin.
func (h *UsersHandler) List(c *gin.Context) {
	resp, err := h.svc.ListUsers(c.Request.Context(), middleware.AdminID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Provision a field agent
// @Description Creates an agent with a derived email and a generated password.
// @Description The one_time_password field is shown only in this response.
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} dto.CreateUserResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/users [post]
func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	adminID := middleware.AdminID(c)
	resp, err := h.svc.CreateUser(c.Request.Context(), adminID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	invalidateSnapshot(c, h.rdb, adminID)
	c.JSON(http.StatusCreated, resp)
}

// ResetPassword PUT /v1/users/:id/password
func (h *UsersHandler) ResetPassword(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), middleware.AdminID(c), userID, req.NewPassword); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
