package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Eljyoussef/POINTAGE-APP/internal/apierror"
	"github.com/Eljyoussef/POINTAGE-APP/internal/dto"
	"github.com/Eljyoussef/POINTAGE-APP/internal/infra"
	"github.com/Eljyoussef/POINTAGE-APP/internal/middleware"
	"github.com/Eljyoussef/POINTAGE-APP/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	snapshotCacheTTL    = 30 * time.Second
	snapshotCachePrefix = "mapsnap:"
)

// MapsHandler serves the map page data and the position assignment
// operations. The snapshot is cached per admin in Redis and invalidated on
// every mutation within the tenancy.
type MapsHandler struct {
	svc        service.MapService
	rdb        *redis.Client
	exportPath string
}

func NewMapsHandler(svc service.MapService, rdb *redis.Client, exportPath string) *MapsHandler {
	return &MapsHandler{svc: svc, rdb: rdb, exportPath: exportPath}
}

// invalidateSnapshot drops the cached map snapshot of an admin. Best effort:
// a failed DEL only means one stale read within the TTL.
func invalidateSnapshot(c *gin.Context, rdb *redis.Client, adminID uuid.UUID) {
	if err := rdb.Del(c.Request.Context(), snapshotCachePrefix+adminID.String()).Err(); err != nil {
		log.Debug().Err(err).Str("admin_id", adminID.String()).Msg("snapshot cache invalidation failed")
	}
}

// Snapshot godoc
// @Summary Map page data: owned agents and their positions
// @Tags maps
// @Produce json
// @Success 200 {object} dto.MapSnapshotResponse
// @Router /v1/maps [get]
func (h *MapsHandler) Snapshot(c *gin.Context) {
	adminID := middleware.AdminID(c)
	ctx := c.Request.Context()
	cacheKey := snapshotCachePrefix + adminID.String()

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.MapSnapshotResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	resp, err := h.svc.Snapshot(ctx, adminID)
	if err != nil {
		serviceError(c, err)
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, snapshotCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}

// AssignPosition godoc
// @Summary Create or replace an agent's geofence
// @Tags maps
// @Accept json
// @Produce json
// @Success 200 {object} dto.PositionResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/maps/positions [post]
func (h *MapsHandler) AssignPosition(c *gin.Context) {
	var req dto.AssignPositionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	adminID := middleware.AdminID(c)
	resp, err := h.svc.AssignPosition(c.Request.Context(), adminID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	invalidateSnapshot(c, h.rdb, adminID)
	c.JSON(http.StatusOK, resp)
}

// UpdateRadius PATCH /v1/maps/positions/:id/radius
func (h *MapsHandler) UpdateRadius(c *gin.Context) {
	positionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateRadiusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	adminID := middleware.AdminID(c)
	resp, svcErr := h.svc.UpdateRadius(c.Request.Context(), adminID, positionID, *req.Radius)
	if svcErr != nil {
		serviceError(c, svcErr)
		return
	}
	invalidateSnapshot(c, h.rdb, adminID)
	c.JSON(http.StatusOK, resp)
}

// DeletePosition DELETE /v1/maps/positions/:id
func (h *MapsHandler) DeletePosition(c *gin.Context) {
	positionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	adminID := middleware.AdminID(c)
	if svcErr := h.svc.DeletePosition(c.Request.Context(), adminID, positionID); svcErr != nil {
		serviceError(c, svcErr)
		return
	}
	invalidateSnapshot(c, h.rdb, adminID)
	c.JSON(http.StatusNoContent, nil)
}

// GetPosition GET /v1/maps/positions/:id
func (h *MapsHandler) GetPosition(c *gin.Context) {
	positionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, svcErr := h.svc.ResolveOwnedPosition(c.Request.Context(), positionID, middleware.AdminID(c))
	if svcErr != nil {
		serviceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export GET /v1/maps/export — roster PDF download.
func (h *MapsHandler) Export(c *gin.Context) {
	adminID := middleware.AdminID(c)
	snap, err := h.svc.Snapshot(c.Request.Context(), adminID)
	if err != nil {
		serviceError(c, err)
		return
	}

	positionsByUser := make(map[string]dto.PositionResponse, len(snap.Positions))
	for _, p := range snap.Positions {
		positionsByUser[p.UserID] = p
	}
	entries := make([]infra.RosterEntry, 0, len(snap.Users))
	for _, u := range snap.Users {
		entry := infra.RosterEntry{Username: u.Username, Email: u.Email}
		if p, ok := positionsByUser[u.ID]; ok {
			entry.HasPosition = true
			entry.Latitude = p.Latitude
			entry.Longitude = p.Longitude
			entry.Radius = p.Radius
		}
		entries = append(entries, entry)
	}

	path, err := infra.GenerateRosterPDF(middleware.GetClaims(c).Username, entries, h.exportPath)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
