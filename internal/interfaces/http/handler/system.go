package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Health states
const (
	HealthOK            = "ok"
	HealthUnavailable   = "unavailable"
	HealthSetupRequired = "setup_required"
)

// Pinger checks a backing dependency
type Pinger interface {
	Ping() error
}

// SystemHandler reports service health and build information
type SystemHandler struct {
	BaseHandler
	db        Pinger
	missing   []string
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. db may be nil while the
// service waits for setup; missing lists the settings still to configure.
func NewSystemHandler(db Pinger, missing []string, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		missing:   missing,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string   `json:"status" example:"ok"`
	Database string   `json:"database" example:"ok"`
	Missing  []string `json:"missing,omitempty"`
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"Storefront API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  200 when the database answers. 503 while it does not or while setup is incomplete.
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Failure      503 {object} APIResponse[HealthResponse]
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	if len(h.missing) > 0 {
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(HealthResponse{
			Status:   HealthSetupRequired,
			Database: HealthUnavailable,
			Missing:  h.missing,
		}))
		return
	}

	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(HealthResponse{
			Status:   HealthUnavailable,
			Database: HealthUnavailable,
		}))
		return
	}
	if err := h.db.Ping(); err != nil {
		logger.L(c.Request.Context()).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(HealthResponse{
			Status:   HealthUnavailable,
			Database: HealthUnavailable,
		}))
		return
	}

	h.Success(c, HealthResponse{Status: HealthOK, Database: HealthOK})
}

// GetSystemInfo godoc
// @ID           getSystemInfo
// @Summary      Get system information
// @Description  Returns version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      "Storefront API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
