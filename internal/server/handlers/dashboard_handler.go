package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
	"github.com/MauLang18/Cotizacion-CF/internal/service/dashboard"
)

const maxHistory = 90

// DashboardService describes what the dashboard endpoints need.
type DashboardService interface {
	Refresh(ctx context.Context) (models.Snapshot, error)
	Latest() (models.Snapshot, error)
}

// ReportHistory lists archived daily reports.
type ReportHistory interface {
	RecentReports(ctx context.Context, limit int64) ([]models.DailyReport, error)
}

// DashboardHandler serves KPI counts and chart series.
type DashboardHandler struct {
	svc     DashboardService
	history ReportHistory
	logger  *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter. history may be nil
// when no archive is configured.
func NewDashboardHandler(svc DashboardService, history ReportHistory, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, history: history, logger: logger}
}

// Get refreshes the dashboard from the remote API.
func (h *DashboardHandler) Get(c *gin.Context) {
	snap, err := h.svc.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Latest returns the last computed snapshot without calling the remote API.
func (h *DashboardHandler) Latest(c *gin.Context) {
	snap, err := h.svc.Latest()
	if errors.Is(err, dashboard.ErrNoSnapshot) {
		c.JSON(http.StatusNotFound, gin.H{"error": "dashboard not computed yet"})
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// History lists archived daily reports, newest first.
func (h *DashboardHandler) History(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report archive disabled"})
		return
	}

	limit := int64(30)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	if limit > maxHistory {
		limit = maxHistory
	}

	reports, err := h.history.RecentReports(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if reports == nil {
		reports = []models.DailyReport{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
