package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tutorium/tutorium-backend/internal/reporting"
	"github.com/tutorium/tutorium-backend/internal/response"
	"github.com/tutorium/tutorium-backend/internal/service"
)

// OverviewHandler exposes the dashboard report and schedule endpoints.
type OverviewHandler struct {
	overviewService *service.OverviewService
}

// NewOverviewHandler creates a new OverviewHandler.
func NewOverviewHandler(overviewService *service.OverviewService) *OverviewHandler {
	return &OverviewHandler{overviewService: overviewService}
}

// GetOverview godoc
// GET /api/v1/admin/overview
// Returns the composed dashboard report, possibly a cached copy.
func (h *OverviewHandler) GetOverview(c *gin.Context) {
	report, err := h.overviewService.GetOverview(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// UpcomingSessions godoc
// GET /api/v1/admin/schedule/upcoming?days=7
// Expands the weekly timetable into dated sessions over the horizon.
func (h *OverviewHandler) UpcomingSessions(c *gin.Context) {
	days := reporting.DefaultHorizonDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		days = n
	}

	sessions, err := h.overviewService.UpcomingSessions(c.Request.Context(), days)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sessions": sessions})
}
