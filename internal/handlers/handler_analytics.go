package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billkhata/billkhata/internal/core/domain"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/dto"
)

// analyticsHandler handles the dashboard analytics endpoint.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

func newAnalyticsHandler(as portssvc.AnalyticsSvcFacade) *analyticsHandler {
	return &analyticsHandler{analyticsService: as}
}

func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade) {
	h := newAnalyticsHandler(analyticsService)
	rg.GET("/analytics", h.getAnalytics)
}

// getAnalytics godoc
// @Summary Get room analytics
// @Description Returns the dashboard bundle for a range. Snapshots are cached briefly, so a response may trail the latest writes.
// @Tags analytics
// @Produce json
// @Param room_id path string true "Room ID"
// @Param range query string false "Aggregation range: 'This Month' (default) or 'Last 6 Months'"
// @Success 200 {object} dto.AnalyticsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/analytics [get]
func (h *analyticsHandler) getAnalytics(c *gin.Context) {
	roomID := c.Param("room_id")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rng := domain.RangeThisMonth
	if v := c.Query("range"); v != "" {
		rng = domain.AnalyticsRange(v)
	}

	analytics, err := h.analyticsService.GetAnalytics(c.Request.Context(), roomID, rng, userID)
	if err != nil {
		respondError(c, err, "Failed to compute analytics")
		return
	}
	c.JSON(http.StatusOK, dto.ToAnalyticsResponse(analytics))
}
