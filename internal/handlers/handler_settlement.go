package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/dto"
)

// settlementHandler handles the balances report endpoint.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: ss}
}

func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)
	rg.GET("/balances", h.getBalances)
}

// getBalances godoc
// @Summary Get member balances
// @Description Computes per-member balances for the room's ACTIVE period, or for an ended one via calculationPeriodID. Always computed from live data.
// @Tags settlement
// @Produce json
// @Param room_id path string true "Room ID"
// @Param calculationPeriodID query string false "Calculation period ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/balances [get]
func (h *settlementHandler) getBalances(c *gin.Context) {
	roomID := c.Param("room_id")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var periodID *string
	if v := c.Query("calculationPeriodID"); v != "" {
		periodID = &v
	}

	settlement, err := h.settlementService.GetBalances(c.Request.Context(), roomID, periodID, userID)
	if err != nil {
		respondError(c, err, "Failed to compute balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}
