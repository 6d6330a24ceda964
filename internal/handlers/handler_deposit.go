package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billkhata/billkhata/internal/core/domain"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/dto"
)

// depositHandler handles HTTP requests related to meal-fund deposits.
type depositHandler struct {
	depositService portssvc.DepositSvcFacade
}

func newDepositHandler(ds portssvc.DepositSvcFacade) *depositHandler {
	return &depositHandler{depositService: ds}
}

func registerDepositRoutes(rg *gin.RouterGroup, depositService portssvc.DepositSvcFacade) {
	h := newDepositHandler(depositService)

	deposits := rg.Group("/deposits")
	{
		deposits.POST("", h.createDeposit)
		deposits.GET("", h.listDeposits)
		deposits.PATCH("/:deposit_id/status", h.setDepositStatus)
	}
}

// createDeposit godoc
// @Summary Log a deposit
// @Description Logs a PENDING meal-fund deposit for the calling member.
// @Tags deposits
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param deposit body dto.CreateDepositRequest true "Deposit details"
// @Success 201 {object} dto.DepositResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/deposits [post]
func (h *depositHandler) createDeposit(c *gin.Context) {
	roomID := c.Param("room_id")
	var req dto.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	deposit, err := h.depositService.CreateDeposit(c.Request.Context(), roomID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create deposit")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDepositResponse(deposit))
}

// listDeposits godoc
// @Summary List deposits
// @Description Lists the room's deposits, optionally scoped to one period via calculationPeriodID.
// @Tags deposits
// @Produce json
// @Param room_id path string true "Room ID"
// @Param calculationPeriodID query string false "Calculation period ID"
// @Success 200 {array} dto.DepositResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/deposits [get]
func (h *depositHandler) listDeposits(c *gin.Context) {
	roomID := c.Param("room_id")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var periodID *string
	if v := c.Query("calculationPeriodID"); v != "" {
		periodID = &v
	}

	deposits, err := h.depositService.ListDeposits(c.Request.Context(), roomID, periodID, userID)
	if err != nil {
		respondError(c, err, "Failed to list deposits")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepositResponses(deposits))
}

// setDepositStatus godoc
// @Summary Approve or reject a deposit
// @Description Transitions a PENDING deposit to APPROVED or REJECTED. Manager only.
// @Tags deposits
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param deposit_id path string true "Deposit ID"
// @Param status body dto.UpdateApprovalStatusRequest true "New status"
// @Success 200 {object} dto.DepositResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/deposits/{deposit_id}/status [patch]
func (h *depositHandler) setDepositStatus(c *gin.Context) {
	roomID := c.Param("room_id")
	depositID := c.Param("deposit_id")
	var req dto.UpdateApprovalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	deposit, err := h.depositService.SetDepositStatus(c.Request.Context(), roomID, depositID, domain.ApprovalStatus(req.Status), userID)
	if err != nil {
		respondError(c, err, "Failed to update deposit status")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}
