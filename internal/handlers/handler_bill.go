package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/dto"
)

// billHandler handles HTTP requests related to split bills.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

func newBillHandler(bs portssvc.BillSvcFacade) *billHandler {
	return &billHandler{billService: bs}
}

func registerBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	h := newBillHandler(billService)

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/:bill_id", h.getBill)
		bills.PATCH("/:bill_id/shares/:user_id", h.transitionShare)
	}
}

// createBill godoc
// @Summary Create a bill
// @Description Creates a bill split across members. Manager only. Omitting share amounts splits the total equally.
// @Tags bills
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	roomID := c.Param("room_id")
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), roomID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create bill")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

// listBills godoc
// @Summary List bills
// @Description Lists the room's bills with their shares. Past-due UNPAID shares show as OVERDUE.
// @Tags bills
// @Produce json
// @Param room_id path string true "Room ID"
// @Success 200 {array} dto.BillResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	roomID := c.Param("room_id")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), roomID, userID)
	if err != nil {
		respondError(c, err, "Failed to list bills")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponses(bills))
}

// getBill godoc
// @Summary Get a bill
// @Tags bills
// @Produce json
// @Param room_id path string true "Room ID"
// @Param bill_id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/bills/{bill_id} [get]
func (h *billHandler) getBill(c *gin.Context) {
	roomID := c.Param("room_id")
	billID := c.Param("bill_id")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), roomID, billID, userID)
	if err != nil {
		respondError(c, err, "Failed to get bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// transitionShare godoc
// @Summary Transition a bill share
// @Description Moves one member's share through its payment lifecycle. Members may submit their own share for approval; approving, denying, and recording payments require the manager role.
// @Tags bills
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param bill_id path string true "Bill ID"
// @Param user_id path string true "Share owner's user ID"
// @Param transition body dto.ShareTransitionRequest true "Target status"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/bills/{bill_id}/shares/{user_id} [patch]
func (h *billHandler) transitionShare(c *gin.Context) {
	roomID := c.Param("room_id")
	billID := c.Param("bill_id")
	targetUserID := c.Param("user_id")
	var req dto.ShareTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	bill, err := h.billService.TransitionShare(c.Request.Context(), roomID, billID, targetUserID, req, actorID)
	if err != nil {
		respondError(c, err, "Failed to transition share")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}
