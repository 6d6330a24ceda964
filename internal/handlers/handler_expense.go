package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billkhata/billkhata/internal/core/domain"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/dto"
)

// expenseHandler handles HTTP requests related to shopping expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.PATCH("/:expense_id/status", h.setExpenseStatus)
	}
}

// createExpense godoc
// @Summary Log a shopping expense
// @Description Logs a PENDING shopping expense for the calling member. Bill payments cannot be logged here.
// @Tags expenses
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	roomID := c.Param("room_id")
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), roomID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists the room's expenses, optionally scoped to one period via calculationPeriodID.
// @Tags expenses
// @Produce json
// @Param room_id path string true "Room ID"
// @Param calculationPeriodID query string false "Calculation period ID"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	roomID := c.Param("room_id")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var periodID *string
	if v := c.Query("calculationPeriodID"); v != "" {
		periodID = &v
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), roomID, periodID, userID)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}

// setExpenseStatus godoc
// @Summary Approve or reject an expense
// @Description Transitions a PENDING expense to APPROVED or REJECTED. Manager only.
// @Tags expenses
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param expense_id path string true "Expense ID"
// @Param status body dto.UpdateApprovalStatusRequest true "New status"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/expenses/{expense_id}/status [patch]
func (h *expenseHandler) setExpenseStatus(c *gin.Context) {
	roomID := c.Param("room_id")
	expenseID := c.Param("expense_id")
	var req dto.UpdateApprovalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.SetExpenseStatus(c.Request.Context(), roomID, expenseID, domain.ApprovalStatus(req.Status), userID)
	if err != nil {
		respondError(c, err, "Failed to update expense status")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
