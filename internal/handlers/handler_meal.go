package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/dto"
)

// mealHandler handles HTTP requests related to meal logging.
type mealHandler struct {
	mealService portssvc.MealSvcFacade
}

func newMealHandler(ms portssvc.MealSvcFacade) *mealHandler {
	return &mealHandler{mealService: ms}
}

func registerMealRoutes(rg *gin.RouterGroup, mealService portssvc.MealSvcFacade) {
	h := newMealHandler(mealService)

	meals := rg.Group("/meals")
	{
		meals.PUT("", h.upsertMeal)
		meals.GET("", h.listMeals)
		meals.POST("/finalize", h.finalizeDate)
	}
}

// upsertMeal godoc
// @Summary Log meals for a date
// @Description Writes the full meal record for one date. The write replaces any existing record for the same date. Managers may log on behalf of another member via userID.
// @Tags meals
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param meal body dto.UpsertMealRequest true "Meal counts"
// @Success 200 {object} dto.MealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/meals [put]
func (h *mealHandler) upsertMeal(c *gin.Context) {
	roomID := c.Param("room_id")
	var req dto.UpsertMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	meal, err := h.mealService.UpsertMeal(c.Request.Context(), roomID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to save meal")
		return
	}
	c.JSON(http.StatusOK, dto.ToMealResponse(meal))
}

// listMeals godoc
// @Summary List meals
// @Description Lists the room's meal records, optionally scoped to one period via calculationPeriodID.
// @Tags meals
// @Produce json
// @Param room_id path string true "Room ID"
// @Param calculationPeriodID query string false "Calculation period ID"
// @Success 200 {array} dto.MealResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/meals [get]
func (h *mealHandler) listMeals(c *gin.Context) {
	roomID := c.Param("room_id")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var periodID *string
	if v := c.Query("calculationPeriodID"); v != "" {
		periodID = &v
	}

	meals, err := h.mealService.ListMeals(c.Request.Context(), roomID, periodID, userID)
	if err != nil {
		respondError(c, err, "Failed to list meals")
		return
	}
	c.JSON(http.StatusOK, dto.ToMealResponses(meals))
}

// finalizeDate godoc
// @Summary Finalize a meal date
// @Description Locks a date against further member edits. Manager only.
// @Tags meals
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param date body dto.FinalizeMealDateRequest true "Date to finalize"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/meals/finalize [post]
func (h *mealHandler) finalizeDate(c *gin.Context) {
	roomID := c.Param("room_id")
	var req dto.FinalizeMealDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD"})
		return
	}

	if err := h.mealService.FinalizeDate(c.Request.Context(), roomID, date, userID); err != nil {
		respondError(c, err, "Failed to finalize date")
		return
	}
	c.Status(http.StatusNoContent)
}
