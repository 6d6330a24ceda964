package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/dto"
)

// periodHandler handles HTTP requests related to calculation periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: ps}
}

func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.openPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:period_id", h.getPeriod)
		periods.POST("/:period_id/end", h.endPeriod)
	}
}

// openPeriod godoc
// @Summary Open a calculation period
// @Description Opens a new ACTIVE period for the room. Manager only. Fails with 409 when an ACTIVE period already exists.
// @Tags periods
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param period body dto.OpenPeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/periods [post]
func (h *periodHandler) openPeriod(c *gin.Context) {
	roomID := c.Param("room_id")
	var req dto.OpenPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	period, err := h.periodService.OpenPeriod(c.Request.Context(), roomID, req.Name, userID)
	if err != nil {
		respondError(c, err, "Failed to open period")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List calculation periods
// @Description Lists the room's periods, newest first.
// @Tags periods
// @Produce json
// @Param room_id path string true "Room ID"
// @Success 200 {array} dto.PeriodResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	roomID := c.Param("room_id")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), roomID, userID)
	if err != nil {
		respondError(c, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// getPeriod godoc
// @Summary Get a calculation period
// @Tags periods
// @Produce json
// @Param room_id path string true "Room ID"
// @Param period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/periods/{period_id} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	roomID := c.Param("room_id")
	periodID := c.Param("period_id")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetPeriod(c.Request.Context(), roomID, periodID, userID)
	if err != nil {
		respondError(c, err, "Failed to get period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// endPeriod godoc
// @Summary End a calculation period
// @Description Ends the ACTIVE period. Manager only. The period becomes immutable.
// @Tags periods
// @Produce json
// @Param room_id path string true "Room ID"
// @Param period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/periods/{period_id}/end [post]
func (h *periodHandler) endPeriod(c *gin.Context) {
	roomID := c.Param("room_id")
	periodID := c.Param("period_id")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	period, err := h.periodService.EndPeriod(c.Request.Context(), roomID, periodID, userID)
	if err != nil {
		respondError(c, err, "Failed to end period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
