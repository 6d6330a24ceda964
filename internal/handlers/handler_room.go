package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billkhata/billkhata/internal/core/domain"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/dto"
)

// roomHandler handles HTTP requests related to rooms and memberships.
type roomHandler struct {
	roomService portssvc.RoomSvcFacade
}

func newRoomHandler(rs portssvc.RoomSvcFacade) *roomHandler {
	return &roomHandler{roomService: rs}
}

// registerRoomRoutes registers room routes and nests every room-scoped
// vertical under /rooms/:room_id.
func registerRoomRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newRoomHandler(services.Room)

	rooms := rg.Group("/rooms")
	{
		rooms.POST("", h.createRoom)
		rooms.GET("", h.listUserRooms)
	}

	roomSpecific := rg.Group("/rooms/:room_id")
	{
		members := roomSpecific.Group("/members")
		{
			members.POST("", h.addRoomMember)
			members.GET("", h.listRoomMembers)
		}

		registerPeriodRoutes(roomSpecific, services.Period)
		registerDepositRoutes(roomSpecific, services.Deposit)
		registerExpenseRoutes(roomSpecific, services.Expense)
		registerMealRoutes(roomSpecific, services.Meal)
		registerBillRoutes(roomSpecific, services.Bill)
		registerSettlementRoutes(roomSpecific, services.Settlement)
		registerAnalyticsRoutes(roomSpecific, services.Analytics)
	}
}

// createRoom godoc
// @Summary Create a new room
// @Description Creates a room and makes the creator its manager.
// @Tags rooms
// @Accept json
// @Produce json
// @Param room body dto.CreateRoomRequest true "Room details"
// @Success 201 {object} dto.RoomResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms [post]
func (h *roomHandler) createRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), req.Name, req.Description, userID)
	if err != nil {
		respondError(c, err, "Failed to create room")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRoomResponse(room))
}

// listUserRooms godoc
// @Summary List rooms for current user
// @Description Lists the rooms the authenticated user belongs to.
// @Tags rooms
// @Produce json
// @Success 200 {object} dto.ListRoomsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms [get]
func (h *roomHandler) listUserRooms(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rooms, err := h.roomService.ListUserRooms(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list rooms")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRoomsResponse(rooms))
}

// addRoomMember godoc
// @Summary Add a member to a room
// @Description Adds a user to the room. Manager only.
// @Tags rooms
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param member body dto.AddRoomMemberRequest true "Member details"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/members [post]
func (h *roomHandler) addRoomMember(c *gin.Context) {
	roomID := c.Param("room_id")
	var req dto.AddRoomMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	role := domain.RoleMember
	if req.Role != "" {
		role = domain.UserRoomRole(req.Role)
	}

	if err := h.roomService.AddUserToRoom(c.Request.Context(), userID, req.UserID, roomID, role); err != nil {
		respondError(c, err, "Failed to add member")
		return
	}
	c.Status(http.StatusNoContent)
}

// listRoomMembers godoc
// @Summary List room members
// @Description Lists the current members of the room.
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room ID"
// @Success 200 {array} dto.RoomMemberResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/{room_id}/members [get]
func (h *roomHandler) listRoomMembers(c *gin.Context) {
	roomID := c.Param("room_id")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	members, err := h.roomService.ListRoomMembers(c.Request.Context(), userID, roomID)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoomMemberResponses(members))
}
