package handlers

import (
	"errors"
	"strconv"

	"tripway/internal/core/domain"
	"tripway/internal/core/services"
	"tripway/internal/pkg/pagination"
	"tripway/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RoomHandler handles room endpoints
type RoomHandler struct {
	roomService *services.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoom handles room creation
// @Summary Create room
// @Description Create a room in a hotel (hotel owner or Admin)
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RoomInput true "Room data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	var input services.RoomInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	room, err := h.roomService.Create(c.Context(), userID, isAdmin, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid room data")
		case errors.Is(err, domain.ErrInvalidDateRange):
			return response.BadRequest(c, "Availability window end must be after its start")
		case errors.Is(err, domain.ErrHotelNotFound):
			return response.NotFound(c, "Hotel not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this hotel")
		default:
			return response.InternalServerError(c, "Failed to create room")
		}
	}

	return response.Created(c, "Room created successfully", room)
}

// ListRooms handles listing a hotel's rooms (public)
// @Summary List rooms
// @Description Get a paginated list of a hotel's rooms
// @Tags Rooms
// @Accept json
// @Produce json
// @Param hotelId path int true "Hotel ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hotels/{hotelId}/rooms [get]
func (h *RoomHandler) ListRooms(c *fiber.Ctx) error {
	hotelID, err := strconv.Atoi(c.Params("hotelId"))
	if err != nil || hotelID < 1 {
		return response.BadRequest(c, "Invalid hotel ID")
	}

	params := pagination.GetParams(c)

	rooms, total, err := h.roomService.ListByHotel(c.Context(), uint(hotelID), params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrHotelNotFound) {
			return response.NotFound(c, "Hotel not found")
		}
		return response.InternalServerError(c, "Failed to list rooms")
	}

	return response.Success(c, "Rooms retrieved successfully", pagination.NewResponse(rooms, params, total))
}

// GetRoom handles getting a room by ID
// @Summary Get room
// @Description Get a room by ID
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid room ID")
	}

	room, err := h.roomService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return response.NotFound(c, "Room not found")
		}
		return response.InternalServerError(c, "Failed to get room")
	}

	return response.Success(c, "Room retrieved successfully", room)
}

// UpdateRoom handles updating a room
// @Summary Update room
// @Description Update room type, price or capacity (hotel owner or Admin)
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param body body services.RoomInput true "Room fields"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id} [put]
func (h *RoomHandler) UpdateRoom(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid room ID")
	}

	userID, _ := c.Locals("userID").(uint)
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	var input services.RoomInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	room, err := h.roomService.Update(c.Context(), uint(id), userID, isAdmin, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			return response.NotFound(c, "Room not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this room")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid room data")
		case errors.Is(err, domain.ErrInvalidDateRange):
			return response.BadRequest(c, "Availability window end must be after its start")
		default:
			return response.InternalServerError(c, "Failed to update room")
		}
	}

	return response.Success(c, "Room updated successfully", room)
}

// DeleteRoom handles deleting a room
// @Summary Delete room
// @Description Delete a room (hotel owner or Admin)
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid room ID")
	}

	userID, _ := c.Locals("userID").(uint)
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	if err := h.roomService.Delete(c.Context(), uint(id), userID, isAdmin); err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			return response.NotFound(c, "Room not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this room")
		default:
			return response.InternalServerError(c, "Failed to delete room")
		}
	}

	return response.Success(c, "Room deleted successfully", nil)
}
