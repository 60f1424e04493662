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

// HotelHandler handles hotel endpoints
type HotelHandler struct {
	hotelService *services.HotelService
}

// NewHotelHandler creates a new hotel handler
func NewHotelHandler(hotelService *services.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

// CreateHotel handles hotel creation
// @Summary Create hotel
// @Description Create a hotel owned by the caller
// @Tags Hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.HotelInput true "Hotel data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /hotels [post]
func (h *HotelHandler) CreateHotel(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.HotelInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	hotel, err := h.hotelService.Create(c.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Hotel name is required")
		}
		return response.InternalServerError(c, "Failed to create hotel")
	}

	return response.Created(c, "Hotel created successfully", hotel)
}

// ListHotels handles listing hotels (public)
// @Summary List hotels
// @Description Get a paginated list of hotels, optionally filtered by city
// @Tags Hotels
// @Accept json
// @Produce json
// @Param city query string false "Filter by city"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Router /hotels [get]
func (h *HotelHandler) ListHotels(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	city := c.Query("city")

	hotels, total, err := h.hotelService.List(c.Context(), city, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list hotels")
	}

	return response.Success(c, "Hotels retrieved successfully", pagination.NewResponse(hotels, params, total))
}

// GetHotel handles getting a hotel by ID
// @Summary Get hotel
// @Description Get a hotel by ID
// @Tags Hotels
// @Accept json
// @Produce json
// @Param id path int true "Hotel ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hotels/{id} [get]
func (h *HotelHandler) GetHotel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hotel ID")
	}

	hotel, err := h.hotelService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrHotelNotFound) {
			return response.NotFound(c, "Hotel not found")
		}
		return response.InternalServerError(c, "Failed to get hotel")
	}

	return response.Success(c, "Hotel retrieved successfully", hotel)
}

// UpdateHotel handles updating a hotel
// @Summary Update hotel
// @Description Update a hotel (owner or Admin)
// @Tags Hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hotel ID"
// @Param body body services.HotelInput true "Hotel fields"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hotels/{id} [put]
func (h *HotelHandler) UpdateHotel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hotel ID")
	}

	userID, _ := c.Locals("userID").(uint)
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	var input services.HotelInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	hotel, err := h.hotelService.Update(c.Context(), uint(id), userID, isAdmin, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHotelNotFound):
			return response.NotFound(c, "Hotel not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this hotel")
		default:
			return response.InternalServerError(c, "Failed to update hotel")
		}
	}

	return response.Success(c, "Hotel updated successfully", hotel)
}

// DeleteHotel handles deleting a hotel
// @Summary Delete hotel
// @Description Delete a hotel with no remaining rooms (owner or Admin)
// @Tags Hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hotel ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /hotels/{id} [delete]
func (h *HotelHandler) DeleteHotel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hotel ID")
	}

	userID, _ := c.Locals("userID").(uint)
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	if err := h.hotelService.Delete(c.Context(), uint(id), userID, isAdmin); err != nil {
		switch {
		case errors.Is(err, domain.ErrHotelNotFound):
			return response.NotFound(c, "Hotel not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this hotel")
		case errors.Is(err, domain.ErrHotelHasRooms):
			return response.Conflict(c, "Hotel still has rooms")
		default:
			return response.InternalServerError(c, "Failed to delete hotel")
		}
	}

	return response.Success(c, "Hotel deleted successfully", nil)
}
