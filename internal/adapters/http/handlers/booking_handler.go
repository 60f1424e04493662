package handlers

import (
	"errors"
	"strconv"
	"strings"

	"tripway/internal/core/domain"
	"tripway/internal/core/services"
	"tripway/internal/pkg/pagination"
	"tripway/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookSeat handles bus seat booking
// @Summary Book a seat
// @Description Book a seat on a route (Passenger only). Fails with 409 when the seat is taken.
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SeatBookingInput true "Seat booking data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings/seats [post]
func (h *BookingHandler) BookSeat(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.SeatBookingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	booking, err := h.bookingService.BookSeat(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRouteNotFound):
			return response.NotFound(c, "Route not found")
		case errors.Is(err, domain.ErrSeatNotFound):
			return response.NotFound(c, "Seat not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Seat does not belong to this route")
		case errors.Is(err, domain.ErrSeatUnavailable):
			return response.Conflict(c, "Seat is not available")
		default:
			return response.InternalServerError(c, "Failed to book seat")
		}
	}

	return response.Created(c, "Seat booked successfully", booking.ToResponse())
}

// BookRoom handles hotel room booking
// @Summary Book a room
// @Description Book a room for a date range (Passenger only). Fails with 409 when dates overlap.
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RoomBookingInput true "Room booking data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings/rooms [post]
func (h *BookingHandler) BookRoom(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.RoomBookingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	booking, err := h.bookingService.BookRoom(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDateRange):
			return response.BadRequest(c, "Check-out must be after check-in")
		case errors.Is(err, domain.ErrRoomNotFound):
			return response.NotFound(c, "Room not found")
		case errors.Is(err, domain.ErrRoomUnavailable):
			return response.Conflict(c, "Room is not available for the selected dates")
		default:
			return response.InternalServerError(c, "Failed to book room")
		}
	}

	return response.Created(c, "Room booked successfully", booking.ToResponse())
}

// ListMyBookings handles listing the caller's bookings
// @Summary List own bookings
// @Description Get a paginated list of the caller's bookings
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Router /bookings/me [get]
func (h *BookingHandler) ListMyBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	bookings, total, err := h.bookingService.ListMine(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully", pagination.NewResponse(bookings, params, total))
}

// ListBookings handles listing all bookings (Admin only)
// @Summary List all bookings
// @Description Get a paginated list of all bookings, optionally filtered by status (Admin only)
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(confirmed, canceled, completed)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := strings.TrimSpace(c.Query("status"))

	bookings, total, err := h.bookingService.List(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return response.BadRequest(c, "Invalid booking status")
		}
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully", pagination.NewResponse(bookings, params, total))
}

// GetBooking handles getting a booking by ID
// @Summary Get booking
// @Description Get a booking (Admin, owning company/hotel, or the passenger who made it)
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking ID")
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	booking, err := h.bookingService.GetByID(c.Context(), uint(id), userID, role)
	if err != nil {
		return response.DomainError(c, err, "Failed to get booking")
	}

	return response.Success(c, "Booking retrieved successfully", booking)
}

// UpdateStatus handles booking status transitions
// @Summary Update booking status
// @Description Move a booking to a new status (Admin, owning company, or hotel). Canceled and completed are terminal.
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking ID")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	booking, err := h.bookingService.UpdateStatus(c.Context(), uint(id), userID, role, strings.TrimSpace(req.Status))
	if err != nil {
		return response.DomainError(c, err, "Failed to update booking")
	}

	return response.Success(c, "Booking updated successfully", booking.ToResponse())
}

// CancelBooking handles booking cancellation
// @Summary Cancel booking
// @Description Cancel a booking (Admin, owning company, or hotel), releasing the seat or room dates
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking ID")
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	booking, err := h.bookingService.Cancel(c.Context(), uint(id), userID, role)
	if err != nil {
		return response.DomainError(c, err, "Failed to cancel booking")
	}

	return response.Success(c, "Booking canceled successfully", booking.ToResponse())
}

// DeleteBooking handles booking deletion
// @Summary Delete booking
// @Description Delete a booking (Admin, owning company, or hotel), releasing its unit when still confirmed
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking ID")
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	if err := h.bookingService.Delete(c.Context(), uint(id), userID, role); err != nil {
		return response.DomainError(c, err, "Failed to delete booking")
	}

	return response.Success(c, "Booking deleted successfully", nil)
}
