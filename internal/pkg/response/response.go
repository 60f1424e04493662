package response

import (
	"errors"

	"tripway/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// domainStatus maps the domain error taxonomy to HTTP status codes:
// validation 400, auth 401, forbidden 403, not-found 404, conflict 409.
var domainStatus = map[int][]error{
	fiber.StatusBadRequest: {
		domain.ErrInvalidInput, domain.ErrInvalidRole, domain.ErrInvalidStatus,
		domain.ErrInvalidDateRange, domain.ErrInvalidPassengerData,
	},
	fiber.StatusUnauthorized: {
		domain.ErrInvalidCredentials, domain.ErrUnauthorized,
		domain.ErrTokenExpired, domain.ErrTokenInvalid, domain.ErrTokenReused,
	},
	fiber.StatusForbidden: {
		domain.ErrForbidden,
	},
	fiber.StatusNotFound: {
		domain.ErrUserNotFound, domain.ErrCompanyNotFound, domain.ErrHotelNotFound,
		domain.ErrRouteNotFound, domain.ErrSeatNotFound, domain.ErrRoomNotFound,
		domain.ErrBookingNotFound, domain.ErrReminderNotFound,
	},
	fiber.StatusConflict: {
		domain.ErrUsernameTaken, domain.ErrEmailTaken, domain.ErrSeatUnavailable,
		domain.ErrRoomUnavailable, domain.ErrDuplicateSeat, domain.ErrBookingTerminal,
		domain.ErrBookingConflict, domain.ErrCompanyHasRoutes, domain.ErrHotelHasRooms,
	},
}

// DomainError maps a domain error onto its HTTP status with the error's
// own message; unknown errors become a 500 with the fallback message.
func DomainError(c *fiber.Ctx, err error, fallback string) error {
	for status, sentinels := range domainStatus {
		for _, sentinel := range sentinels {
			if errors.Is(err, sentinel) {
				return Error(c, status, sentinel.Error())
			}
		}
	}
	return InternalServerError(c, fallback)
}
