package domain

import "errors"

// Validation errors
var (
	ErrInvalidInput         = errors.New("invalid input data")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidDateRange     = errors.New("check-out must be after check-in")
	ErrInvalidPassengerData = errors.New("reminder requires at least one passenger with email and phone")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenReused        = errors.New("refresh token no longer valid")
)

// Conflict errors
var (
	ErrUsernameTaken    = errors.New("username already taken")
	ErrEmailTaken       = errors.New("email already registered")
	ErrSeatUnavailable  = errors.New("seat is not available")
	ErrRoomUnavailable  = errors.New("room is not available for the selected dates")
	ErrDuplicateSeat    = errors.New("seat number already exists on this route")
	ErrBookingTerminal  = errors.New("booking is already canceled or completed")
	ErrBookingConflict  = errors.New("booking was modified by another request")
	ErrCompanyHasRoutes = errors.New("company still has routes")
	ErrHotelHasRooms    = errors.New("hotel still has rooms")
)

// Not-found errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCompanyNotFound  = errors.New("travel company not found")
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrRouteNotFound    = errors.New("route not found")
	ErrSeatNotFound     = errors.New("seat not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrReminderNotFound = errors.New("reminder not found")
)
