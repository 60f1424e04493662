package domain

// Role represents user role in the system
type Role string

const (
	RoleAdmin         Role = "Admin"
	RoleTravelCompany Role = "TravelCompany"
	RoleHotel         Role = "Hotel"
	RolePassenger     Role = "Passenger"
)

// ValidRole reports whether s is one of the four known roles
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleTravelCompany, RoleHotel, RolePassenger:
		return true
	}
	return false
}

// Booking service types
const (
	ServiceTypeBus   = "Bus"
	ServiceTypeHotel = "Hotel"
)

// ValidServiceType reports whether s is a known booking service type
func ValidServiceType(s string) bool {
	return s == ServiceTypeBus || s == ServiceTypeHotel
}

// Booking statuses
const (
	BookingConfirmed = "confirmed"
	BookingCanceled  = "canceled"
	BookingCompleted = "completed"
)

// ValidBookingStatus reports whether s is a known booking status
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingConfirmed, BookingCanceled, BookingCompleted:
		return true
	}
	return false
}

// TerminalBookingStatus reports whether s is a terminal status.
// Once a booking is canceled or completed it never returns to confirmed.
func TerminalBookingStatus(s string) bool {
	return s == BookingCanceled || s == BookingCompleted
}

// Reminder statuses
const (
	ReminderPending = "pending"
	ReminderSent    = "sent"
	ReminderFailed  = "failed"
)

// Room types
const (
	RoomSingle = "single"
	RoomDouble = "double"
	RoomSuite  = "suite"
)

// ValidRoomType reports whether s is a known room type
func ValidRoomType(s string) bool {
	switch s {
	case RoomSingle, RoomDouble, RoomSuite:
		return true
	}
	return false
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// PassengerContact is a contact snapshot as stored on a reminder.
// Captured at reminder creation, independent of later user updates.
type PassengerContact struct {
	PassengerID uint   `json:"passenger_id"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}
