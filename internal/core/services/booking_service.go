package services

import (
	"context"
	"errors"
	"log"
	"time"

	"tripway/internal/adapters/persistence/models"
	"tripway/internal/adapters/persistence/repositories"
	"tripway/internal/core/domain"

	"gorm.io/gorm"
)

// BookingService handles booking business logic
type BookingService struct {
	bookingRepo repositories.BookingRepository
	routeRepo   repositories.RouteRepository
	roomRepo    repositories.RoomRepository
	companyRepo repositories.CompanyRepository
	hotelRepo   repositories.HotelRepository
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	routeRepo repositories.RouteRepository,
	roomRepo repositories.RoomRepository,
	companyRepo repositories.CompanyRepository,
	hotelRepo repositories.HotelRepository,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		routeRepo:   routeRepo,
		roomRepo:    roomRepo,
		companyRepo: companyRepo,
		hotelRepo:   hotelRepo,
	}
}

// SeatBookingInput represents a bus booking request
type SeatBookingInput struct {
	RouteID uint `json:"route_id" validate:"required"`
	SeatID  uint `json:"seat_id" validate:"required"`
}

// RoomBookingInput represents a hotel booking request
type RoomBookingInput struct {
	RoomID   uint      `json:"room_id" validate:"required"`
	CheckIn  time.Time `json:"check_in" validate:"required"`
	CheckOut time.Time `json:"check_out" validate:"required"`
}

// BookSeat books a seat on a route for the calling passenger.
// The seat claim and the booking row commit atomically; losing the
// race for the seat returns ErrSeatUnavailable with nothing written.
func (s *BookingService) BookSeat(ctx context.Context, passengerID uint, input *SeatBookingInput) (*models.Booking, error) {
	// 1. Resolve route
	route, err := s.routeRepo.GetByID(ctx, input.RouteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}

	// 2. Resolve seat, must belong to the route
	seat, err := s.routeRepo.GetSeat(ctx, input.SeatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSeatNotFound
		}
		return nil, err
	}
	if seat.RouteID != route.ID {
		return nil, domain.ErrInvalidInput
	}

	// 3. Claim seat and create booking atomically
	booking := &models.Booking{
		PassengerID: passengerID,
		ServiceType: domain.ServiceTypeBus,
		Status:      domain.BookingConfirmed,
		RouteID:     &route.ID,
		SeatID:      &seat.ID,
		TotalPrice:  route.Price,
	}

	if err := s.bookingRepo.CreateSeatBooking(ctx, booking); err != nil {
		return nil, err
	}

	log.Printf("✅ Seat %s booked on route %d by passenger %d [booking: %d]",
		seat.SeatNumber, route.ID, passengerID, booking.ID)
	return booking, nil
}

// BookRoom books a room for a date range. Overlapping confirmed stays
// are rejected inside the same transaction that writes the booking.
func (s *BookingService) BookRoom(ctx context.Context, passengerID uint, input *RoomBookingInput) (*models.Booking, error) {
	// 1. Validate date range
	if !input.CheckOut.After(input.CheckIn) {
		return nil, domain.ErrInvalidDateRange
	}

	// 2. Resolve room
	room, err := s.roomRepo.GetByID(ctx, input.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}

	// 3. Price by nights
	nights := int(input.CheckOut.Sub(input.CheckIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	checkIn := input.CheckIn
	checkOut := input.CheckOut
	booking := &models.Booking{
		PassengerID: passengerID,
		ServiceType: domain.ServiceTypeHotel,
		Status:      domain.BookingConfirmed,
		RoomID:      &room.ID,
		CheckIn:     &checkIn,
		CheckOut:    &checkOut,
		TotalPrice:  float64(nights) * room.PricePerNight,
	}

	// 4. Check overlap and create atomically
	if err := s.bookingRepo.CreateRoomBooking(ctx, booking); err != nil {
		return nil, err
	}

	log.Printf("✅ Room %d booked by passenger %d for %d night(s) [booking: %d]",
		room.ID, passengerID, nights, booking.ID)
	return booking, nil
}

// GetByID gets a booking. Admins see all; passengers their own; travel
// companies and hotels the bookings on inventory they own.
func (s *BookingService) GetByID(ctx context.Context, id, callerID uint, callerRole string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	if err := s.authorize(ctx, booking, callerID, callerRole); err != nil {
		return nil, err
	}
	return booking, nil
}

// authorize checks the caller's claim on a booking: passengers their own
// rows, companies the bookings on their routes, hotels the bookings on
// their rooms.
func (s *BookingService) authorize(ctx context.Context, booking *models.Booking, callerID uint, callerRole string) error {
	switch domain.Role(callerRole) {
	case domain.RoleAdmin:
		return nil
	case domain.RolePassenger:
		if booking.PassengerID == callerID {
			return nil
		}
	case domain.RoleTravelCompany:
		if booking.RouteID != nil {
			route, err := s.routeRepo.GetByID(ctx, *booking.RouteID)
			if err != nil {
				return err
			}
			company, err := s.companyRepo.GetByID(ctx, route.CompanyID)
			if err != nil {
				return err
			}
			if company.OwnerID == callerID {
				return nil
			}
		}
	case domain.RoleHotel:
		if booking.RoomID != nil {
			room, err := s.roomRepo.GetByID(ctx, *booking.RoomID)
			if err != nil {
				return err
			}
			hotel, err := s.hotelRepo.GetByID(ctx, room.HotelID)
			if err != nil {
				return err
			}
			if hotel.OwnerID == callerID {
				return nil
			}
		}
	}
	return domain.ErrForbidden
}

// ListMine lists the calling passenger's bookings
func (s *BookingService) ListMine(ctx context.Context, passengerID uint, offset, limit int) ([]*models.Booking, int64, error) {
	return s.bookingRepo.ListByPassenger(ctx, passengerID, offset, limit)
}

// List lists all bookings, optionally filtered by status (admin only)
func (s *BookingService) List(ctx context.Context, status string, offset, limit int) ([]*models.Booking, int64, error) {
	if status != "" && !domain.ValidBookingStatus(status) {
		return nil, 0, domain.ErrInvalidStatus
	}
	return s.bookingRepo.List(ctx, status, offset, limit)
}

// UpdateStatus moves a booking to a new status. Canceled and completed
// are terminal; a booking never leaves either state. Cancellation frees
// the booked unit.
func (s *BookingService) UpdateStatus(ctx context.Context, id, callerID uint, callerRole string, status string) (*models.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	booking, err := s.GetByID(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	if booking.Status == status {
		return booking, nil
	}
	if domain.TerminalBookingStatus(booking.Status) {
		return nil, domain.ErrBookingTerminal
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking, status); err != nil {
		return nil, err
	}

	log.Printf("✅ Booking %d → %s", booking.ID, status)
	return booking, nil
}

// Cancel cancels a booking, releasing the seat or room dates
func (s *BookingService) Cancel(ctx context.Context, id, callerID uint, callerRole string) (*models.Booking, error) {
	return s.UpdateStatus(ctx, id, callerID, callerRole, domain.BookingCanceled)
}

// Delete removes a booking. A confirmed booking releases its unit on
// the way out, same as cancellation.
func (s *BookingService) Delete(ctx context.Context, id, callerID uint, callerRole string) error {
	booking, err := s.GetByID(ctx, id, callerID, callerRole)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, booking); err != nil {
		return err
	}

	log.Printf("✅ Booking deleted [ID: %d]", id)
	return nil
}
