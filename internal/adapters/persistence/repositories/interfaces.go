package repositories

import (
	"context"
	"time"

	"tripway/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateRefreshTokenHash(ctx context.Context, userID uint, hash *string) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CompanyRepository defines travel company repository interface
type CompanyRepository interface {
	Create(ctx context.Context, company *models.TravelCompany) error
	GetByID(ctx context.Context, id uint) (*models.TravelCompany, error)
	GetByOwnerID(ctx context.Context, ownerID uint) (*models.TravelCompany, error)
	Update(ctx context.Context, company *models.TravelCompany) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.TravelCompany, int64, error)
	CountRoutes(ctx context.Context, companyID uint) (int64, error)
}

// HotelRepository defines hotel repository interface
type HotelRepository interface {
	Create(ctx context.Context, hotel *models.Hotel) error
	GetByID(ctx context.Context, id uint) (*models.Hotel, error)
	GetByOwnerID(ctx context.Context, ownerID uint) (*models.Hotel, error)
	Update(ctx context.Context, hotel *models.Hotel) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, city string, offset, limit int) ([]*models.Hotel, int64, error)
	CountRooms(ctx context.Context, hotelID uint) (int64, error)
}

// RouteRepository defines route and seat repository interface
type RouteRepository interface {
	Create(ctx context.Context, route *models.Route, seatNumbers []string) error
	GetByID(ctx context.Context, id uint) (*models.Route, error)
	GetByIDWithSeats(ctx context.Context, id uint) (*models.Route, error)
	Update(ctx context.Context, route *models.Route) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, origin, destination string, offset, limit int) ([]*models.Route, int64, error)
	ListByCompany(ctx context.Context, companyID uint, offset, limit int) ([]*models.Route, int64, error)
	AddSeat(ctx context.Context, seat *models.Seat) error
	GetSeat(ctx context.Context, seatID uint) (*models.Seat, error)
	ListSeats(ctx context.Context, routeID uint) ([]*models.Seat, error)
}

// RoomRepository defines room repository interface
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uint) (*models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uint) error
	ListByHotel(ctx context.Context, hotelID uint, offset, limit int) ([]*models.Room, int64, error)
	ExistsByNumber(ctx context.Context, hotelID uint, roomNumber string) (bool, error)
}

// BookingRepository defines booking repository interface.
// CreateSeatBooking and CreateRoomBooking run inside a transaction so the
// unit claim and the booking row commit or roll back together.
type BookingRepository interface {
	CreateSeatBooking(ctx context.Context, booking *models.Booking) error
	CreateRoomBooking(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	ListByPassenger(ctx context.Context, passengerID uint, offset, limit int) ([]*models.Booking, int64, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.Booking, int64, error)
	UpdateStatus(ctx context.Context, booking *models.Booking, status string) error
	Delete(ctx context.Context, booking *models.Booking) error
}

// ReminderRepository defines reminder repository interface
type ReminderRepository interface {
	Create(ctx context.Context, reminder *models.Reminder, recipients []models.ReminderPassenger) error
	GetByID(ctx context.Context, id uint) (*models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, id uint) error
	ListByRoute(ctx context.Context, routeID uint, offset, limit int) ([]*models.Reminder, int64, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]*models.Reminder, error)
	MarkStatus(ctx context.Context, id uint, status, lastErr string) error
}
