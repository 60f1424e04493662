package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Username         string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email            string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone            string         `gorm:"size:20" json:"phone"`
	Password         string         `gorm:"size:255;not null" json:"-"`
	Role             string         `gorm:"size:20;default:'Passenger'" json:"role"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	RefreshTokenHash *string        `gorm:"size:64;index" json:"-"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ============================================================
// Catalog Tables
// ============================================================

// TravelCompany represents travel_companies table
type TravelCompany struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OwnerID   uint           `gorm:"index;not null" json:"owner_id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"size:100" json:"email"`
	Phone     string         `gorm:"size:20" json:"phone"`
	Address   string         `gorm:"size:255" json:"address"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Owner  User    `gorm:"foreignKey:OwnerID" json:"-"`
	Routes []Route `gorm:"foreignKey:CompanyID" json:"routes,omitempty"`
}

func (TravelCompany) TableName() string {
	return "travel_companies"
}

// Hotel represents hotels table
type Hotel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OwnerID   uint           `gorm:"index;not null" json:"owner_id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	City      string         `gorm:"size:100;index" json:"city"`
	Email     string         `gorm:"size:100" json:"email"`
	Phone     string         `gorm:"size:20" json:"phone"`
	Address   string         `gorm:"size:255" json:"address"`
	Stars     int            `gorm:"default:0" json:"stars"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Owner User   `gorm:"foreignKey:OwnerID" json:"-"`
	Rooms []Room `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
}

func (Hotel) TableName() string {
	return "hotels"
}

// Route represents routes table
type Route struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CompanyID   uint           `gorm:"index;not null" json:"company_id"`
	Origin      string         `gorm:"size:100;not null;index" json:"origin"`
	Destination string         `gorm:"size:100;not null;index" json:"destination"`
	DepartureAt time.Time      `gorm:"not null;index" json:"departure_at"`
	ArrivalAt   time.Time      `gorm:"not null" json:"arrival_at"`
	Price       float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Company TravelCompany `gorm:"foreignKey:CompanyID" json:"-"`
	Seats   []Seat        `gorm:"foreignKey:RouteID" json:"seats,omitempty"`
}

func (Route) TableName() string {
	return "routes"
}

// Seat represents seats table.
// The (route_id, seat_number) pair is unique; Availability flips to false
// exactly once per confirmed booking and PassengerID records who holds it.
type Seat struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RouteID      uint      `gorm:"not null;uniqueIndex:idx_route_seat" json:"route_id"`
	SeatNumber   string    `gorm:"size:10;not null;uniqueIndex:idx_route_seat" json:"seat_number"`
	Availability bool      `gorm:"default:true" json:"availability"`
	PassengerID  *uint     `gorm:"index" json:"passenger_id,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Route Route `gorm:"foreignKey:RouteID" json:"-"`
}

func (Seat) TableName() string {
	return "seats"
}

// Room represents rooms table.
// AvailableFrom/AvailableTo bound the dates the room can be booked for;
// a stay must lie entirely inside the window.
type Room struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	HotelID       uint           `gorm:"not null;uniqueIndex:idx_hotel_room" json:"hotel_id"`
	RoomNumber    string         `gorm:"size:10;not null;uniqueIndex:idx_hotel_room" json:"room_number"`
	RoomType      string         `gorm:"size:20;not null" json:"room_type"`
	PricePerNight float64        `gorm:"type:decimal(10,2);not null" json:"price_per_night"`
	Capacity      int            `gorm:"default:2" json:"capacity"`
	AvailableFrom time.Time      `gorm:"not null" json:"available_from"`
	AvailableTo   time.Time      `gorm:"not null" json:"available_to"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Hotel Hotel `gorm:"foreignKey:HotelID" json:"-"`
}

func (Room) TableName() string {
	return "rooms"
}

// ============================================================
// Booking & Reminder Tables
// ============================================================

// Booking represents bookings table.
// ServiceType selects which reference set is populated:
// Bus bookings carry RouteID+SeatID, Hotel bookings carry RoomID+CheckIn/CheckOut.
type Booking struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PassengerID uint           `gorm:"index;not null" json:"passenger_id"`
	ServiceType string         `gorm:"size:10;not null;index" json:"service_type"`
	Status      string         `gorm:"size:20;not null;default:'confirmed';index" json:"status"`
	RouteID     *uint          `gorm:"index" json:"route_id,omitempty"`
	SeatID      *uint          `gorm:"index" json:"seat_id,omitempty"`
	RoomID      *uint          `gorm:"index" json:"room_id,omitempty"`
	CheckIn     *time.Time     `json:"check_in,omitempty"`
	CheckOut    *time.Time     `json:"check_out,omitempty"`
	TotalPrice  float64        `gorm:"type:decimal(10,2)" json:"total_price"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Passenger User   `gorm:"foreignKey:PassengerID" json:"-"`
	Route     *Route `gorm:"foreignKey:RouteID" json:"route,omitempty"`
	Seat      *Seat  `gorm:"foreignKey:SeatID" json:"seat,omitempty"`
	Room      *Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingResponse DTO
type BookingResponse struct {
	ID          uint       `json:"id"`
	PassengerID uint       `json:"passenger_id"`
	ServiceType string     `json:"service_type"`
	Status      string     `json:"status"`
	RouteID     *uint      `json:"route_id,omitempty"`
	SeatID      *uint      `json:"seat_id,omitempty"`
	RoomID      *uint      `json:"room_id,omitempty"`
	CheckIn     *time.Time `json:"check_in,omitempty"`
	CheckOut    *time.Time `json:"check_out,omitempty"`
	TotalPrice  float64    `json:"total_price"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (b *Booking) ToResponse() *BookingResponse {
	return &BookingResponse{
		ID:          b.ID,
		PassengerID: b.PassengerID,
		ServiceType: b.ServiceType,
		Status:      b.Status,
		RouteID:     b.RouteID,
		SeatID:      b.SeatID,
		RoomID:      b.RoomID,
		CheckIn:     b.CheckIn,
		CheckOut:    b.CheckOut,
		TotalPrice:  b.TotalPrice,
		CreatedAt:   b.CreatedAt,
	}
}

// Reminder represents reminders table
type Reminder struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	RouteID    uint           `gorm:"index;not null" json:"route_id"`
	CreatedBy  uint           `gorm:"index;not null" json:"created_by"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	SendAt     time.Time      `gorm:"not null;index" json:"send_at"`
	Status     string         `gorm:"size:10;not null;default:'pending';index" json:"status"`
	LastError  string         `gorm:"size:255" json:"last_error,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Route      Route               `gorm:"foreignKey:RouteID" json:"-"`
	Recipients []ReminderPassenger `gorm:"foreignKey:ReminderID" json:"recipients,omitempty"`
}

func (Reminder) TableName() string {
	return "reminders"
}

// ReminderPassenger is a contact snapshot captured when the reminder is
// created, so later profile edits do not change who gets notified.
type ReminderPassenger struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ReminderID  uint   `gorm:"index;not null" json:"reminder_id"`
	PassengerID uint   `gorm:"index;not null" json:"passenger_id"`
	Email       string `gorm:"size:100;not null" json:"email"`
	Phone       string `gorm:"size:20" json:"phone"`
}

func (ReminderPassenger) TableName() string {
	return "reminder_passengers"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&TravelCompany{},
		&Hotel{},
		&Route{},
		&Seat{},
		&Room{},
		&Booking{},
		&Reminder{},
		&ReminderPassenger{},
	)
}
