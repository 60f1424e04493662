package services

import (
	"context"
	"time"

	"tripway/internal/adapters/persistence/models"
	"tripway/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User statistics
	TotalUsers      int64 `json:"total_users"`
	TotalPassengers int64 `json:"total_passengers"`
	TotalCompanies  int64 `json:"total_companies"`
	TotalHotels     int64 `json:"total_hotels"`

	// Booking statistics
	TotalBookings     int64   `json:"total_bookings"`
	ConfirmedBookings int64   `json:"confirmed_bookings"`
	CanceledBookings  int64   `json:"canceled_bookings"`
	CompletedBookings int64   `json:"completed_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`

	// Monthly statistics
	BookingsThisMonth int64   `json:"bookings_this_month"`
	RevenueThisMonth  float64 `json:"revenue_this_month"`

	// Reminder statistics
	PendingReminders int64 `json:"pending_reminders"`
	FailedReminders  int64 `json:"failed_reminders"`
}

// GetAdminDashboard builds the admin overview
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}
	db := s.db.WithContext(ctx)

	// User counts
	if err := db.Model(&models.User{}).Count(&data.TotalUsers).Error; err != nil {
		return nil, err
	}
	db.Model(&models.User{}).Where("role = ?", domain.RolePassenger).Count(&data.TotalPassengers)
	db.Model(&models.TravelCompany{}).Count(&data.TotalCompanies)
	db.Model(&models.Hotel{}).Count(&data.TotalHotels)

	// Booking counts
	db.Model(&models.Booking{}).Count(&data.TotalBookings)
	db.Model(&models.Booking{}).Where("status = ?", domain.BookingConfirmed).Count(&data.ConfirmedBookings)
	db.Model(&models.Booking{}).Where("status = ?", domain.BookingCanceled).Count(&data.CanceledBookings)
	db.Model(&models.Booking{}).Where("status = ?", domain.BookingCompleted).Count(&data.CompletedBookings)

	// Revenue excludes canceled bookings
	db.Model(&models.Booking{}).
		Where("status <> ?", domain.BookingCanceled).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&data.TotalRevenue)

	// This month
	monthStart := time.Now().AddDate(0, 0, 1-time.Now().Day()).Truncate(24 * time.Hour)
	db.Model(&models.Booking{}).Where("created_at >= ?", monthStart).Count(&data.BookingsThisMonth)
	db.Model(&models.Booking{}).
		Where("created_at >= ? AND status <> ?", monthStart, domain.BookingCanceled).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&data.RevenueThisMonth)

	// Reminders
	db.Model(&models.Reminder{}).Where("status = ?", domain.ReminderPending).Count(&data.PendingReminders)
	db.Model(&models.Reminder{}).Where("status = ?", domain.ReminderFailed).Count(&data.FailedReminders)

	return data, nil
}

// CompanyDashboardData represents a travel company's overview
type CompanyDashboardData struct {
	TotalRoutes    int64   `json:"total_routes"`
	TotalSeats     int64   `json:"total_seats"`
	SeatsBooked    int64   `json:"seats_booked"`
	TotalBookings  int64   `json:"total_bookings"`
	TotalRevenue   float64 `json:"total_revenue"`
	UpcomingRoutes int64   `json:"upcoming_routes"`
}

// GetCompanyDashboard builds the overview for one travel company
func (s *DashboardService) GetCompanyDashboard(ctx context.Context, companyID uint) (*CompanyDashboardData, error) {
	data := &CompanyDashboardData{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Route{}).Where("company_id = ?", companyID).Count(&data.TotalRoutes).Error; err != nil {
		return nil, err
	}

	routeIDs := db.Model(&models.Route{}).Where("company_id = ?", companyID).Select("id")

	db.Model(&models.Seat{}).Where("route_id IN (?)", routeIDs).Count(&data.TotalSeats)
	db.Model(&models.Seat{}).Where("route_id IN (?) AND availability = ?", routeIDs, false).Count(&data.SeatsBooked)

	db.Model(&models.Booking{}).Where("route_id IN (?)", routeIDs).Count(&data.TotalBookings)
	db.Model(&models.Booking{}).
		Where("route_id IN (?) AND status <> ?", routeIDs, domain.BookingCanceled).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&data.TotalRevenue)

	db.Model(&models.Route{}).
		Where("company_id = ? AND departure_at > ?", companyID, time.Now()).
		Count(&data.UpcomingRoutes)

	return data, nil
}

// HotelDashboardData represents a hotel's overview
type HotelDashboardData struct {
	TotalRooms    int64   `json:"total_rooms"`
	TotalBookings int64   `json:"total_bookings"`
	ActiveStays   int64   `json:"active_stays"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// GetHotelDashboard builds the overview for one hotel
func (s *DashboardService) GetHotelDashboard(ctx context.Context, hotelID uint) (*HotelDashboardData, error) {
	data := &HotelDashboardData{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Room{}).Where("hotel_id = ?", hotelID).Count(&data.TotalRooms).Error; err != nil {
		return nil, err
	}

	roomIDs := db.Model(&models.Room{}).Where("hotel_id = ?", hotelID).Select("id")

	db.Model(&models.Booking{}).Where("room_id IN (?)", roomIDs).Count(&data.TotalBookings)

	now := time.Now()
	db.Model(&models.Booking{}).
		Where("room_id IN (?) AND status = ? AND check_in <= ? AND check_out > ?",
			roomIDs, domain.BookingConfirmed, now, now).
		Count(&data.ActiveStays)

	db.Model(&models.Booking{}).
		Where("room_id IN (?) AND status <> ?", roomIDs, domain.BookingCanceled).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&data.TotalRevenue)

	return data, nil
}
