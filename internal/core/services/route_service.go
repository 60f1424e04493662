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

// RouteService handles route and seat business logic
type RouteService struct {
	routeRepo   repositories.RouteRepository
	companyRepo repositories.CompanyRepository
}

// NewRouteService creates a new route service
func NewRouteService(routeRepo repositories.RouteRepository, companyRepo repositories.CompanyRepository) *RouteService {
	return &RouteService{
		routeRepo:   routeRepo,
		companyRepo: companyRepo,
	}
}

// RouteInput represents route create/update input
type RouteInput struct {
	CompanyID   uint      `json:"company_id" validate:"required"`
	Origin      string    `json:"origin" validate:"required"`
	Destination string    `json:"destination" validate:"required"`
	DepartureAt time.Time `json:"departure_at" validate:"required"`
	ArrivalAt   time.Time `json:"arrival_at" validate:"required"`
	Price       float64   `json:"price" validate:"required"`
	SeatNumbers []string  `json:"seat_numbers"`
}

// SeatInput represents a single seat to add to a route
type SeatInput struct {
	SeatNumber string `json:"seat_number" validate:"required"`
}

// Create creates a route with its seat map. Non-admin callers must own
// the company the route belongs to.
func (s *RouteService) Create(ctx context.Context, callerID uint, isAdmin bool, input *RouteInput) (*models.Route, error) {
	// 1. Validate input
	if input.Origin == "" || input.Destination == "" || input.Price <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !input.ArrivalAt.After(input.DepartureAt) {
		return nil, domain.ErrInvalidInput
	}

	// 2. Resolve company and check ownership
	company, err := s.companyRepo.GetByID(ctx, input.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	if !isAdmin && company.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	// 3. Reject duplicate seat numbers within the submitted map
	seen := make(map[string]bool, len(input.SeatNumbers))
	for _, num := range input.SeatNumbers {
		if num == "" || seen[num] {
			return nil, domain.ErrDuplicateSeat
		}
		seen[num] = true
	}

	// 4. Create route and seats atomically
	route := &models.Route{
		CompanyID:   input.CompanyID,
		Origin:      input.Origin,
		Destination: input.Destination,
		DepartureAt: input.DepartureAt,
		ArrivalAt:   input.ArrivalAt,
		Price:       input.Price,
	}

	if err := s.routeRepo.Create(ctx, route, input.SeatNumbers); err != nil {
		return nil, err
	}

	log.Printf("✅ Route created: %s → %s [ID: %d, seats: %d]",
		route.Origin, route.Destination, route.ID, len(input.SeatNumbers))
	return route, nil
}

// GetByID gets a route with its seat map
func (s *RouteService) GetByID(ctx context.Context, id uint) (*models.Route, error) {
	route, err := s.routeRepo.GetByIDWithSeats(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}
	return route, nil
}

// Update updates route fields (schedule and price, not the seat map)
func (s *RouteService) Update(ctx context.Context, id, callerID uint, isAdmin bool, input *RouteInput) (*models.Route, error) {
	route, err := s.getOwned(ctx, id, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	if input.Origin != "" {
		route.Origin = input.Origin
	}
	if input.Destination != "" {
		route.Destination = input.Destination
	}
	if !input.DepartureAt.IsZero() {
		route.DepartureAt = input.DepartureAt
	}
	if !input.ArrivalAt.IsZero() {
		route.ArrivalAt = input.ArrivalAt
	}
	if !route.ArrivalAt.After(route.DepartureAt) {
		return nil, domain.ErrInvalidInput
	}
	if input.Price > 0 {
		route.Price = input.Price
	}

	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, err
	}

	log.Printf("✅ Route updated [ID: %d]", route.ID)
	return route, nil
}

// Delete deletes a route and its seats
func (s *RouteService) Delete(ctx context.Context, id, callerID uint, isAdmin bool) error {
	if _, err := s.getOwned(ctx, id, callerID, isAdmin); err != nil {
		return err
	}

	if err := s.routeRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Route deleted [ID: %d]", id)
	return nil
}

// List lists routes with pagination, optionally filtered by origin/destination
func (s *RouteService) List(ctx context.Context, origin, destination string, offset, limit int) ([]*models.Route, int64, error) {
	return s.routeRepo.List(ctx, origin, destination, offset, limit)
}

// ListByCompany lists a company's routes
func (s *RouteService) ListByCompany(ctx context.Context, companyID uint, offset, limit int) ([]*models.Route, int64, error) {
	return s.routeRepo.ListByCompany(ctx, companyID, offset, limit)
}

// AddSeat adds a seat to an existing route. Duplicate numbers on the
// same route are rejected before hitting the unique index.
func (s *RouteService) AddSeat(ctx context.Context, routeID, callerID uint, isAdmin bool, input *SeatInput) (*models.Seat, error) {
	if input.SeatNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.getOwned(ctx, routeID, callerID, isAdmin); err != nil {
		return nil, err
	}

	seats, err := s.routeRepo.ListSeats(ctx, routeID)
	if err != nil {
		return nil, err
	}
	for _, existing := range seats {
		if existing.SeatNumber == input.SeatNumber {
			return nil, domain.ErrDuplicateSeat
		}
	}

	seat := &models.Seat{
		RouteID:      routeID,
		SeatNumber:   input.SeatNumber,
		Availability: true,
	}
	if err := s.routeRepo.AddSeat(ctx, seat); err != nil {
		return nil, err
	}

	log.Printf("✅ Seat %s added to route [ID: %d]", seat.SeatNumber, routeID)
	return seat, nil
}

// ListSeats lists a route's seats
func (s *RouteService) ListSeats(ctx context.Context, routeID uint) ([]*models.Seat, error) {
	if _, err := s.routeRepo.GetByID(ctx, routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}
	return s.routeRepo.ListSeats(ctx, routeID)
}

// getOwned loads a route and verifies the caller controls its company
func (s *RouteService) getOwned(ctx context.Context, id, callerID uint, isAdmin bool) (*models.Route, error) {
	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}

	if isAdmin {
		return route, nil
	}

	company, err := s.companyRepo.GetByID(ctx, route.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}
	return route, nil
}
