package repositories

import (
	"context"

	"tripway/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// routeRepository implements RouteRepository interface
type routeRepository struct {
	db *gorm.DB
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *gorm.DB) RouteRepository {
	return &routeRepository{db: db}
}

// Create creates a route together with its initial seat map.
// Route and seats commit in one transaction; a duplicate seat number
// rolls back the whole route.
func (r *routeRepository) Create(ctx context.Context, route *models.Route, seatNumbers []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(route).Error; err != nil {
			return err
		}

		for _, num := range seatNumbers {
			seat := models.Seat{
				RouteID:      route.ID,
				SeatNumber:   num,
				Availability: true,
			}
			if err := tx.Create(&seat).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID gets a route by ID
func (r *routeRepository) GetByID(ctx context.Context, id uint) (*models.Route, error) {
	var route models.Route
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// GetByIDWithSeats gets a route with its seat map preloaded
func (r *routeRepository) GetByIDWithSeats(ctx context.Context, id uint) (*models.Route, error) {
	var route models.Route
	err := r.db.WithContext(ctx).Preload("Seats").Where("id = ?", id).First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// Update updates a route
func (r *routeRepository) Update(ctx context.Context, route *models.Route) error {
	return r.db.WithContext(ctx).Save(route).Error
}

// Delete soft deletes a route and removes its seats
func (r *routeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("route_id = ?", id).Delete(&models.Seat{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Route{}, id).Error
	})
}

// List lists routes with pagination, optionally filtered by origin/destination
func (r *routeRepository) List(ctx context.Context, origin, destination string, offset, limit int) ([]*models.Route, int64, error) {
	var routes []*models.Route
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Route{})
	if origin != "" {
		query = query.Where("origin = ?", origin)
	}
	if destination != "" {
		query = query.Where("destination = ?", destination)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("departure_at ASC").Offset(offset).Limit(limit).Find(&routes).Error; err != nil {
		return nil, 0, err
	}

	return routes, total, nil
}

// ListByCompany lists a company's routes with pagination
func (r *routeRepository) ListByCompany(ctx context.Context, companyID uint, offset, limit int) ([]*models.Route, int64, error) {
	var routes []*models.Route
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Route{}).Where("company_id = ?", companyID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("departure_at ASC").Offset(offset).Limit(limit).Find(&routes).Error; err != nil {
		return nil, 0, err
	}

	return routes, total, nil
}

// AddSeat adds a single seat to an existing route
func (r *routeRepository) AddSeat(ctx context.Context, seat *models.Seat) error {
	return r.db.WithContext(ctx).Create(seat).Error
}

// GetSeat gets a seat by ID
func (r *routeRepository) GetSeat(ctx context.Context, seatID uint) (*models.Seat, error) {
	var seat models.Seat
	err := r.db.WithContext(ctx).Where("id = ?", seatID).First(&seat).Error
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

// ListSeats lists all seats of a route ordered by seat number
func (r *routeRepository) ListSeats(ctx context.Context, routeID uint) ([]*models.Seat, error) {
	var seats []*models.Seat
	err := r.db.WithContext(ctx).
		Where("route_id = ?", routeID).
		Order("seat_number ASC").
		Find(&seats).Error
	return seats, err
}
