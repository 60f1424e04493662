package repositories

import (
	"context"

	"tripway/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// hotelRepository implements HotelRepository interface
type hotelRepository struct {
	db *gorm.DB
}

// NewHotelRepository creates a new hotel repository
func NewHotelRepository(db *gorm.DB) HotelRepository {
	return &hotelRepository{db: db}
}

// Create creates a new hotel
func (r *hotelRepository) Create(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

// GetByID gets a hotel by ID
func (r *hotelRepository) GetByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hotel).Error
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

// GetByOwnerID gets the hotel owned by a user
func (r *hotelRepository) GetByOwnerID(ctx context.Context, ownerID uint) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&hotel).Error
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

// Update updates a hotel
func (r *hotelRepository) Update(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Save(hotel).Error
}

// Delete soft deletes a hotel
func (r *hotelRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Hotel{}, id).Error
}

// List lists hotels with pagination, optionally filtered by city
func (r *hotelRepository) List(ctx context.Context, city string, offset, limit int) ([]*models.Hotel, int64, error) {
	var hotels []*models.Hotel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Hotel{})
	if city != "" {
		query = query.Where("city = ?", city)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Find(&hotels).Error; err != nil {
		return nil, 0, err
	}

	return hotels, total, nil
}

// CountRooms counts live rooms belonging to a hotel
func (r *hotelRepository) CountRooms(ctx context.Context, hotelID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).Where("hotel_id = ?", hotelID).Count(&count).Error
	return count, err
}
