package services

import (
	"context"
	"errors"
	"log"

	"tripway/internal/adapters/persistence/models"
	"tripway/internal/adapters/persistence/repositories"
	"tripway/internal/core/domain"

	"gorm.io/gorm"
)

// HotelService handles hotel business logic
type HotelService struct {
	hotelRepo repositories.HotelRepository
}

// NewHotelService creates a new hotel service
func NewHotelService(hotelRepo repositories.HotelRepository) *HotelService {
	return &HotelService{hotelRepo: hotelRepo}
}

// HotelInput represents hotel create/update input
type HotelInput struct {
	Name    string `json:"name" validate:"required"`
	City    string `json:"city"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Stars   int    `json:"stars"`
}

// Create creates a hotel owned by the calling user
func (s *HotelService) Create(ctx context.Context, ownerID uint, input *HotelInput) (*models.Hotel, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	hotel := &models.Hotel{
		OwnerID: ownerID,
		Name:    input.Name,
		City:    input.City,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Stars:   input.Stars,
	}

	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		return nil, err
	}

	log.Printf("✅ Hotel created: %s [ID: %d]", hotel.Name, hotel.ID)
	return hotel, nil
}

// GetByID gets a hotel
func (s *HotelService) GetByID(ctx context.Context, id uint) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHotelNotFound
		}
		return nil, err
	}
	return hotel, nil
}

// GetOwn gets the hotel owned by the calling user
func (s *HotelService) GetOwn(ctx context.Context, ownerID uint) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHotelNotFound
		}
		return nil, err
	}
	return hotel, nil
}

// Update updates a hotel. Non-admin callers may only touch their own hotel.
func (s *HotelService) Update(ctx context.Context, id, callerID uint, isAdmin bool, input *HotelInput) (*models.Hotel, error) {
	hotel, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && hotel.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	if input.Name != "" {
		hotel.Name = input.Name
	}
	if input.City != "" {
		hotel.City = input.City
	}
	if input.Email != "" {
		hotel.Email = input.Email
	}
	if input.Phone != "" {
		hotel.Phone = input.Phone
	}
	if input.Address != "" {
		hotel.Address = input.Address
	}
	if input.Stars > 0 {
		hotel.Stars = input.Stars
	}

	if err := s.hotelRepo.Update(ctx, hotel); err != nil {
		return nil, err
	}

	log.Printf("✅ Hotel updated: %s [ID: %d]", hotel.Name, hotel.ID)
	return hotel, nil
}

// Delete deletes a hotel. A hotel with live rooms cannot go.
func (s *HotelService) Delete(ctx context.Context, id, callerID uint, isAdmin bool) error {
	hotel, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && hotel.OwnerID != callerID {
		return domain.ErrForbidden
	}

	rooms, err := s.hotelRepo.CountRooms(ctx, id)
	if err != nil {
		return err
	}
	if rooms > 0 {
		return domain.ErrHotelHasRooms
	}

	if err := s.hotelRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Hotel deleted [ID: %d]", id)
	return nil
}

// List lists hotels with pagination, optionally filtered by city
func (s *HotelService) List(ctx context.Context, city string, offset, limit int) ([]*models.Hotel, int64, error) {
	return s.hotelRepo.List(ctx, city, offset, limit)
}
