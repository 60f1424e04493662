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

// RoomService handles room business logic
type RoomService struct {
	roomRepo  repositories.RoomRepository
	hotelRepo repositories.HotelRepository
}

// NewRoomService creates a new room service
func NewRoomService(roomRepo repositories.RoomRepository, hotelRepo repositories.HotelRepository) *RoomService {
	return &RoomService{
		roomRepo:  roomRepo,
		hotelRepo: hotelRepo,
	}
}

// RoomInput represents room create/update input
type RoomInput struct {
	HotelID       uint      `json:"hotel_id" validate:"required"`
	RoomNumber    string    `json:"room_number" validate:"required"`
	RoomType      string    `json:"room_type" validate:"required"`
	PricePerNight float64   `json:"price_per_night" validate:"required"`
	Capacity      int       `json:"capacity"`
	AvailableFrom time.Time `json:"available_from" validate:"required"`
	AvailableTo   time.Time `json:"available_to" validate:"required"`
}

// Create creates a room. Non-admin callers must own the hotel.
func (s *RoomService) Create(ctx context.Context, callerID uint, isAdmin bool, input *RoomInput) (*models.Room, error) {
	// 1. Validate input
	if input.RoomNumber == "" || input.PricePerNight <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidRoomType(input.RoomType) {
		return nil, domain.ErrInvalidInput
	}
	if input.AvailableFrom.IsZero() || input.AvailableTo.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !input.AvailableTo.After(input.AvailableFrom) {
		return nil, domain.ErrInvalidDateRange
	}

	// 2. Resolve hotel and check ownership
	hotel, err := s.hotelRepo.GetByID(ctx, input.HotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHotelNotFound
		}
		return nil, err
	}
	if !isAdmin && hotel.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	// 3. Room numbers are unique within a hotel
	exists, err := s.roomRepo.ExistsByNumber(ctx, input.HotelID, input.RoomNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrInvalidInput
	}

	capacity := input.Capacity
	if capacity <= 0 {
		capacity = 2
	}

	room := &models.Room{
		HotelID:       input.HotelID,
		RoomNumber:    input.RoomNumber,
		RoomType:      input.RoomType,
		PricePerNight: input.PricePerNight,
		Capacity:      capacity,
		AvailableFrom: input.AvailableFrom,
		AvailableTo:   input.AvailableTo,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	log.Printf("✅ Room %s created in hotel [ID: %d]", room.RoomNumber, input.HotelID)
	return room, nil
}

// GetByID gets a room
func (s *RoomService) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// Update updates room fields
func (s *RoomService) Update(ctx context.Context, id, callerID uint, isAdmin bool, input *RoomInput) (*models.Room, error) {
	room, err := s.getOwned(ctx, id, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	if input.RoomType != "" {
		if !domain.ValidRoomType(input.RoomType) {
			return nil, domain.ErrInvalidInput
		}
		room.RoomType = input.RoomType
	}
	if input.PricePerNight > 0 {
		room.PricePerNight = input.PricePerNight
	}
	if input.Capacity > 0 {
		room.Capacity = input.Capacity
	}
	if !input.AvailableFrom.IsZero() {
		room.AvailableFrom = input.AvailableFrom
	}
	if !input.AvailableTo.IsZero() {
		room.AvailableTo = input.AvailableTo
	}
	if !room.AvailableTo.After(room.AvailableFrom) {
		return nil, domain.ErrInvalidDateRange
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	log.Printf("✅ Room updated [ID: %d]", room.ID)
	return room, nil
}

// Delete deletes a room
func (s *RoomService) Delete(ctx context.Context, id, callerID uint, isAdmin bool) error {
	if _, err := s.getOwned(ctx, id, callerID, isAdmin); err != nil {
		return err
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Room deleted [ID: %d]", id)
	return nil
}

// ListByHotel lists a hotel's rooms
func (s *RoomService) ListByHotel(ctx context.Context, hotelID uint, offset, limit int) ([]*models.Room, int64, error) {
	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrHotelNotFound
		}
		return nil, 0, err
	}
	return s.roomRepo.ListByHotel(ctx, hotelID, offset, limit)
}

// getOwned loads a room and verifies the caller controls its hotel
func (s *RoomService) getOwned(ctx context.Context, id, callerID uint, isAdmin bool) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}

	if isAdmin {
		return room, nil
	}

	hotel, err := s.hotelRepo.GetByID(ctx, room.HotelID)
	if err != nil {
		return nil, err
	}
	if hotel.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}
	return room, nil
}
