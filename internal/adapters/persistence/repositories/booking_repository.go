package repositories

import (
	"context"

	"tripway/internal/adapters/persistence/models"
	"tripway/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// bookingRepository implements BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// CreateSeatBooking claims a seat and inserts the booking in one transaction.
// The claim is a conditional UPDATE on the available row; when another
// passenger got there first RowsAffected is 0 and the transaction rolls
// back with ErrSeatUnavailable. No double sell under concurrency.
func (r *bookingRepository) CreateSeatBooking(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Seat{}).
			Where("id = ? AND route_id = ? AND availability = ?", *booking.SeatID, *booking.RouteID, true).
			Updates(map[string]interface{}{
				"availability": false,
				"passenger_id": booking.PassengerID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrSeatUnavailable
		}

		return tx.Create(booking).Error
	})
}

// CreateRoomBooking inserts a hotel booking after checking the room's
// availability window and its ledger for an overlapping stay. The room
// row is locked FOR UPDATE so two concurrent requests for the same room
// serialize and the second one sees the first one's booking.
func (r *bookingRepository) CreateRoomBooking(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", *booking.RoomID).
			First(&room).Error; err != nil {
			return err
		}

		// The stay must lie inside the room's availability window
		if booking.CheckIn.Before(room.AvailableFrom) || booking.CheckOut.After(room.AvailableTo) {
			return domain.ErrRoomUnavailable
		}

		// Overlap: existing.check_in < new.check_out AND existing.check_out > new.check_in
		var overlapping int64
		err := tx.Model(&models.Booking{}).
			Where("room_id = ? AND status = ?", *booking.RoomID, domain.BookingConfirmed).
			Where("check_in < ? AND check_out > ?", *booking.CheckOut, *booking.CheckIn).
			Count(&overlapping).Error
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return domain.ErrRoomUnavailable
		}

		return tx.Create(booking).Error
	})
}

// GetByID gets a booking with its references preloaded
func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Route").
		Preload("Seat").
		Preload("Room").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByPassenger lists a passenger's bookings with pagination
func (r *bookingRepository) ListByPassenger(ctx context.Context, passengerID uint, offset, limit int) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Booking{}).Where("passenger_id = ?", passengerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// List lists all bookings with pagination, optionally filtered by status
func (r *bookingRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Booking{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// UpdateStatus moves a booking to a new status. The write is conditional
// on the status the caller read, so two concurrent transitions cannot
// both apply; the loser gets ErrBookingConflict. Leaving the confirmed
// state releases the booked unit in the same transaction.
func (r *bookingRepository) UpdateStatus(ctx context.Context, booking *models.Booking, status string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, booking.Status).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrBookingConflict
		}

		if status == domain.BookingCanceled && booking.Status == domain.BookingConfirmed {
			if err := releaseUnit(tx, booking); err != nil {
				return err
			}
		}

		booking.Status = status
		return nil
	})
}

// Delete soft deletes a booking, releasing its unit when still confirmed
func (r *bookingRepository) Delete(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if booking.Status == domain.BookingConfirmed {
			if err := releaseUnit(tx, booking); err != nil {
				return err
			}
		}
		return tx.Delete(&models.Booking{}, booking.ID).Error
	})
}

// releaseUnit frees the seat held by a bus booking. Hotel bookings need
// no update because availability is derived from the booking ledger,
// which the status change already amended.
func releaseUnit(tx *gorm.DB, booking *models.Booking) error {
	if booking.ServiceType != domain.ServiceTypeBus || booking.SeatID == nil {
		return nil
	}
	return tx.Model(&models.Seat{}).
		Where("id = ?", *booking.SeatID).
		Updates(map[string]interface{}{
			"availability": true,
			"passenger_id": nil,
		}).Error
}
