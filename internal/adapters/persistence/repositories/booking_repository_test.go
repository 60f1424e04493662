package repositories

import (
	"context"
	"testing"
	"time"

	"tripway/internal/adapters/persistence/models"
	"tripway/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func seatBooking() *models.Booking {
	routeID := uint(3)
	seatID := uint(12)
	return &models.Booking{
		PassengerID: 7,
		ServiceType: domain.ServiceTypeBus,
		Status:      domain.BookingConfirmed,
		RouteID:     &routeID,
		SeatID:      &seatID,
		TotalPrice:  450,
	}
}

func TestCreateSeatBookingClaimsSeat(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewBookingRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `seats`").
		WithArgs(false, uint(7), sqlmock.AnyArg(), uint(12), uint(3), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `bookings`").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	booking := seatBooking()
	require.NoError(t, repo.CreateSeatBooking(context.Background(), booking))
	assert.Equal(t, uint(42), booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSeatBookingLostRace(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewBookingRepository(gdb)

	// Conditional update matches no row: the seat was already claimed.
	// Nothing is inserted and the transaction rolls back.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `seats`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CreateSeatBooking(context.Background(), seatBooking())
	assert.ErrorIs(t, err, domain.ErrSeatUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomBookingOverlapRollsBack(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewBookingRepository(gdb)

	roomID := uint(5)
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 3)
	booking := &models.Booking{
		PassengerID: 7,
		ServiceType: domain.ServiceTypeHotel,
		Status:      domain.BookingConfirmed,
		RoomID:      &roomID,
		CheckIn:     &checkIn,
		CheckOut:    &checkOut,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `rooms` (.+)FOR UPDATE").
		WillReturnRows(roomRows(checkIn.AddDate(0, -1, 0), checkOut.AddDate(0, 2, 0)))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.CreateRoomBooking(context.Background(), booking)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func roomRows(availableFrom, availableTo time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "hotel_id", "room_number", "price_per_night", "available_from", "available_to"}).
		AddRow(5, 1, "101", 1200.0, availableFrom, availableTo)
}

func TestCreateRoomBookingOutsideWindowRollsBack(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewBookingRepository(gdb)

	roomID := uint(5)
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 3)
	booking := &models.Booking{
		PassengerID: 7,
		ServiceType: domain.ServiceTypeHotel,
		Status:      domain.BookingConfirmed,
		RoomID:      &roomID,
		CheckIn:     &checkIn,
		CheckOut:    &checkOut,
	}

	// Window closes before the stay ends: rejected before the ledger is
	// even consulted
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `rooms` (.+)FOR UPDATE").
		WillReturnRows(roomRows(checkIn.AddDate(0, -1, 0), checkIn.AddDate(0, 0, 1)))
	mock.ExpectRollback()

	err := repo.CreateRoomBooking(context.Background(), booking)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusCancelReleasesSeat(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewBookingRepository(gdb)

	booking := seatBooking()
	booking.ID = 42

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `bookings`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `seats`").
		WithArgs(true, nil, sqlmock.AnyArg(), uint(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateStatus(context.Background(), booking, domain.BookingCanceled))
	assert.Equal(t, domain.BookingCanceled, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusStaleReadConflicts(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewBookingRepository(gdb)

	booking := seatBooking()
	booking.ID = 42

	// The conditional update matches no row: another request already
	// moved the booking off the status this caller read
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `bookings`").
		WithArgs(domain.BookingCanceled, sqlmock.AnyArg(), uint(42), domain.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateStatus(context.Background(), booking, domain.BookingCanceled)
	assert.ErrorIs(t, err, domain.ErrBookingConflict)
	assert.Equal(t, domain.BookingConfirmed, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusCompleteKeepsSeat(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewBookingRepository(gdb)

	booking := seatBooking()
	booking.ID = 42

	// Completing a booking does not touch the seat
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `bookings`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateStatus(context.Background(), booking, domain.BookingCompleted))
	assert.NoError(t, mock.ExpectationsWereMet())
}
