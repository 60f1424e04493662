package services

import (
	"context"
	"testing"
	"time"

	"tripway/internal/adapters/persistence/models"
	"tripway/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	svc         *BookingService
	routeRepo   *fakeRouteRepo
	roomRepo    *fakeRoomRepo
	bookingRepo *fakeBookingRepo
	companyRepo *fakeCompanyRepo
	hotelRepo   *fakeHotelRepo
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		routeRepo:   newFakeRouteRepo(),
		roomRepo:    newFakeRoomRepo(),
		companyRepo: newFakeCompanyRepo(),
		hotelRepo:   newFakeHotelRepo(),
	}
	f.bookingRepo = newFakeBookingRepo(f.routeRepo, f.roomRepo)
	f.svc = NewBookingService(f.bookingRepo, f.routeRepo, f.roomRepo, f.companyRepo, f.hotelRepo)
	return f
}

// seedRoute creates a company owned by ownerID and a route under it
func (f *bookingFixture) seedRoute(t *testing.T, ownerID uint, price float64, seatNumbers ...string) *models.Route {
	t.Helper()
	ctx := context.Background()

	company := &models.TravelCompany{OwnerID: ownerID, Name: "Nimbus Lines"}
	require.NoError(t, f.companyRepo.Create(ctx, company))

	route := &models.Route{
		CompanyID:   company.ID,
		Origin:      "Bangkok",
		Destination: "Chiang Mai",
		DepartureAt: time.Now().Add(48 * time.Hour),
		ArrivalAt:   time.Now().Add(58 * time.Hour),
		Price:       price,
	}
	require.NoError(t, f.routeRepo.Create(ctx, route, seatNumbers))
	return route
}

// seedRoom creates a hotel owned by ownerID and a room available for the
// given window
func (f *bookingFixture) seedRoom(t *testing.T, ownerID uint, price float64, from, to time.Time) *models.Room {
	t.Helper()
	ctx := context.Background()

	hotel := &models.Hotel{OwnerID: ownerID, Name: "Riverside Inn", City: "Bangkok"}
	require.NoError(t, f.hotelRepo.Create(ctx, hotel))

	room := &models.Room{
		HotelID:       hotel.ID,
		RoomNumber:    "101",
		RoomType:      domain.RoomDouble,
		PricePerNight: price,
		AvailableFrom: from,
		AvailableTo:   to,
	}
	require.NoError(t, f.roomRepo.Create(ctx, room))
	return room
}

func TestBookSeat(t *testing.T) {
	f := newBookingFixture(t)
	route := f.seedRoute(t, 10, 450, "A1", "A2")

	booking, err := f.svc.BookSeat(context.Background(), 7, &SeatBookingInput{RouteID: route.ID, SeatID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.ServiceTypeBus, booking.ServiceType)
	assert.Equal(t, domain.BookingConfirmed, booking.Status)
	assert.Equal(t, 450.0, booking.TotalPrice)

	seat, err := f.routeRepo.GetSeat(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, seat.Availability)
	require.NotNil(t, seat.PassengerID)
	assert.Equal(t, uint(7), *seat.PassengerID)
}

func TestBookSeatAlreadyTaken(t *testing.T) {
	f := newBookingFixture(t)
	route := f.seedRoute(t, 10, 450, "A1")
	ctx := context.Background()

	_, err := f.svc.BookSeat(ctx, 7, &SeatBookingInput{RouteID: route.ID, SeatID: 1})
	require.NoError(t, err)

	_, err = f.svc.BookSeat(ctx, 8, &SeatBookingInput{RouteID: route.ID, SeatID: 1})
	assert.ErrorIs(t, err, domain.ErrSeatUnavailable)
}

func TestBookSeatWrongRoute(t *testing.T) {
	f := newBookingFixture(t)
	f.seedRoute(t, 10, 450, "A1")
	other := f.seedRoute(t, 11, 600, "B1")

	// Seat 1 belongs to the first route
	_, err := f.svc.BookSeat(context.Background(), 7, &SeatBookingInput{RouteID: other.ID, SeatID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBookSeatRouteNotFound(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.BookSeat(context.Background(), 7, &SeatBookingInput{RouteID: 99, SeatID: 1})
	assert.ErrorIs(t, err, domain.ErrRouteNotFound)
}

func TestBookRoomPricesByNights(t *testing.T) {
	f := newBookingFixture(t)
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	room := f.seedRoom(t, 20, 1200, from, from.AddDate(0, 3, 0))

	checkIn := from.AddDate(0, 0, 9)
	booking, err := f.svc.BookRoom(context.Background(), 7, &RoomBookingInput{
		RoomID:   room.ID,
		CheckIn:  checkIn,
		CheckOut: checkIn.AddDate(0, 0, 3),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ServiceTypeHotel, booking.ServiceType)
	assert.Equal(t, 3600.0, booking.TotalPrice)
}

func TestBookRoomInvalidDateRange(t *testing.T) {
	f := newBookingFixture(t)
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	room := f.seedRoom(t, 20, 1200, from, from.AddDate(0, 3, 0))

	checkIn := from.AddDate(0, 0, 9)
	_, err := f.svc.BookRoom(context.Background(), 7, &RoomBookingInput{
		RoomID:   room.ID,
		CheckIn:  checkIn,
		CheckOut: checkIn,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestBookRoomOutsideAvailabilityWindow(t *testing.T) {
	f := newBookingFixture(t)
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	room := f.seedRoom(t, 20, 1200, from, from.AddDate(0, 1, 0))
	ctx := context.Background()

	// Entirely before the window
	_, err := f.svc.BookRoom(ctx, 7, &RoomBookingInput{
		RoomID:   room.ID,
		CheckIn:  from.AddDate(0, 0, -10),
		CheckOut: from.AddDate(0, 0, -8),
	})
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)

	// Starts inside, ends past the window
	_, err = f.svc.BookRoom(ctx, 7, &RoomBookingInput{
		RoomID:   room.ID,
		CheckIn:  from.AddDate(0, 0, 25),
		CheckOut: from.AddDate(0, 1, 5),
	})
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)

	// Fully inside books fine
	_, err = f.svc.BookRoom(ctx, 7, &RoomBookingInput{
		RoomID:   room.ID,
		CheckIn:  from.AddDate(0, 0, 5),
		CheckOut: from.AddDate(0, 0, 8),
	})
	assert.NoError(t, err)
}

func TestBookRoomOverlapRejected(t *testing.T) {
	f := newBookingFixture(t)
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	room := f.seedRoom(t, 20, 1200, from, from.AddDate(0, 3, 0))
	ctx := context.Background()

	checkIn := from.AddDate(0, 0, 9)
	_, err := f.svc.BookRoom(ctx, 7, &RoomBookingInput{
		RoomID:   room.ID,
		CheckIn:  checkIn,
		CheckOut: checkIn.AddDate(0, 0, 3),
	})
	require.NoError(t, err)

	_, err = f.svc.BookRoom(ctx, 8, &RoomBookingInput{
		RoomID:   room.ID,
		CheckIn:  checkIn.AddDate(0, 0, 1),
		CheckOut: checkIn.AddDate(0, 0, 4),
	})
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
}

func TestGetByIDAccessRoles(t *testing.T) {
	f := newBookingFixture(t)
	route := f.seedRoute(t, 10, 450, "A1")
	ctx := context.Background()

	booking, err := f.svc.BookSeat(ctx, 7, &SeatBookingInput{RouteID: route.ID, SeatID: 1})
	require.NoError(t, err)

	// Passenger sees own booking, not someone else's
	_, err = f.svc.GetByID(ctx, booking.ID, 7, string(domain.RolePassenger))
	assert.NoError(t, err)
	_, err = f.svc.GetByID(ctx, booking.ID, 8, string(domain.RolePassenger))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Admin sees all
	_, err = f.svc.GetByID(ctx, booking.ID, 99, string(domain.RoleAdmin))
	assert.NoError(t, err)

	// Owning company sees bookings on its routes; another company does not
	_, err = f.svc.GetByID(ctx, booking.ID, 10, string(domain.RoleTravelCompany))
	assert.NoError(t, err)
	_, err = f.svc.GetByID(ctx, booking.ID, 11, string(domain.RoleTravelCompany))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// A hotel role has no claim on a bus booking
	_, err = f.svc.GetByID(ctx, booking.ID, 10, string(domain.RoleHotel))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCancelByOwningCompanyReleasesSeat(t *testing.T) {
	f := newBookingFixture(t)
	route := f.seedRoute(t, 10, 450, "A1")
	ctx := context.Background()

	booking, err := f.svc.BookSeat(ctx, 7, &SeatBookingInput{RouteID: route.ID, SeatID: 1})
	require.NoError(t, err)

	canceled, err := f.svc.Cancel(ctx, booking.ID, 10, string(domain.RoleTravelCompany))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCanceled, canceled.Status)

	seat, err := f.routeRepo.GetSeat(ctx, 1)
	require.NoError(t, err)
	assert.True(t, seat.Availability)
	assert.Nil(t, seat.PassengerID)

	// The freed seat can be booked again
	_, err = f.svc.BookSeat(ctx, 8, &SeatBookingInput{RouteID: route.ID, SeatID: 1})
	assert.NoError(t, err)
}

func TestCancelRoomBookingByHotelOwner(t *testing.T) {
	f := newBookingFixture(t)
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	room := f.seedRoom(t, 20, 1200, from, from.AddDate(0, 3, 0))
	ctx := context.Background()

	booking, err := f.svc.BookRoom(ctx, 7, &RoomBookingInput{
		RoomID:   room.ID,
		CheckIn:  from.AddDate(0, 0, 5),
		CheckOut: from.AddDate(0, 0, 8),
	})
	require.NoError(t, err)

	// Another hotel owner has no claim
	_, err = f.svc.Cancel(ctx, booking.ID, 21, string(domain.RoleHotel))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	canceled, err := f.svc.Cancel(ctx, booking.ID, 20, string(domain.RoleHotel))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCanceled, canceled.Status)

	// Canceled stay no longer blocks the dates
	_, err = f.svc.BookRoom(ctx, 8, &RoomBookingInput{
		RoomID:   room.ID,
		CheckIn:  from.AddDate(0, 0, 5),
		CheckOut: from.AddDate(0, 0, 8),
	})
	assert.NoError(t, err)
}

func TestUpdateStatusTerminal(t *testing.T) {
	f := newBookingFixture(t)
	route := f.seedRoute(t, 10, 450, "A1")
	ctx := context.Background()

	booking, err := f.svc.BookSeat(ctx, 7, &SeatBookingInput{RouteID: route.ID, SeatID: 1})
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, booking.ID, 10, string(domain.RoleTravelCompany))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, booking.ID, 10, string(domain.RoleTravelCompany), domain.BookingConfirmed)
	assert.ErrorIs(t, err, domain.ErrBookingTerminal)

	_, err = f.svc.UpdateStatus(ctx, booking.ID, 10, string(domain.RoleTravelCompany), domain.BookingCompleted)
	assert.ErrorIs(t, err, domain.ErrBookingTerminal)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newBookingFixture(t)
	route := f.seedRoute(t, 10, 450, "A1")
	ctx := context.Background()

	booking, err := f.svc.BookSeat(ctx, 7, &SeatBookingInput{RouteID: route.ID, SeatID: 1})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, booking.ID, 10, string(domain.RoleTravelCompany), "refunded")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateStatusSameStatusNoOp(t *testing.T) {
	f := newBookingFixture(t)
	route := f.seedRoute(t, 10, 450, "A1")
	ctx := context.Background()

	booking, err := f.svc.BookSeat(ctx, 7, &SeatBookingInput{RouteID: route.ID, SeatID: 1})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, booking.ID, 10, string(domain.RoleTravelCompany), domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, updated.Status)
}

func TestUpdateStatusConcurrentTransitionConflicts(t *testing.T) {
	f := newBookingFixture(t)
	route := f.seedRoute(t, 10, 450, "A1")
	ctx := context.Background()

	booking, err := f.svc.BookSeat(ctx, 7, &SeatBookingInput{RouteID: route.ID, SeatID: 1})
	require.NoError(t, err)

	// Simulate a racing transition: the stored row moved on after this
	// caller read it
	stale := *booking
	f.bookingRepo.bookings[booking.ID].Status = domain.BookingCompleted

	err = f.bookingRepo.UpdateStatus(ctx, &stale, domain.BookingCanceled)
	assert.ErrorIs(t, err, domain.ErrBookingConflict)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	f := newBookingFixture(t)

	_, _, err := f.svc.List(context.Background(), "refunded", 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestDeleteReleasesConfirmedSeat(t *testing.T) {
	f := newBookingFixture(t)
	route := f.seedRoute(t, 10, 450, "A1")
	ctx := context.Background()

	booking, err := f.svc.BookSeat(ctx, 7, &SeatBookingInput{RouteID: route.ID, SeatID: 1})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, booking.ID, 99, string(domain.RoleAdmin)))

	seat, err := f.routeRepo.GetSeat(ctx, 1)
	require.NoError(t, err)
	assert.True(t, seat.Availability)

	_, err = f.bookingRepo.GetByID(ctx, booking.ID)
	assert.Error(t, err)
}
