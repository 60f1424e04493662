package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tripway/internal/adapters/persistence/models"
	"tripway/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repository fakes for service tests.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateRefreshTokenHash(_ context.Context, userID uint, hash *string) error {
	user, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.RefreshTokenHash = hash
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(nil, username)
	return err == nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(nil, email)
	return err == nil, nil
}

type fakeCompanyRepo struct {
	companies map[uint]*models.TravelCompany
	nextID    uint
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[uint]*models.TravelCompany{}, nextID: 1}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *models.TravelCompany) error {
	company.ID = r.nextID
	r.nextID++
	r.companies[company.ID] = company
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id uint) (*models.TravelCompany, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return company, nil
}

func (r *fakeCompanyRepo) GetByOwnerID(_ context.Context, ownerID uint) (*models.TravelCompany, error) {
	for _, company := range r.companies {
		if company.OwnerID == ownerID {
			return company, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCompanyRepo) Update(_ context.Context, company *models.TravelCompany) error {
	r.companies[company.ID] = company
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id uint) error {
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) List(_ context.Context, offset, limit int) ([]*models.TravelCompany, int64, error) {
	var companies []*models.TravelCompany
	for _, company := range r.companies {
		companies = append(companies, company)
	}
	return companies, int64(len(companies)), nil
}

func (r *fakeCompanyRepo) CountRoutes(_ context.Context, companyID uint) (int64, error) {
	return 0, nil
}

type fakeRouteRepo struct {
	routes    map[uint]*models.Route
	seats     map[uint]*models.Seat
	nextRoute uint
	nextSeat  uint
}

func newFakeRouteRepo() *fakeRouteRepo {
	return &fakeRouteRepo{
		routes:    map[uint]*models.Route{},
		seats:     map[uint]*models.Seat{},
		nextRoute: 1,
		nextSeat:  1,
	}
}

func (r *fakeRouteRepo) Create(_ context.Context, route *models.Route, seatNumbers []string) error {
	route.ID = r.nextRoute
	r.nextRoute++
	r.routes[route.ID] = route

	for _, num := range seatNumbers {
		seat := &models.Seat{ID: r.nextSeat, RouteID: route.ID, SeatNumber: num, Availability: true}
		r.nextSeat++
		r.seats[seat.ID] = seat
	}
	return nil
}

func (r *fakeRouteRepo) GetByID(_ context.Context, id uint) (*models.Route, error) {
	route, ok := r.routes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return route, nil
}

func (r *fakeRouteRepo) GetByIDWithSeats(ctx context.Context, id uint) (*models.Route, error) {
	route, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	seats, _ := r.ListSeats(ctx, id)
	route.Seats = nil
	for _, seat := range seats {
		route.Seats = append(route.Seats, *seat)
	}
	return route, nil
}

func (r *fakeRouteRepo) Update(_ context.Context, route *models.Route) error {
	r.routes[route.ID] = route
	return nil
}

func (r *fakeRouteRepo) Delete(_ context.Context, id uint) error {
	delete(r.routes, id)
	for seatID, seat := range r.seats {
		if seat.RouteID == id {
			delete(r.seats, seatID)
		}
	}
	return nil
}

func (r *fakeRouteRepo) List(_ context.Context, origin, destination string, offset, limit int) ([]*models.Route, int64, error) {
	var routes []*models.Route
	for _, route := range r.routes {
		if origin != "" && route.Origin != origin {
			continue
		}
		if destination != "" && route.Destination != destination {
			continue
		}
		routes = append(routes, route)
	}
	return routes, int64(len(routes)), nil
}

func (r *fakeRouteRepo) ListByCompany(_ context.Context, companyID uint, offset, limit int) ([]*models.Route, int64, error) {
	var routes []*models.Route
	for _, route := range r.routes {
		if route.CompanyID == companyID {
			routes = append(routes, route)
		}
	}
	return routes, int64(len(routes)), nil
}

func (r *fakeRouteRepo) AddSeat(_ context.Context, seat *models.Seat) error {
	seat.ID = r.nextSeat
	r.nextSeat++
	r.seats[seat.ID] = seat
	return nil
}

func (r *fakeRouteRepo) GetSeat(_ context.Context, seatID uint) (*models.Seat, error) {
	seat, ok := r.seats[seatID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return seat, nil
}

func (r *fakeRouteRepo) ListSeats(_ context.Context, routeID uint) ([]*models.Seat, error) {
	var seats []*models.Seat
	for _, seat := range r.seats {
		if seat.RouteID == routeID {
			seats = append(seats, seat)
		}
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i].ID < seats[j].ID })
	return seats, nil
}

type fakeHotelRepo struct {
	hotels map[uint]*models.Hotel
	nextID uint
}

func newFakeHotelRepo() *fakeHotelRepo {
	return &fakeHotelRepo{hotels: map[uint]*models.Hotel{}, nextID: 1}
}

func (r *fakeHotelRepo) Create(_ context.Context, hotel *models.Hotel) error {
	hotel.ID = r.nextID
	r.nextID++
	r.hotels[hotel.ID] = hotel
	return nil
}

func (r *fakeHotelRepo) GetByID(_ context.Context, id uint) (*models.Hotel, error) {
	hotel, ok := r.hotels[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return hotel, nil
}

func (r *fakeHotelRepo) GetByOwnerID(_ context.Context, ownerID uint) (*models.Hotel, error) {
	for _, hotel := range r.hotels {
		if hotel.OwnerID == ownerID {
			return hotel, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeHotelRepo) Update(_ context.Context, hotel *models.Hotel) error {
	r.hotels[hotel.ID] = hotel
	return nil
}

func (r *fakeHotelRepo) Delete(_ context.Context, id uint) error {
	delete(r.hotels, id)
	return nil
}

func (r *fakeHotelRepo) List(_ context.Context, city string, offset, limit int) ([]*models.Hotel, int64, error) {
	var hotels []*models.Hotel
	for _, hotel := range r.hotels {
		if city != "" && hotel.City != city {
			continue
		}
		hotels = append(hotels, hotel)
	}
	return hotels, int64(len(hotels)), nil
}

func (r *fakeHotelRepo) CountRooms(_ context.Context, hotelID uint) (int64, error) {
	return 0, nil
}

type fakeRoomRepo struct {
	rooms  map[uint]*models.Room
	nextID uint
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: map[uint]*models.Room{}, nextID: 1}
}

func (r *fakeRoomRepo) Create(_ context.Context, room *models.Room) error {
	room.ID = r.nextID
	r.nextID++
	r.rooms[room.ID] = room
	return nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id uint) (*models.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return room, nil
}

func (r *fakeRoomRepo) Update(_ context.Context, room *models.Room) error {
	r.rooms[room.ID] = room
	return nil
}

func (r *fakeRoomRepo) Delete(_ context.Context, id uint) error {
	delete(r.rooms, id)
	return nil
}

func (r *fakeRoomRepo) ListByHotel(_ context.Context, hotelID uint, offset, limit int) ([]*models.Room, int64, error) {
	var rooms []*models.Room
	for _, room := range r.rooms {
		if room.HotelID == hotelID {
			rooms = append(rooms, room)
		}
	}
	return rooms, int64(len(rooms)), nil
}

func (r *fakeRoomRepo) ExistsByNumber(_ context.Context, hotelID uint, roomNumber string) (bool, error) {
	for _, room := range r.rooms {
		if room.HotelID == hotelID && room.RoomNumber == roomNumber {
			return true, nil
		}
	}
	return false, nil
}

// fakeBookingRepo shares the seat and room maps with the route and room
// fakes so claim semantics match the real conditional updates.
type fakeBookingRepo struct {
	bookings map[uint]*models.Booking
	seats    map[uint]*models.Seat
	rooms    map[uint]*models.Room
	nextID   uint
}

func newFakeBookingRepo(routeRepo *fakeRouteRepo, roomRepo *fakeRoomRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: map[uint]*models.Booking{},
		seats:    routeRepo.seats,
		rooms:    roomRepo.rooms,
		nextID:   1,
	}
}

func (r *fakeBookingRepo) CreateSeatBooking(_ context.Context, booking *models.Booking) error {
	seat, ok := r.seats[*booking.SeatID]
	if !ok || !seat.Availability {
		return domain.ErrSeatUnavailable
	}

	seat.Availability = false
	seat.PassengerID = &booking.PassengerID

	booking.ID = r.nextID
	r.nextID++
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) CreateRoomBooking(_ context.Context, booking *models.Booking) error {
	room, ok := r.rooms[*booking.RoomID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if booking.CheckIn.Before(room.AvailableFrom) || booking.CheckOut.After(room.AvailableTo) {
		return domain.ErrRoomUnavailable
	}

	for _, existing := range r.bookings {
		if existing.RoomID == nil || *existing.RoomID != *booking.RoomID {
			continue
		}
		if existing.Status != domain.BookingConfirmed {
			continue
		}
		if existing.CheckIn.Before(*booking.CheckOut) && existing.CheckOut.After(*booking.CheckIn) {
			return domain.ErrRoomUnavailable
		}
	}

	booking.ID = r.nextID
	r.nextID++
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id uint) (*models.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return booking, nil
}

func (r *fakeBookingRepo) ListByPassenger(_ context.Context, passengerID uint, offset, limit int) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	for _, booking := range r.bookings {
		if booking.PassengerID == passengerID {
			bookings = append(bookings, booking)
		}
	}
	return bookings, int64(len(bookings)), nil
}

func (r *fakeBookingRepo) List(_ context.Context, status string, offset, limit int) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	for _, booking := range r.bookings {
		if status != "" && booking.Status != status {
			continue
		}
		bookings = append(bookings, booking)
	}
	return bookings, int64(len(bookings)), nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, booking *models.Booking, status string) error {
	stored, ok := r.bookings[booking.ID]
	if !ok || stored.Status != booking.Status {
		return domain.ErrBookingConflict
	}

	if status == domain.BookingCanceled && booking.Status == domain.BookingConfirmed {
		r.releaseSeat(booking)
	}
	booking.Status = status
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, booking *models.Booking) error {
	if booking.Status == domain.BookingConfirmed {
		r.releaseSeat(booking)
	}
	delete(r.bookings, booking.ID)
	return nil
}

func (r *fakeBookingRepo) releaseSeat(booking *models.Booking) {
	if booking.ServiceType != domain.ServiceTypeBus || booking.SeatID == nil {
		return
	}
	if seat, ok := r.seats[*booking.SeatID]; ok {
		seat.Availability = true
		seat.PassengerID = nil
	}
}

type fakeReminderRepo struct {
	reminders map[uint]*models.Reminder
	nextID    uint
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: map[uint]*models.Reminder{}, nextID: 1}
}

func (r *fakeReminderRepo) Create(_ context.Context, reminder *models.Reminder, recipients []models.ReminderPassenger) error {
	reminder.ID = r.nextID
	r.nextID++
	for i := range recipients {
		recipients[i].ReminderID = reminder.ID
	}
	reminder.Recipients = recipients
	r.reminders[reminder.ID] = reminder
	return nil
}

func (r *fakeReminderRepo) GetByID(_ context.Context, id uint) (*models.Reminder, error) {
	reminder, ok := r.reminders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return reminder, nil
}

func (r *fakeReminderRepo) Update(_ context.Context, reminder *models.Reminder) error {
	r.reminders[reminder.ID] = reminder
	return nil
}

func (r *fakeReminderRepo) Delete(_ context.Context, id uint) error {
	delete(r.reminders, id)
	return nil
}

func (r *fakeReminderRepo) ListByRoute(_ context.Context, routeID uint, offset, limit int) ([]*models.Reminder, int64, error) {
	var reminders []*models.Reminder
	for _, reminder := range r.reminders {
		if reminder.RouteID == routeID {
			reminders = append(reminders, reminder)
		}
	}
	return reminders, int64(len(reminders)), nil
}

func (r *fakeReminderRepo) ListDue(_ context.Context, now time.Time, limit int) ([]*models.Reminder, error) {
	var due []*models.Reminder
	for _, reminder := range r.reminders {
		if reminder.Status == domain.ReminderPending && !reminder.SendAt.After(now) {
			due = append(due, reminder)
		}
	}
	return due, nil
}

func (r *fakeReminderRepo) MarkStatus(_ context.Context, id uint, status, lastErr string) error {
	reminder, ok := r.reminders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	reminder.Status = status
	reminder.LastError = lastErr
	return nil
}

// fakeMailer records deliveries and can fail for one address
type fakeMailer struct {
	sent     []string
	failAddr string
}

func (m *fakeMailer) IsEnabled() bool { return true }

func (m *fakeMailer) Send(to, subject, body string) error {
	if to == m.failAddr {
		return fmt.Errorf("relay rejected %s", to)
	}
	m.sent = append(m.sent, to)
	return nil
}
