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

type reminderFixture struct {
	svc          *ReminderService
	userRepo     *fakeUserRepo
	routeRepo    *fakeRouteRepo
	companyRepo  *fakeCompanyRepo
	reminderRepo *fakeReminderRepo
	mailer       *fakeMailer
}

func newReminderFixture(t *testing.T) *reminderFixture {
	t.Helper()

	f := &reminderFixture{
		userRepo:     newFakeUserRepo(),
		routeRepo:    newFakeRouteRepo(),
		companyRepo:  newFakeCompanyRepo(),
		reminderRepo: newFakeReminderRepo(),
		mailer:       &fakeMailer{},
	}
	f.svc = NewReminderService(f.reminderRepo, f.routeRepo, f.companyRepo, f.userRepo, f.mailer)
	return f
}

// seedBookedRoute creates a company owned by ownerID, a route with one seat
// per passenger, and assigns each seat to a passenger user.
func (f *reminderFixture) seedBookedRoute(t *testing.T, ownerID uint, passengerEmails ...string) *models.Route {
	t.Helper()
	ctx := context.Background()

	company := &models.TravelCompany{OwnerID: ownerID, Name: "Nimbus Lines"}
	require.NoError(t, f.companyRepo.Create(ctx, company))

	seatNumbers := make([]string, len(passengerEmails))
	for i := range passengerEmails {
		seatNumbers[i] = string(rune('A'+i)) + "1"
	}

	route := &models.Route{
		CompanyID:   company.ID,
		Origin:      "Bangkok",
		Destination: "Phuket",
		DepartureAt: time.Now().Add(24 * time.Hour),
		ArrivalAt:   time.Now().Add(36 * time.Hour),
		Price:       800,
	}
	require.NoError(t, f.routeRepo.Create(ctx, route, seatNumbers))

	seats, err := f.routeRepo.ListSeats(ctx, route.ID)
	require.NoError(t, err)
	require.Len(t, seats, len(passengerEmails))

	for i, email := range passengerEmails {
		user := &models.User{
			Username: email,
			Email:    email,
			Phone:    "0812345678",
			Role:     string(domain.RolePassenger),
			IsActive: true,
		}
		require.NoError(t, f.userRepo.Create(ctx, user))

		seats[i].Availability = false
		seats[i].PassengerID = &user.ID
	}
	return route
}

func reminderInput(routeID uint) *ReminderInput {
	return &ReminderInput{
		RouteID: routeID,
		Message: "Your bus departs tomorrow at 08:00",
		SendAt:  time.Now().Add(-time.Minute),
	}
}

func TestCreateReminderSnapshotsRecipients(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1, "p1@example.com", "p2@example.com")

	reminder, err := f.svc.Create(context.Background(), 1, false, reminderInput(route.ID))
	require.NoError(t, err)

	assert.Equal(t, domain.ReminderPending, reminder.Status)
	require.Len(t, reminder.Recipients, 2)
	assert.Equal(t, "p1@example.com", reminder.Recipients[0].Email)
}

func TestCreateReminderDedupesPassengers(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1, "p1@example.com", "p2@example.com")
	ctx := context.Background()

	// Same passenger holding two seats counts once
	seats, err := f.routeRepo.ListSeats(ctx, route.ID)
	require.NoError(t, err)
	seats[1].PassengerID = seats[0].PassengerID

	reminder, err := f.svc.Create(ctx, 1, false, reminderInput(route.ID))
	require.NoError(t, err)
	assert.Len(t, reminder.Recipients, 1)
}

func TestCreateReminderOwnershipEnforced(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1, "p1@example.com")
	ctx := context.Background()

	_, err := f.svc.Create(ctx, 2, false, reminderInput(route.ID))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Admins bypass ownership
	_, err = f.svc.Create(ctx, 2, true, reminderInput(route.ID))
	assert.NoError(t, err)
}

func TestCreateReminderRouteNotFound(t *testing.T) {
	f := newReminderFixture(t)

	_, err := f.svc.Create(context.Background(), 1, true, reminderInput(99))
	assert.ErrorIs(t, err, domain.ErrRouteNotFound)
}

func TestCreateReminderEmptyMessage(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1, "p1@example.com")

	input := reminderInput(route.ID)
	input.Message = ""

	_, err := f.svc.Create(context.Background(), 1, false, input)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateReminderNoBookedPassengers(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1)
	ctx := context.Background()

	// Route exists but every seat is open
	require.NoError(t, f.routeRepo.AddSeat(ctx, &models.Seat{RouteID: route.ID, SeatNumber: "A1", Availability: true}))

	_, err := f.svc.Create(ctx, 1, false, reminderInput(route.ID))
	assert.ErrorIs(t, err, domain.ErrInvalidPassengerData)
}

func TestCreateReminderIncompleteContact(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1, "p1@example.com", "p2@example.com")
	ctx := context.Background()

	// One booked passenger never filled in a phone number
	user, err := f.userRepo.GetByEmail(ctx, "p2@example.com")
	require.NoError(t, err)
	user.Phone = ""

	_, err = f.svc.Create(ctx, 1, false, reminderInput(route.ID))
	assert.ErrorIs(t, err, domain.ErrInvalidPassengerData)
}

func TestUpdateReminderPendingOnly(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1, "p1@example.com")
	ctx := context.Background()

	reminder, err := f.svc.Create(ctx, 1, false, reminderInput(route.ID))
	require.NoError(t, err)

	newSendAt := time.Now().Add(2 * time.Hour)
	updated, err := f.svc.Update(ctx, 1, false, reminder.ID, &ReminderUpdateInput{
		Message: "Departure moved to 10:00",
		SendAt:  newSendAt,
	})
	require.NoError(t, err)
	assert.Equal(t, "Departure moved to 10:00", updated.Message)
	assert.Equal(t, newSendAt, updated.SendAt)

	// Once sent, the reminder is immutable
	require.NoError(t, f.reminderRepo.MarkStatus(ctx, reminder.ID, domain.ReminderSent, ""))
	_, err = f.svc.Update(ctx, 1, false, reminder.ID, &ReminderUpdateInput{Message: "too late"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateReminderOwnershipEnforced(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1, "p1@example.com")
	ctx := context.Background()

	reminder, err := f.svc.Create(ctx, 1, false, reminderInput(route.ID))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, 2, false, reminder.ID, &ReminderUpdateInput{Message: "hijacked"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPreviewRecipients(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1, "p1@example.com", "p2@example.com")
	ctx := context.Background()

	recipients, err := f.svc.PreviewRecipients(ctx, 1, false, route.ID)
	require.NoError(t, err)
	require.Len(t, recipients, 2)
	assert.Equal(t, "p1@example.com", recipients[0].Email)
	assert.Equal(t, "0812345678", recipients[0].Phone)

	_, err = f.svc.PreviewRecipients(ctx, 2, false, route.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.PreviewRecipients(ctx, 1, true, 99)
	assert.ErrorIs(t, err, domain.ErrRouteNotFound)
}

func TestDispatchDueSendsAndMarks(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1, "p1@example.com", "p2@example.com")
	ctx := context.Background()

	reminder, err := f.svc.Create(ctx, 1, false, reminderInput(route.ID))
	require.NoError(t, err)

	sent, err := f.svc.DispatchDue(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.ElementsMatch(t, []string{"p1@example.com", "p2@example.com"}, f.mailer.sent)

	stored, err := f.reminderRepo.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderSent, stored.Status)
}

func TestDispatchDueSkipsFutureReminders(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1, "p1@example.com")
	ctx := context.Background()

	input := reminderInput(route.ID)
	input.SendAt = time.Now().Add(time.Hour)
	_, err := f.svc.Create(ctx, 1, false, input)
	require.NoError(t, err)

	sent, err := f.svc.DispatchDue(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, f.mailer.sent)
}

func TestDispatchDueMarksFailed(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1, "p1@example.com")
	f.mailer.failAddr = "p1@example.com"
	ctx := context.Background()

	reminder, err := f.svc.Create(ctx, 1, false, reminderInput(route.ID))
	require.NoError(t, err)

	sent, err := f.svc.DispatchDue(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, sent)

	stored, err := f.reminderRepo.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderFailed, stored.Status)
	assert.Contains(t, stored.LastError, "p1@example.com")
}

func TestDeleteReminder(t *testing.T) {
	f := newReminderFixture(t)
	route := f.seedBookedRoute(t, 1, "p1@example.com")
	ctx := context.Background()

	reminder, err := f.svc.Create(ctx, 1, false, reminderInput(route.ID))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, reminder.ID))

	err = f.svc.Delete(ctx, reminder.ID)
	assert.ErrorIs(t, err, domain.ErrReminderNotFound)
}
