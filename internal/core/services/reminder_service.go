package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tripway/internal/adapters/persistence/models"
	"tripway/internal/adapters/persistence/repositories"
	"tripway/internal/core/domain"

	"gorm.io/gorm"
)

// dispatchBatchSize caps how many due reminders a single tick processes
const dispatchBatchSize = 50

// ReminderService handles departure reminder business logic
type ReminderService struct {
	reminderRepo repositories.ReminderRepository
	routeRepo    repositories.RouteRepository
	companyRepo  repositories.CompanyRepository
	userRepo     repositories.UserRepository
	mailer       Mailer
}

// NewReminderService creates a new reminder service
func NewReminderService(
	reminderRepo repositories.ReminderRepository,
	routeRepo repositories.RouteRepository,
	companyRepo repositories.CompanyRepository,
	userRepo repositories.UserRepository,
	mailer Mailer,
) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		routeRepo:    routeRepo,
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		mailer:       mailer,
	}
}

// ReminderInput represents reminder create input
type ReminderInput struct {
	RouteID uint      `json:"route_id" validate:"required"`
	Message string    `json:"message" validate:"required"`
	SendAt  time.Time `json:"send_at" validate:"required"`
}

// Create creates a reminder for a route's booked passengers. Recipient
// contacts are snapshotted now, so later profile edits do not change
// who gets notified. Non-admin callers must own the route's company.
func (s *ReminderService) Create(ctx context.Context, callerID uint, isAdmin bool, input *ReminderInput) (*models.Reminder, error) {
	// 1. Validate input
	if input.Message == "" || input.SendAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	// 2. Resolve route and check ownership
	route, err := s.routeRepo.GetByID(ctx, input.RouteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}
	if err := s.checkRouteOwnership(ctx, route, callerID, isAdmin); err != nil {
		return nil, err
	}

	// 3. Select recipients: passengers currently holding a seat. A route
	// with no booked passengers, or a passenger missing email or phone,
	// cannot take a reminder.
	recipients, err := s.selectRecipients(ctx, route.ID)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, domain.ErrInvalidPassengerData
	}
	for _, recipient := range recipients {
		if recipient.Email == "" || recipient.Phone == "" {
			return nil, domain.ErrInvalidPassengerData
		}
	}

	// 4. Create reminder with snapshots atomically
	reminder := &models.Reminder{
		RouteID:   route.ID,
		CreatedBy: callerID,
		Message:   input.Message,
		SendAt:    input.SendAt,
		Status:    domain.ReminderPending,
	}

	if err := s.reminderRepo.Create(ctx, reminder, recipients); err != nil {
		return nil, err
	}

	log.Printf("✅ Reminder created for route %d [ID: %d, recipients: %d]",
		route.ID, reminder.ID, len(recipients))
	return reminder, nil
}

// ReminderUpdateInput represents reminder update input
type ReminderUpdateInput struct {
	Message string    `json:"message"`
	SendAt  time.Time `json:"send_at"`
}

// Update edits a pending reminder's message or send time. Sent and
// failed reminders are immutable.
func (s *ReminderService) Update(ctx context.Context, callerID uint, isAdmin bool, id uint, input *ReminderUpdateInput) (*models.Reminder, error) {
	reminder, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	route, err := s.routeRepo.GetByID(ctx, reminder.RouteID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRouteOwnership(ctx, route, callerID, isAdmin); err != nil {
		return nil, err
	}

	if reminder.Status != domain.ReminderPending {
		return nil, domain.ErrInvalidStatus
	}

	if input.Message != "" {
		reminder.Message = input.Message
	}
	if !input.SendAt.IsZero() {
		reminder.SendAt = input.SendAt
	}

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}

	log.Printf("✅ Reminder updated [ID: %d]", reminder.ID)
	return reminder, nil
}

// PreviewRecipients returns the contacts a reminder on the route would
// snapshot right now. Same ownership rule as Create.
func (s *ReminderService) PreviewRecipients(ctx context.Context, callerID uint, isAdmin bool, routeID uint) ([]models.ReminderPassenger, error) {
	route, err := s.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}
	if err := s.checkRouteOwnership(ctx, route, callerID, isAdmin); err != nil {
		return nil, err
	}
	return s.selectRecipients(ctx, route.ID)
}

// checkRouteOwnership verifies the caller owns the route's company;
// admins pass unconditionally
func (s *ReminderService) checkRouteOwnership(ctx context.Context, route *models.Route, callerID uint, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	company, err := s.companyRepo.GetByID(ctx, route.CompanyID)
	if err != nil {
		return err
	}
	if company.OwnerID != callerID {
		return domain.ErrForbidden
	}
	return nil
}

// GetByID gets a reminder with its recipients
func (s *ReminderService) GetByID(ctx context.Context, id uint) (*models.Reminder, error) {
	reminder, err := s.reminderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, err
	}
	return reminder, nil
}

// ListByRoute lists a route's reminders
func (s *ReminderService) ListByRoute(ctx context.Context, routeID uint, offset, limit int) ([]*models.Reminder, int64, error) {
	if _, err := s.routeRepo.GetByID(ctx, routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrRouteNotFound
		}
		return nil, 0, err
	}
	return s.reminderRepo.ListByRoute(ctx, routeID, offset, limit)
}

// Delete deletes a pending reminder
func (s *ReminderService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.reminderRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Reminder deleted [ID: %d]", id)
	return nil
}

// DispatchDue sends every pending reminder whose time has come.
// A reminder with no recipients still completes as sent; a delivery
// failure marks the reminder failed with the error recorded.
func (s *ReminderService) DispatchDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.reminderRepo.ListDue(ctx, now, dispatchBatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, reminder := range due {
		if err := s.dispatch(ctx, reminder); err != nil {
			log.Printf("❌ Reminder %d dispatch failed: %v", reminder.ID, err)
			if markErr := s.reminderRepo.MarkStatus(ctx, reminder.ID, domain.ReminderFailed, err.Error()); markErr != nil {
				log.Printf("❌ Reminder %d status update failed: %v", reminder.ID, markErr)
			}
			continue
		}

		if err := s.reminderRepo.MarkStatus(ctx, reminder.ID, domain.ReminderSent, ""); err != nil {
			return sent, err
		}
		sent++
	}

	return sent, nil
}

// dispatch delivers one reminder to all of its snapshotted recipients
func (s *ReminderService) dispatch(_ context.Context, reminder *models.Reminder) error {
	subject := "Departure reminder"

	for _, recipient := range reminder.Recipients {
		if err := s.mailer.Send(recipient.Email, subject, reminder.Message); err != nil {
			return fmt.Errorf("send to %s: %w", recipient.Email, err)
		}
	}
	return nil
}

// selectRecipients snapshots the contacts of passengers holding a seat
// on the route
func (s *ReminderService) selectRecipients(ctx context.Context, routeID uint) ([]models.ReminderPassenger, error) {
	seats, err := s.routeRepo.ListSeats(ctx, routeID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	recipients := make([]models.ReminderPassenger, 0)
	for _, seat := range seats {
		if seat.PassengerID == nil || seen[*seat.PassengerID] {
			continue
		}
		seen[*seat.PassengerID] = true

		user, err := s.userRepo.GetByID(ctx, *seat.PassengerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		recipients = append(recipients, models.ReminderPassenger{
			PassengerID: user.ID,
			Email:       user.Email,
			Phone:       user.Phone,
		})
	}

	return recipients, nil
}
