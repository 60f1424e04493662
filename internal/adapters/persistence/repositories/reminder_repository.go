package repositories

import (
	"context"
	"time"

	"tripway/internal/adapters/persistence/models"
	"tripway/internal/core/domain"

	"gorm.io/gorm"
)

// reminderRepository implements ReminderRepository interface
type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

// Create creates a reminder with its recipient snapshots in one transaction
func (r *reminderRepository) Create(ctx context.Context, reminder *models.Reminder, recipients []models.ReminderPassenger) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reminder).Error; err != nil {
			return err
		}

		for i := range recipients {
			recipients[i].ReminderID = reminder.ID
		}
		if len(recipients) > 0 {
			if err := tx.Create(&recipients).Error; err != nil {
				return err
			}
		}
		reminder.Recipients = recipients
		return nil
	})
}

// GetByID gets a reminder with its recipients preloaded
func (r *reminderRepository) GetByID(ctx context.Context, id uint) (*models.Reminder, error) {
	var reminder models.Reminder
	err := r.db.WithContext(ctx).Preload("Recipients").Where("id = ?", id).First(&reminder).Error
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

// Update updates a reminder
func (r *reminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	return r.db.WithContext(ctx).Save(reminder).Error
}

// Delete soft deletes a reminder and its recipient snapshots
func (r *reminderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reminder_id = ?", id).Delete(&models.ReminderPassenger{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Reminder{}, id).Error
	})
}

// ListByRoute lists a route's reminders with pagination
func (r *reminderRepository) ListByRoute(ctx context.Context, routeID uint, offset, limit int) ([]*models.Reminder, int64, error) {
	var reminders []*models.Reminder
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Reminder{}).Where("route_id = ?", routeID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("send_at ASC").Offset(offset).Limit(limit).Find(&reminders).Error; err != nil {
		return nil, 0, err
	}

	return reminders, total, nil
}

// ListDue lists pending reminders whose send time has passed
func (r *reminderRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*models.Reminder, error) {
	var reminders []*models.Reminder
	err := r.db.WithContext(ctx).
		Preload("Recipients").
		Where("status = ? AND send_at <= ?", domain.ReminderPending, now).
		Order("send_at ASC").
		Limit(limit).
		Find(&reminders).Error
	return reminders, err
}

// MarkStatus records the dispatch outcome of a reminder
func (r *reminderRepository) MarkStatus(ctx context.Context, id uint, status, lastErr string) error {
	return r.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"last_error": lastErr,
		}).Error
}
