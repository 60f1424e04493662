package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService runs the reminder dispatch loop on a schedule
type CronService struct {
	cron     *cron.Cron
	reminder *ReminderService
	spec     string
}

// NewCronService creates a new cron service
func NewCronService(reminder *ReminderService, spec string) *CronService {
	return &CronService{
		cron:     cron.New(),
		reminder: reminder,
		spec:     spec,
	}
}

// Start registers the dispatch job and starts the scheduler
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.runDispatch)
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("🚀 Reminder scheduler started [%s]", s.spec)
	return nil
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Reminder scheduler stopped")
}

// runDispatch is one scheduler tick
func (s *CronService) runDispatch() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sent, err := s.reminder.DispatchDue(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Reminder dispatch error: %v", err)
		return
	}
	if sent > 0 {
		log.Printf("📨 Dispatched %d reminder(s)", sent)
	}
}
