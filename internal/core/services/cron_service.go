package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled background jobs (08:30 daily reminders)
type CronService struct {
	cron               *cron.Cron
	appointmentService *AppointmentService
}

// NewCronService creates the scheduler with all jobs registered
func NewCronService(appointmentService *AppointmentService) *CronService {
	s := &CronService{
		cron:               cron.New(),
		appointmentService: appointmentService,
	}

	// Remind patients about tomorrow's appointments every morning.
	if _, err := s.cron.AddFunc("30 8 * * *", s.sendTomorrowReminders); err != nil {
		log.Printf("❌ Cron job registration error: %v", err)
	}

	return s
}

// Start launches the scheduler
func (s *CronService) Start() {
	s.cron.Start()
	log.Println("🚀 CronService started (appointment reminders at 08:30)")
}

// Stop gracefully stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) sendTomorrowReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tomorrow := time.Now().AddDate(0, 0, 1)
	if _, err := s.appointmentService.SendReminders(ctx, tomorrow); err != nil {
		log.Printf("❌ Reminder job error: %v", err)
	}
}
