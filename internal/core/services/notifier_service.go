package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"smarthealth/internal/adapters/persistence/models"
	"smarthealth/internal/adapters/persistence/repositories"
	"smarthealth/internal/core/domain"
)

// ============================================================
// Notification dispatch: persist first, deliver in background
// ============================================================

// Provider delivers a notification message over a single channel.
type Provider interface {
	Send(ctx context.Context, message, recipient string) error
}

// NotifierService persists notifications and hands them to a delivery provider.
// Delivery runs in the background; queue operations never wait on it.
type NotifierService struct {
	notificationRepo repositories.NotificationRepository
	providers        map[string]Provider
}

// NewNotifierService creates a notifier with one provider per channel.
// The provider kind comes from NOTIFY_PROVIDER (log, noop, fail, webhook).
func NewNotifierService(notificationRepo repositories.NotificationRepository) *NotifierService {
	kind := os.Getenv("NOTIFY_PROVIDER")
	channels := []string{
		models.NotificationChannelSMS,
		models.NotificationChannelPush,
		models.NotificationChannelEmail,
	}

	providers := make(map[string]Provider, len(channels))
	for _, channel := range channels {
		providers[channel] = newProvider(kind, channel)
	}

	return &NotifierService{
		notificationRepo: notificationRepo,
		providers:        providers,
	}
}

// Notify records a notification row and dispatches it in the background.
// The returned row is still pending; its outcome is written asynchronously.
func (s *NotifierService) Notify(ctx context.Context, patientID uint, tokenID *uint, channel, message, recipient string) (*models.Notification, error) {
	if channel == "" {
		channel = models.NotificationChannelPush
	}

	notification := &models.Notification{
		PatientID: patientID,
		TokenID:   tokenID,
		Message:   message,
		Channel:   channel,
		Status:    models.NotificationStatusPending,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("❌ Notification create error: %v", err)
		return nil, err
	}

	go s.deliver(notification.ID, channel, message, recipient)

	return notification, nil
}

// NotifyPatient picks a channel from the patient's contact details and
// dispatches in the background. Errors are logged, not returned; delivery
// problems never fail the operation that triggered them.
func (s *NotifierService) NotifyPatient(ctx context.Context, patient *models.Patient, tokenID *uint, message string) {
	if patient == nil || patient.ID == 0 {
		return
	}
	channel := models.NotificationChannelPush
	recipient := patient.Phone
	if patient.Email != "" {
		channel = models.NotificationChannelEmail
		recipient = patient.Email
	}
	if _, err := s.Notify(ctx, patient.ID, tokenID, channel, message, recipient); err != nil {
		log.Printf("⚠️ Notification skipped for patient %d: %v", patient.ID, err)
	}
}

// ListForPatient returns the most recent notifications for a patient
func (s *NotifierService) ListForPatient(ctx context.Context, patientID uint, limit int) ([]models.Notification, error) {
	if patientID == 0 {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	return s.notificationRepo.ListByPatient(ctx, patientID, limit)
}

// deliver sends the message through the channel provider and records the outcome.
func (s *NotifierService) deliver(notificationID uint, channel, message, recipient string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	provider, ok := s.providers[channel]
	if !ok {
		provider = logProvider{channel: channel}
	}

	if err := provider.Send(ctx, message, recipient); err != nil {
		log.Printf("❌ Notification %d delivery failed (%s): %v", notificationID, channel, err)
		if err := s.notificationRepo.MarkOutcome(ctx, notificationID, models.NotificationStatusFailed, nil); err != nil {
			log.Printf("❌ Notification %d outcome update error: %v", notificationID, err)
		}
		return
	}

	now := time.Now()
	if err := s.notificationRepo.MarkOutcome(ctx, notificationID, models.NotificationStatusSent, &now); err != nil {
		log.Printf("❌ Notification %d outcome update error: %v", notificationID, err)
	}
}

// ============================================================
// Delivery providers
// ============================================================

func newProvider(kind string, channel string) Provider {
	switch kind {
	case "", "stub", "log":
		return logProvider{channel: channel}
	case "noop":
		return noopProvider{}
	case "fail":
		return failProvider{}
	case "webhook":
		url := os.Getenv("NOTIFY_" + strings.ToUpper(channel) + "_WEBHOOK_URL")
		token := os.Getenv("NOTIFY_" + strings.ToUpper(channel) + "_WEBHOOK_TOKEN")
		if url == "" {
			return logProvider{channel: channel}
		}
		return webhookProvider{channel: channel, url: url, token: token}
	default:
		if strings.HasPrefix(kind, "http://") || strings.HasPrefix(kind, "https://") {
			return webhookProvider{channel: channel, url: kind}
		}
		return logProvider{channel: channel}
	}
}

type logProvider struct {
	channel string
}

func (p logProvider) Send(ctx context.Context, message, recipient string) error {
	log.Printf("📨 send %s to %s: %s", p.channel, recipient, message)
	return nil
}

type noopProvider struct{}

func (noopProvider) Send(ctx context.Context, message, recipient string) error {
	return nil
}

type failProvider struct{}

func (failProvider) Send(ctx context.Context, message, recipient string) error {
	return errors.New("provider failure")
}

type webhookProvider struct {
	channel string
	url     string
	token   string
}

func (p webhookProvider) Send(ctx context.Context, message, recipient string) error {
	payload := map[string]string{
		"channel":   p.channel,
		"recipient": recipient,
		"message":   message,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errors.New("provider rejected request")
	}
	return nil
}
