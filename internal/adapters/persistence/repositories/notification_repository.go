package repositories

import (
	"context"
	"time"

	"smarthealth/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormNotificationRepository handles notification database operations
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create inserts a new notification row
func (r *GormNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// MarkOutcome records the delivery result for a notification
func (r *GormNotificationRepository) MarkOutcome(ctx context.Context, id uint, status string, sentAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if sentAt != nil {
		updates["sent_at"] = *sentAt
	}
	return r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Updates(updates).Error
}

// ListByPatient returns the latest notifications, newest first
func (r *GormNotificationRepository) ListByPatient(ctx context.Context, patientID uint, limit int) ([]models.Notification, error) {
	query := r.db.WithContext(ctx).Preload("Patient")
	if patientID != 0 {
		query = query.Where("patient_id = ?", patientID)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}
