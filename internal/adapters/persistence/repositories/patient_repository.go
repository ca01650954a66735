package repositories

import (
	"context"
	"errors"

	"smarthealth/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormPatientRepository handles patient database operations
type GormPatientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) *GormPatientRepository {
	return &GormPatientRepository{db: db}
}

// Create inserts a new patient
func (r *GormPatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

// GetByID returns a patient by ID, nil when absent
func (r *GormPatientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// GetByPhone returns a patient by phone number, nil when absent
func (r *GormPatientRepository) GetByPhone(ctx context.Context, phone string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// List returns patients newest first, optionally filtered by phone
func (r *GormPatientRepository) List(ctx context.Context, phone string, offset, limit int) ([]models.Patient, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Patient{})
	if phone != "" {
		query = query.Where("phone = ?", phone)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []models.Patient
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&patients).Error
	return patients, total, err
}
