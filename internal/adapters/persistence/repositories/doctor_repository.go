package repositories

import (
	"context"
	"errors"

	"smarthealth/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormDoctorRepository handles doctor and shift database operations
type GormDoctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a new doctor repository
func NewDoctorRepository(db *gorm.DB) *GormDoctorRepository {
	return &GormDoctorRepository{db: db}
}

// Create inserts a new doctor
func (r *GormDoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

// GetByID returns a doctor by ID with department, nil when absent
func (r *GormDoctorRepository) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).Preload("Department").First(&doctor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// List returns doctors, optionally filtered by department
func (r *GormDoctorRepository) List(ctx context.Context, departmentID uint) ([]models.Doctor, error) {
	query := r.db.WithContext(ctx).Preload("Department")
	if departmentID != 0 {
		query = query.Where("department_id = ?", departmentID)
	}

	var doctors []models.Doctor
	err := query.Order("name ASC").Find(&doctors).Error
	return doctors, err
}

// Update applies field updates to a doctor
func (r *GormDoctorRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Doctor{}).Where("id = ?", id).Updates(updates).Error
}

// ListShifts returns all shifts for a doctor with department preloaded
func (r *GormDoctorRepository) ListShifts(ctx context.Context, doctorID uint) ([]models.Shift, error) {
	var shifts []models.Shift
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("doctor_id = ?", doctorID).
		Find(&shifts).Error
	return shifts, err
}

// CreateShift inserts a new shift for a doctor
func (r *GormDoctorRepository) CreateShift(ctx context.Context, shift *models.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}
