package repositories

import (
	"context"
	"errors"
	"time"

	"smarthealth/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormAppointmentRepository handles appointment database operations
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// dayWindow returns the [start, end) bounds of the calendar day containing
// the given instant, in that instant's own location. Truncate would align to
// UTC epoch days and shift the window on any non-UTC server.
func dayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.Add(24 * time.Hour)
}

// Create inserts a new appointment
func (r *GormAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

// GetByID returns an appointment by ID with all relations, nil when absent
func (r *GormAppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Department").
		First(&appointment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// List returns appointments matching the filter ordered by appointment date
func (r *GormAppointmentRepository) List(ctx context.Context, filter AppointmentFilter, offset, limit int) ([]models.Appointment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Appointment{})
	if filter.DoctorID != 0 {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.PatientID != 0 {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.DepartmentID != 0 {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if !filter.Date.IsZero() {
		dayStart, dayEnd := dayWindow(filter.Date)
		query = query.Where("appointment_date >= ? AND appointment_date < ?", dayStart, dayEnd)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []models.Appointment
	err := query.
		Preload("Patient").
		Preload("Doctor").
		Preload("Department").
		Order("appointment_date ASC").
		Offset(offset).Limit(limit).
		Find(&appointments).Error
	return appointments, total, err
}

// ListForDay returns non-cancelled appointments on the given calendar day
func (r *GormAppointmentRepository) ListForDay(ctx context.Context, day time.Time) ([]models.Appointment, error) {
	dayStart, dayEnd := dayWindow(day)
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Department").
		Where("appointment_date >= ? AND appointment_date < ? AND status <> ?",
			dayStart, dayEnd, models.AppointmentStatusCancelled).
		Order("appointment_date ASC").
		Find(&appointments).Error
	return appointments, err
}

// Update applies field updates to an appointment
func (r *GormAppointmentRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes an appointment row, reporting whether it existed
func (r *GormAppointmentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
