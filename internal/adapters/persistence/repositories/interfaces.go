package repositories

import (
	"context"
	"time"

	"smarthealth/internal/adapters/persistence/models"
)

// TokenFilter narrows token listings. Zero values mean "no filter".
type TokenFilter struct {
	DepartmentID uint
	Status       string
	Since        time.Time
}

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	DoctorID     uint
	PatientID    uint
	DepartmentID uint
	// Date filters to appointments on this calendar day when non-zero.
	Date time.Time
}

// TokenRepository defines queue token persistence
type TokenRepository interface {
	Create(ctx context.Context, token *models.Token) error
	GetByID(ctx context.Context, id uint) (*models.Token, error)
	// CountActive counts tokens created at or after since whose status
	// still occupies a queue slot (waiting/called/serving).
	CountActive(ctx context.Context, departmentID uint, since time.Time) (int64, error)
	// GetLatest returns the most recently created token for the department
	// since the given instant regardless of status, or nil when none exists.
	GetLatest(ctx context.Context, departmentID uint, since time.Time) (*models.Token, error)
	List(ctx context.Context, filter TokenFilter) ([]models.Token, error)
	GetNextWaiting(ctx context.Context, departmentID uint, since time.Time) (*models.Token, error)
	GetNowServing(ctx context.Context, departmentID uint, since time.Time) (*models.Token, error)
	UpdateStatus(ctx context.Context, id uint, updates map[string]interface{}) error
	// Delete removes the token row and reports whether it existed.
	Delete(ctx context.Context, id uint) (bool, error)
}

// DepartmentRepository defines department persistence
type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id uint) (*models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
}

// PatientRepository defines patient persistence
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id uint) (*models.Patient, error)
	GetByPhone(ctx context.Context, phone string) (*models.Patient, error)
	List(ctx context.Context, phone string, offset, limit int) ([]models.Patient, int64, error)
}

// DoctorRepository defines doctor and shift persistence
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id uint) (*models.Doctor, error)
	List(ctx context.Context, departmentID uint) ([]models.Doctor, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	ListShifts(ctx context.Context, doctorID uint) ([]models.Shift, error)
	CreateShift(ctx context.Context, shift *models.Shift) error
}

// AppointmentRepository defines appointment persistence
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter, offset, limit int) ([]models.Appointment, int64, error)
	ListForDay(ctx context.Context, day time.Time) ([]models.Appointment, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) (bool, error)
}

// NotificationRepository defines notification persistence
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	// MarkOutcome records the delivery result (sent/failed) for a row.
	MarkOutcome(ctx context.Context, id uint, status string, sentAt *time.Time) error
	ListByPatient(ctx context.Context, patientID uint, limit int) ([]models.Notification, error)
}

// UserRepository defines staff user persistence
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
