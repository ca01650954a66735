package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"smarthealth/internal/adapters/persistence/models"
	"smarthealth/internal/adapters/persistence/repositories"
	"smarthealth/internal/core/domain"
)

const appointmentDateLayout = "2006-01-02"

// AppointmentService handles scheduled visits
type AppointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	patientRepo     repositories.PatientRepository
	doctorRepo      repositories.DoctorRepository
	departmentRepo  repositories.DepartmentRepository
	notifier        *NotifierService
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	patientRepo repositories.PatientRepository,
	doctorRepo repositories.DoctorRepository,
	departmentRepo repositories.DepartmentRepository,
	notifier *NotifierService,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		departmentRepo:  departmentRepo,
		notifier:        notifier,
	}
}

// CreateAppointmentInput represents an appointment booking request
type CreateAppointmentInput struct {
	PatientID       uint   `json:"patient_id" validate:"required"`
	DoctorID        uint   `json:"doctor_id" validate:"required"`
	DepartmentID    uint   `json:"department_id" validate:"required"`
	AppointmentDate string `json:"appointment_date" validate:"required"` // YYYY-MM-DD
	TimeSlot        string `json:"time_slot" validate:"required"`
	Reason          string `json:"reason"`
}

// CreateAppointment books a visit and sends a confirmation notification
func (s *AppointmentService) CreateAppointment(ctx context.Context, input *CreateAppointmentInput) (*models.Appointment, error) {
	// 1. Validate input
	if input == nil || input.PatientID == 0 || input.DoctorID == 0 ||
		input.DepartmentID == 0 || strings.TrimSpace(input.TimeSlot) == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.ParseInLocation(appointmentDateLayout, input.AppointmentDate, time.Local)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	// 2. Validate references
	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrPatientNotFound
	}
	doctor, err := s.doctorRepo.GetByID(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, domain.ErrDoctorNotFound
	}
	department, err := s.departmentRepo.GetByID(ctx, input.DepartmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, domain.ErrDepartmentNotFound
	}

	// 3. Create appointment
	appointment := &models.Appointment{
		PatientID:       input.PatientID,
		DoctorID:        input.DoctorID,
		DepartmentID:    input.DepartmentID,
		AppointmentDate: date,
		TimeSlot:        strings.TrimSpace(input.TimeSlot),
		Status:          models.AppointmentStatusScheduled,
		Reason:          input.Reason,
	}
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	// 4. Reload with relations
	if loaded, err := s.appointmentRepo.GetByID(ctx, appointment.ID); err == nil && loaded != nil {
		appointment = loaded
	}

	log.Printf("✅ Appointment booked: patient=%s doctor=%s %s %s",
		patient.Name, doctor.Name, date.Format(appointmentDateLayout), appointment.TimeSlot)

	// 5. Confirmation notification
	message := fmt.Sprintf("Your appointment with Dr. %s on %s at %s has been confirmed",
		doctor.Name, date.Format(appointmentDateLayout), appointment.TimeSlot)
	s.notifier.NotifyPatient(ctx, patient, nil, message)

	return appointment, nil
}

// GetAppointment returns an appointment by ID
func (s *AppointmentService) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.ErrAppointmentNotFound
	}
	return appointment, nil
}

// ListAppointments returns appointments narrowed by the filter
func (s *AppointmentService) ListAppointments(ctx context.Context, filter repositories.AppointmentFilter, offset, limit int) ([]models.Appointment, int64, error) {
	return s.appointmentRepo.List(ctx, filter, offset, limit)
}

// UpdateAppointmentInput carries partial updates; nil fields stay unchanged
type UpdateAppointmentInput struct {
	AppointmentDate *string `json:"appointment_date"`
	TimeSlot        *string `json:"time_slot"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
}

var validAppointmentStatuses = map[string]bool{
	models.AppointmentStatusScheduled: true,
	models.AppointmentStatusConfirmed: true,
	models.AppointmentStatusCompleted: true,
	models.AppointmentStatusCancelled: true,
}

// UpdateAppointment applies a partial update and returns the fresh record
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id uint, input *UpdateAppointmentInput) (*models.Appointment, error) {
	if _, err := s.GetAppointment(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input != nil {
		if input.AppointmentDate != nil {
			date, err := time.ParseInLocation(appointmentDateLayout, *input.AppointmentDate, time.Local)
			if err != nil {
				return nil, domain.ErrInvalidInput
			}
			updates["appointment_date"] = date
		}
		if input.TimeSlot != nil {
			if strings.TrimSpace(*input.TimeSlot) == "" {
				return nil, domain.ErrInvalidInput
			}
			updates["time_slot"] = strings.TrimSpace(*input.TimeSlot)
		}
		if input.Status != nil {
			if !validAppointmentStatuses[*input.Status] {
				return nil, domain.ErrInvalidInput
			}
			updates["status"] = *input.Status
		}
		if input.Notes != nil {
			updates["notes"] = *input.Notes
		}
	}

	if len(updates) > 0 {
		if err := s.appointmentRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.GetAppointment(ctx, id)
}

// DeleteAppointment removes an appointment
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id uint) error {
	deleted, err := s.appointmentRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrAppointmentNotFound
	}
	log.Printf("🗑️ Appointment deleted: %d", id)
	return nil
}

// SendReminders notifies every patient with a non-cancelled appointment on
// the given day. Returns the number of reminders dispatched.
func (s *AppointmentService) SendReminders(ctx context.Context, day time.Time) (int, error) {
	appointments, err := s.appointmentRepo.ListForDay(ctx, day)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range appointments {
		appointment := &appointments[i]
		message := fmt.Sprintf("Reminder: your appointment with Dr. %s is on %s at %s",
			appointment.Doctor.Name, appointment.AppointmentDate.Format(appointmentDateLayout), appointment.TimeSlot)
		s.notifier.NotifyPatient(ctx, &appointment.Patient, nil, message)
		sent++
	}

	if sent > 0 {
		log.Printf("📅 Sent %d appointment reminders for %s", sent, day.Format(appointmentDateLayout))
	}
	return sent, nil
}
