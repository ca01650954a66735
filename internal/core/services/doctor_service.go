package services

import (
	"context"
	"log"
	"strings"

	"smarthealth/internal/adapters/persistence/models"
	"smarthealth/internal/adapters/persistence/repositories"
	"smarthealth/internal/core/domain"
)

// DoctorService handles doctor records and duty shifts
type DoctorService struct {
	doctorRepo     repositories.DoctorRepository
	departmentRepo repositories.DepartmentRepository
}

// NewDoctorService creates a new doctor service
func NewDoctorService(doctorRepo repositories.DoctorRepository, departmentRepo repositories.DepartmentRepository) *DoctorService {
	return &DoctorService{
		doctorRepo:     doctorRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateDoctorInput represents a doctor create request
type CreateDoctorInput struct {
	Name           string `json:"name" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
	DepartmentID   uint   `json:"department_id" validate:"required"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
}

// CreateDoctor creates a new doctor in an existing department
func (s *DoctorService) CreateDoctor(ctx context.Context, input *CreateDoctorInput) (*models.Doctor, error) {
	if input == nil || strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Specialization) == "" || input.DepartmentID == 0 {
		return nil, domain.ErrInvalidInput
	}

	department, err := s.departmentRepo.GetByID(ctx, input.DepartmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, domain.ErrDepartmentNotFound
	}

	doctor := &models.Doctor{
		Name:           strings.TrimSpace(input.Name),
		Specialization: strings.TrimSpace(input.Specialization),
		DepartmentID:   input.DepartmentID,
		Phone:          input.Phone,
		Email:          input.Email,
		IsAvailable:    true,
	}
	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	log.Printf("✅ Doctor created: %s (%s, department=%s)", doctor.Name, doctor.Specialization, department.Name)
	return s.GetDoctor(ctx, doctor.ID)
}

// GetDoctor returns a doctor by ID
func (s *DoctorService) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, domain.ErrDoctorNotFound
	}
	return doctor, nil
}

// ListDoctors returns doctors, optionally filtered by department
func (s *DoctorService) ListDoctors(ctx context.Context, departmentID uint) ([]models.Doctor, error) {
	return s.doctorRepo.List(ctx, departmentID)
}

// UpdateDoctorInput carries partial updates; nil fields stay unchanged
type UpdateDoctorInput struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	IsAvailable    *bool   `json:"is_available"`
	DepartmentID   *uint   `json:"department_id"`
}

// UpdateDoctor applies a partial update and returns the fresh record
func (s *DoctorService) UpdateDoctor(ctx context.Context, id uint, input *UpdateDoctorInput) (*models.Doctor, error) {
	if _, err := s.GetDoctor(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input != nil {
		if input.Name != nil {
			if strings.TrimSpace(*input.Name) == "" {
				return nil, domain.ErrInvalidInput
			}
			updates["name"] = strings.TrimSpace(*input.Name)
		}
		if input.Specialization != nil {
			updates["specialization"] = *input.Specialization
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Email != nil {
			updates["email"] = *input.Email
		}
		if input.IsAvailable != nil {
			updates["is_available"] = *input.IsAvailable
		}
		if input.DepartmentID != nil {
			department, err := s.departmentRepo.GetByID(ctx, *input.DepartmentID)
			if err != nil {
				return nil, err
			}
			if department == nil {
				return nil, domain.ErrDepartmentNotFound
			}
			updates["department_id"] = *input.DepartmentID
		}
	}

	if len(updates) > 0 {
		if err := s.doctorRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.GetDoctor(ctx, id)
}

// ============================================================
// Shifts
// ============================================================

// AddShiftInput represents a weekly duty slot request
type AddShiftInput struct {
	DayOfWeek string `json:"day_of_week" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

var validDaysOfWeek = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// AddShift registers a weekly duty slot for a doctor
func (s *DoctorService) AddShift(ctx context.Context, doctorID uint, input *AddShiftInput) (*models.Shift, error) {
	if input == nil || input.StartTime == "" || input.EndTime == "" {
		return nil, domain.ErrInvalidInput
	}
	day := strings.ToLower(strings.TrimSpace(input.DayOfWeek))
	if !validDaysOfWeek[day] {
		return nil, domain.ErrInvalidInput
	}

	doctor, err := s.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	shift := &models.Shift{
		DoctorID:     doctor.ID,
		DepartmentID: doctor.DepartmentID,
		DayOfWeek:    day,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		IsActive:     true,
	}
	if err := s.doctorRepo.CreateShift(ctx, shift); err != nil {
		return nil, err
	}

	log.Printf("✅ Shift added: doctor=%s %s %s-%s", doctor.Name, day, input.StartTime, input.EndTime)
	return shift, nil
}

// ListShifts returns all shifts for a doctor
func (s *DoctorService) ListShifts(ctx context.Context, doctorID uint) ([]models.Shift, error) {
	if _, err := s.GetDoctor(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.doctorRepo.ListShifts(ctx, doctorID)
}
