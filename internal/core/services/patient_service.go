package services

import (
	"context"
	"log"
	"strings"

	"smarthealth/internal/adapters/persistence/models"
	"smarthealth/internal/adapters/persistence/repositories"
	"smarthealth/internal/core/domain"
)

// PatientService handles patient registration and lookup
type PatientService struct {
	patientRepo repositories.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repositories.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// RegisterPatientInput represents a patient registration request
type RegisterPatientInput struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	Email          string `json:"email"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medical_history"`
}

// RegisterPatient creates a patient, or returns the existing record when the
// phone number is already registered. Phone is the natural key at the front desk.
func (s *PatientService) RegisterPatient(ctx context.Context, input *RegisterPatientInput) (*models.Patient, bool, error) {
	if input == nil || strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "" {
		return nil, false, domain.ErrInvalidInput
	}

	phone := strings.TrimSpace(input.Phone)
	existing, err := s.patientRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	patient := &models.Patient{
		Name:           strings.TrimSpace(input.Name),
		Phone:          phone,
		Email:          strings.TrimSpace(input.Email),
		Age:            input.Age,
		Gender:         input.Gender,
		Address:        input.Address,
		MedicalHistory: input.MedicalHistory,
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, false, err
	}

	log.Printf("✅ Patient registered: %s (phone=%s)", patient.Name, patient.Phone)
	return patient, true, nil
}

// GetPatient returns a patient by ID
func (s *PatientService) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrPatientNotFound
	}
	return patient, nil
}

// ListPatients returns patients, optionally filtered by phone
func (s *PatientService) ListPatients(ctx context.Context, phone string, offset, limit int) ([]models.Patient, int64, error) {
	return s.patientRepo.List(ctx, strings.TrimSpace(phone), offset, limit)
}
