package handlers

import (
	"smarthealth/internal/core/services"
	"smarthealth/internal/pkg/pagination"
	"smarthealth/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PatientHandler handles patient endpoints
type PatientHandler struct {
	patientService *services.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *services.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

// RegisterPatient creates a patient or returns the existing one by phone
// @Summary Register patient
// @Description Create a patient; an already-registered phone returns the existing record
// @Tags Patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterPatientInput true "Patient data"
// @Success 200 {object} response.Response
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /patients [post]
func (h *PatientHandler) RegisterPatient(c *fiber.Ctx) error {
	var input services.RegisterPatientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	patient, created, err := h.patientService.RegisterPatient(c.Context(), &input)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to register patient")
	}
	if created {
		return response.Created(c, "Patient registered", patient)
	}
	return response.Success(c, "Patient already registered", patient)
}

// GetPatient returns one patient
// @Summary Get patient
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [get]
func (h *PatientHandler) GetPatient(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	patient, err := h.patientService.GetPatient(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to get patient")
	}
	return response.Success(c, "Patient retrieved", patient)
}

// ListPatients returns patients with pagination
// @Summary List patients
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param phone query string false "Filter by phone"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Response
// @Router /patients [get]
func (h *PatientHandler) ListPatients(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	phone := c.Query("phone")

	patients, total, err := h.patientService.ListPatients(c.Context(), phone, params.Offset, params.Limit)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to list patients")
	}
	return c.JSON(pagination.NewResponse(patients, params, total))
}
