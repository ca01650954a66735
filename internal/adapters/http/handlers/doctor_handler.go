package handlers

import (
	"smarthealth/internal/core/services"
	"smarthealth/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DoctorHandler handles doctor endpoints
type DoctorHandler struct {
	doctorService *services.DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(doctorService *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{
		doctorService: doctorService,
	}
}

// CreateDoctor creates a new doctor
// @Summary Create doctor
// @Tags Doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDoctorInput true "Doctor data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors [post]
func (h *DoctorHandler) CreateDoctor(c *fiber.Ctx) error {
	var input services.CreateDoctorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doctor, err := h.doctorService.CreateDoctor(c.Context(), &input)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to create doctor")
	}
	return response.Created(c, "Doctor created", doctor)
}

// ListDoctors returns doctors, optionally by department
// @Summary List doctors
// @Tags Doctors
// @Produce json
// @Param department_id query int false "Filter by department"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) ListDoctors(c *fiber.Ctx) error {
	departmentID := uint(c.QueryInt("department_id", 0))

	doctors, err := h.doctorService.ListDoctors(c.Context(), departmentID)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to list doctors")
	}
	return response.Success(c, "Doctors retrieved", doctors)
}

// GetDoctor returns one doctor
// @Summary Get doctor
// @Tags Doctors
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	doctor, err := h.doctorService.GetDoctor(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to get doctor")
	}
	return response.Success(c, "Doctor retrieved", doctor)
}

// UpdateDoctor applies a partial update
// @Summary Update doctor
// @Tags Doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Doctor ID"
// @Param body body services.UpdateDoctorInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [patch]
func (h *DoctorHandler) UpdateDoctor(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	var input services.UpdateDoctorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doctor, err := h.doctorService.UpdateDoctor(c.Context(), id, &input)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to update doctor")
	}
	return response.Success(c, "Doctor updated", doctor)
}

// AddShift registers a weekly duty slot
// @Summary Add doctor shift
// @Tags Doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Doctor ID"
// @Param body body services.AddShiftInput true "Shift data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/shifts [post]
func (h *DoctorHandler) AddShift(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	var input services.AddShiftInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	shift, err := h.doctorService.AddShift(c.Context(), id, &input)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to add shift")
	}
	return response.Created(c, "Shift added", shift)
}

// ListShifts returns all shifts for a doctor
// @Summary List doctor shifts
// @Tags Doctors
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/shifts [get]
func (h *DoctorHandler) ListShifts(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	shifts, err := h.doctorService.ListShifts(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to list shifts")
	}
	return response.Success(c, "Shifts retrieved", shifts)
}
