package handlers

import (
	"time"

	"smarthealth/internal/adapters/persistence/repositories"
	"smarthealth/internal/core/services"
	"smarthealth/internal/pkg/pagination"
	"smarthealth/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler handles appointment endpoints
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// CreateAppointment books a visit
// @Summary Create appointment
// @Description Book a visit and send a confirmation notification to the patient
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateAppointmentInput true "Appointment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	var input services.CreateAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	appointment, err := h.appointmentService.CreateAppointment(c.Context(), &input)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to create appointment")
	}
	return response.Created(c, "Appointment created", appointment)
}

// ListAppointments returns appointments with filters and pagination
// @Summary List appointments
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param doctor_id query int false "Filter by doctor"
// @Param patient_id query int false "Filter by patient"
// @Param department_id query int false "Filter by department"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Response
// @Router /appointments [get]
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.AppointmentFilter{
		DoctorID:     uint(c.QueryInt("doctor_id", 0)),
		PatientID:    uint(c.QueryInt("patient_id", 0)),
		DepartmentID: uint(c.QueryInt("department_id", 0)),
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			return response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		}
		filter.Date = date
	}

	appointments, total, err := h.appointmentService.ListAppointments(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to list appointments")
	}
	return c.JSON(pagination.NewResponse(appointments, params, total))
}

// GetAppointment returns one appointment
// @Summary Get appointment
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	appointment, err := h.appointmentService.GetAppointment(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to get appointment")
	}
	return response.Success(c, "Appointment retrieved", appointment)
}

// UpdateAppointment applies a partial update
// @Summary Update appointment
// @Description Update date, slot, status or notes
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Param body body services.UpdateAppointmentInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [patch]
func (h *AppointmentHandler) UpdateAppointment(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	var input services.UpdateAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	appointment, err := h.appointmentService.UpdateAppointment(c.Context(), id, &input)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to update appointment")
	}
	return response.Success(c, "Appointment updated", appointment)
}

// DeleteAppointment removes an appointment
// @Summary Delete appointment
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	if err := h.appointmentService.DeleteAppointment(c.Context(), id); err != nil {
		return response.FromDomainError(c, err, "Failed to delete appointment")
	}
	return response.Success(c, "Appointment deleted", nil)
}
