package handlers

import (
	"smarthealth/internal/core/services"
	"smarthealth/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DepartmentHandler handles department endpoints
type DepartmentHandler struct {
	departmentService *services.DepartmentService
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(departmentService *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		departmentService: departmentService,
	}
}

// CreateDepartment creates a new department
// @Summary Create department
// @Tags Departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDepartmentInput true "Department data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /departments [post]
func (h *DepartmentHandler) CreateDepartment(c *fiber.Ctx) error {
	var input services.CreateDepartmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	department, err := h.departmentService.CreateDepartment(c.Context(), &input)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to create department")
	}
	return response.Created(c, "Department created", department)
}

// ListDepartments returns all departments
// @Summary List departments
// @Tags Departments
// @Produce json
// @Success 200 {object} response.Response
// @Router /departments [get]
func (h *DepartmentHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.departmentService.ListDepartments(c.Context())
	if err != nil {
		return response.FromDomainError(c, err, "Failed to list departments")
	}
	return response.Success(c, "Departments retrieved", departments)
}

// GetDepartment returns one department
// @Summary Get department
// @Tags Departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departments/{id} [get]
func (h *DepartmentHandler) GetDepartment(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	department, err := h.departmentService.GetDepartment(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to get department")
	}
	return response.Success(c, "Department retrieved", department)
}

// UpdateDepartment applies a partial update
// @Summary Update department
// @Description Update name, description, open flag or queue capacity
// @Tags Departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param body body services.UpdateDepartmentInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departments/{id} [patch]
func (h *DepartmentHandler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	var input services.UpdateDepartmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	department, err := h.departmentService.UpdateDepartment(c.Context(), id, &input)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to update department")
	}
	return response.Success(c, "Department updated", department)
}
