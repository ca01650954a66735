package services

import (
	"context"
	"log"
	"strings"

	"smarthealth/internal/adapters/persistence/models"
	"smarthealth/internal/adapters/persistence/repositories"
	"smarthealth/internal/core/domain"
)

// DepartmentService handles department administration
type DepartmentService struct {
	departmentRepo repositories.DepartmentRepository
}

// NewDepartmentService creates a new department service
func NewDepartmentService(departmentRepo repositories.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departmentRepo: departmentRepo}
}

// CreateDepartmentInput represents a department create request
type CreateDepartmentInput struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	MaxQueueSize int    `json:"max_queue_size"`
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, input *CreateDepartmentInput) (*models.Department, error) {
	if input == nil || strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.MaxQueueSize < 0 {
		return nil, domain.ErrInvalidInput
	}

	maxQueueSize := input.MaxQueueSize
	if maxQueueSize == 0 {
		maxQueueSize = 50
	}

	department := &models.Department{
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		IsOpen:       true,
		MaxQueueSize: maxQueueSize,
	}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}

	log.Printf("✅ Department created: %s (max queue %d)", department.Name, department.MaxQueueSize)
	return department, nil
}

// GetDepartment returns a department by ID
func (s *DepartmentService) GetDepartment(ctx context.Context, id uint) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, domain.ErrDepartmentNotFound
	}
	return department, nil
}

// ListDepartments returns all departments
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return s.departmentRepo.List(ctx)
}

// UpdateDepartmentInput carries partial updates; nil fields stay unchanged
type UpdateDepartmentInput struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	IsOpen       *bool   `json:"is_open"`
	MaxQueueSize *int    `json:"max_queue_size"`
}

// UpdateDepartment applies a partial update and returns the fresh record
func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uint, input *UpdateDepartmentInput) (*models.Department, error) {
	department, err := s.GetDepartment(ctx, id)
	if err != nil {
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
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.IsOpen != nil {
			updates["is_open"] = *input.IsOpen
		}
		if input.MaxQueueSize != nil {
			if *input.MaxQueueSize <= 0 {
				return nil, domain.ErrInvalidInput
			}
			updates["max_queue_size"] = *input.MaxQueueSize
		}
	}
	if len(updates) == 0 {
		return department, nil
	}

	if err := s.departmentRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.GetDepartment(ctx, id)
}
