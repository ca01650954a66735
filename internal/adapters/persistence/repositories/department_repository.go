package repositories

import (
	"context"
	"errors"

	"smarthealth/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormDepartmentRepository handles department database operations
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// Create inserts a new department
func (r *GormDepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

// GetByID returns a department by ID, nil when absent
func (r *GormDepartmentRepository) GetByID(ctx context.Context, id uint) (*models.Department, error) {
	var department models.Department
	err := r.db.WithContext(ctx).First(&department, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &department, nil
}

// List returns all departments ordered by name
func (r *GormDepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error
	return departments, err
}

// Update applies field updates to a department
func (r *GormDepartmentRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Department{}).Where("id = ?", id).Updates(updates).Error
}
