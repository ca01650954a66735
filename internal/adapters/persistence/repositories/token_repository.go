package repositories

import (
	"context"
	"errors"
	"time"

	"smarthealth/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormTokenRepository handles queue token database operations
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *gorm.DB) *GormTokenRepository {
	return &GormTokenRepository{db: db}
}

// Create inserts a new token
func (r *GormTokenRepository) Create(ctx context.Context, token *models.Token) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByID returns a token by ID with all relations
func (r *GormTokenRepository) GetByID(ctx context.Context, id uint) (*models.Token, error) {
	var token models.Token
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Department").
		Preload("Doctor").
		First(&token, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// CountActive counts tokens occupying a queue slot for a department since dayStart
func (r *GormTokenRepository) CountActive(ctx context.Context, departmentID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Token{}).
		Where("department_id = ? AND created_at >= ? AND status IN ?",
			departmentID, since, models.ActiveTokenStatuses).
		Count(&count).Error
	return count, err
}

// GetLatest returns the most recently issued token for a department since dayStart,
// any status, or nil when the department has no tokens yet today
func (r *GormTokenRepository) GetLatest(ctx context.Context, departmentID uint, since time.Time) (*models.Token, error) {
	var token models.Token
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND created_at >= ?", departmentID, since).
		// id breaks ties between rows sharing a datetime(3) timestamp
		Order("created_at DESC, id DESC").
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// List returns tokens matching the filter, priority first then FIFO
func (r *GormTokenRepository) List(ctx context.Context, filter TokenFilter) ([]models.Token, error) {
	query := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Department").
		Preload("Doctor")
	if filter.DepartmentID != 0 {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}

	var tokens []models.Token
	err := query.Order("priority DESC, created_at ASC").Find(&tokens).Error
	return tokens, err
}

// GetNextWaiting finds the next token to call: priority first, then FIFO
func (r *GormTokenRepository) GetNextWaiting(ctx context.Context, departmentID uint, since time.Time) (*models.Token, error) {
	var token models.Token
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Department").
		Where("department_id = ? AND created_at >= ? AND status = ?",
			departmentID, since, models.TokenStatusWaiting).
		Order("priority DESC, created_at ASC").
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// GetNowServing returns the most recently called token for the display board
func (r *GormTokenRepository) GetNowServing(ctx context.Context, departmentID uint, since time.Time) (*models.Token, error) {
	var token models.Token
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Department").
		Where("department_id = ? AND created_at >= ? AND status IN ?",
			departmentID, since, []string{models.TokenStatusCalled, models.TokenStatusServing}).
		Order("called_at DESC").
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// UpdateStatus updates token status and related timestamps
func (r *GormTokenRepository) UpdateStatus(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Token{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes a token row, reporting whether it existed
func (r *GormTokenRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Token{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
