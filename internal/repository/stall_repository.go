package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stallfinder/internal/model"
)

// StallRepository defines stall persistence operations.
type StallRepository interface {
	Create(ctx context.Context, stall *model.Stall) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Stall, error)
	List(ctx context.Context) ([]model.Stall, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type stallRepository struct {
	db *gorm.DB
}

// NewStallRepository creates a new stall repository.
func NewStallRepository(db *gorm.DB) StallRepository {
	return &stallRepository{db: db}
}

// Create creates a new stall.
func (r *stallRepository) Create(ctx context.Context, stall *model.Stall) error {
	return r.db.WithContext(ctx).Create(stall).Error
}

// FindByID finds a stall by ID.
func (r *stallRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Stall, error) {
	var stall model.Stall
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&stall).Error; err != nil {
		return nil, err
	}
	return &stall, nil
}

// List returns every stall in storage order.
func (r *stallRepository) List(ctx context.Context) ([]model.Stall, error) {
	var stalls []model.Stall
	if err := r.db.WithContext(ctx).Find(&stalls).Error; err != nil {
		return nil, err
	}
	return stalls, nil
}

// UpdateFields applies a partial field update to a stall.
func (r *stallRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Stall{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes a stall by ID.
func (r *stallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Stall{}, "id = ?", id).Error
}
