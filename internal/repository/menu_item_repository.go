package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stallfinder/internal/model"
)

// MenuItemRepository defines menu item persistence operations.
type MenuItemRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	ListByStall(ctx context.Context, stallID uuid.UUID) ([]model.MenuItem, error)
	ListByStallAndCategory(ctx context.Context, stallID uuid.UUID, category string) ([]model.MenuItem, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository creates a new menu item repository.
func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

// Create creates a new menu item.
func (r *menuItemRepository) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID finds a menu item by ID.
func (r *menuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByStall lists every menu item belonging to a stall.
func (r *menuItemRepository) ListByStall(ctx context.Context, stallID uuid.UUID) ([]model.MenuItem, error) {
	var items []model.MenuItem
	if err := r.db.WithContext(ctx).Where("stall_id = ?", stallID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByStallAndCategory lists a stall's menu items with an exact category match.
func (r *menuItemRepository) ListByStallAndCategory(ctx context.Context, stallID uuid.UUID, category string) ([]model.MenuItem, error) {
	var items []model.MenuItem
	if err := r.db.WithContext(ctx).
		Where("stall_id = ? AND category = ?", stallID, category).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateFields applies a partial field update to a menu item.
func (r *menuItemRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.MenuItem{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes a menu item by ID.
func (r *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MenuItem{}, "id = ?", id).Error
}
