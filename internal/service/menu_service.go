package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stallfinder/internal/access"
	"stallfinder/internal/errors"
	"stallfinder/internal/model"
	"stallfinder/internal/repository"
	"stallfinder/internal/storage"
)

// CreateMenuItemInput carries the fields for a new menu item.
type CreateMenuItemInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Category    string
	Image       *storage.Upload
}

// UpdateMenuItemInput carries a partial menu item update. Nil fields keep
// their prior value.
type UpdateMenuItemInput struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
	Category    *string
	Image       *storage.Upload
}

// MenuService handles menu items scoped to a stall.
type MenuService interface {
	Create(ctx context.Context, actor *model.User, stallID uuid.UUID, input CreateMenuItemInput) (*model.MenuItem, error)
	List(ctx context.Context, stallID uuid.UUID, category string) ([]model.MenuItem, error)
	Update(ctx context.Context, actor *model.User, stallID, itemID uuid.UUID, input UpdateMenuItemInput) (*model.MenuItem, error)
	Delete(ctx context.Context, actor *model.User, stallID, itemID uuid.UUID) error
	DeleteByCategory(ctx context.Context, actor *model.User, stallID uuid.UUID, category string) error
}

type menuService struct {
	stallRepo repository.StallRepository
	menuRepo  repository.MenuItemRepository
	objects   storage.ObjectStore
}

// NewMenuService creates a new menu service.
func NewMenuService(stallRepo repository.StallRepository, menuRepo repository.MenuItemRepository, objects storage.ObjectStore) MenuService {
	return &menuService{
		stallRepo: stallRepo,
		menuRepo:  menuRepo,
		objects:   objects,
	}
}

func (s *menuService) findStall(ctx context.Context, stallID uuid.UUID) (*model.Stall, error) {
	stall, err := s.stallRepo.FindByID(ctx, stallID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrStallNotFound
		}
		return nil, fmt.Errorf("find stall: %w", err)
	}
	return stall, nil
}

// Create adds a menu item to a stall owned by the actor.
func (s *menuService) Create(ctx context.Context, actor *model.User, stallID uuid.UUID, input CreateMenuItemInput) (*model.MenuItem, error) {
	stall, err := s.findStall(ctx, stallID)
	if err != nil {
		return nil, err
	}
	if err := access.CanManageStall(actor, stall); err != nil {
		return nil, err
	}
	if err := access.ValidatePrice(input.Price); err != nil {
		return nil, err
	}

	var imageURL string
	if input.Image != nil {
		url, err := s.objects.Store(ctx, *input.Image, fmt.Sprintf("menu_items/%s", stallID))
		if err != nil {
			return nil, fmt.Errorf("upload menu item image: %w", err)
		}
		imageURL = url
	}

	item := &model.MenuItem{
		ID:          uuid.New(),
		StallID:     stallID,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Category:    input.Category,
		ImageURL:    imageURL,
	}

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}

	return item, nil
}

// List returns a stall's menu, optionally filtered by exact category match.
func (s *menuService) List(ctx context.Context, stallID uuid.UUID, category string) ([]model.MenuItem, error) {
	if _, err := s.findStall(ctx, stallID); err != nil {
		return nil, err
	}

	if category != "" {
		items, err := s.menuRepo.ListByStallAndCategory(ctx, stallID, category)
		if err != nil {
			return nil, fmt.Errorf("list menu items: %w", err)
		}
		return items, nil
	}

	items, err := s.menuRepo.ListByStall(ctx, stallID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

func (s *menuService) findItemForWrite(ctx context.Context, actor *model.User, stallID, itemID uuid.UUID) (*model.MenuItem, error) {
	stall, err := s.findStall(ctx, stallID)
	if err != nil {
		return nil, err
	}

	item, err := s.menuRepo.FindByID(ctx, itemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("find menu item: %w", err)
	}

	if err := access.CanManageMenuItem(actor, stall, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies a partial update to a menu item.
func (s *menuService) Update(ctx context.Context, actor *model.User, stallID, itemID uuid.UUID, input UpdateMenuItemInput) (*model.MenuItem, error) {
	if _, err := s.findItemForWrite(ctx, actor, stallID, itemID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}

	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Price != nil {
		if err := access.ValidatePrice(*input.Price); err != nil {
			return nil, err
		}
		fields["price"] = *input.Price
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}
	if input.Image != nil {
		url, err := s.objects.Store(ctx, *input.Image, fmt.Sprintf("menu_items/%s", stallID))
		if err != nil {
			return nil, fmt.Errorf("upload menu item image: %w", err)
		}
		fields["image_url"] = url
	}

	if err := s.menuRepo.UpdateFields(ctx, itemID, fields); err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}

	updated, err := s.menuRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("reload menu item: %w", err)
	}
	return updated, nil
}

// Delete removes a menu item.
func (s *menuService) Delete(ctx context.Context, actor *model.User, stallID, itemID uuid.UUID) error {
	if _, err := s.findItemForWrite(ctx, actor, stallID, itemID); err != nil {
		return err
	}

	if err := s.menuRepo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

// DeleteByCategory removes every item of a category from a stall. Deletions
// already applied are not rolled back if a later one fails.
func (s *menuService) DeleteByCategory(ctx context.Context, actor *model.User, stallID uuid.UUID, category string) error {
	stall, err := s.findStall(ctx, stallID)
	if err != nil {
		return err
	}
	if err := access.CanManageStall(actor, stall); err != nil {
		return err
	}

	items, err := s.menuRepo.ListByStallAndCategory(ctx, stallID, category)
	if err != nil {
		return fmt.Errorf("list menu items: %w", err)
	}
	for _, item := range items {
		if err := s.menuRepo.Delete(ctx, item.ID); err != nil {
			return fmt.Errorf("delete menu item %s: %w", item.ID, err)
		}
	}
	return nil
}
