package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"stallfinder/internal/errors"
	"stallfinder/internal/model"
	"stallfinder/internal/storage"
)

func TestMenuService_Create(t *testing.T) {
	owner := testOwner()
	stallID := uuid.New()
	stall := &model.Stall{ID: stallID, OwnerID: owner.ID, Name: "Laksa Corner"}

	tests := []struct {
		name          string
		actor         *model.User
		input         CreateMenuItemInput
		setupMock     func(*MockStallRepository, *MockMenuItemRepository, *MockObjectStore)
		expectedError error
	}{
		{
			name:  "owner adds item",
			actor: owner,
			input: CreateMenuItemInput{Name: "Laksa", Price: decimal.NewFromFloat(5.50), Category: "Noodles"},
			setupMock: func(mStall *MockStallRepository, mMenu *MockMenuItemRepository, mObj *MockObjectStore) {
				mStall.On("FindByID", mock.Anything, stallID).Return(stall, nil)
				mMenu.On("Create", mock.Anything, mock.AnythingOfType("*model.MenuItem")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "owner adds item with photo",
			actor: owner,
			input: CreateMenuItemInput{
				Name:  "Laksa",
				Price: decimal.NewFromFloat(5.50),
				Image: &storage.Upload{Filename: "laksa.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")},
			},
			setupMock: func(mStall *MockStallRepository, mMenu *MockMenuItemRepository, mObj *MockObjectStore) {
				mStall.On("FindByID", mock.Anything, stallID).Return(stall, nil)
				mObj.On("Store", mock.Anything, mock.AnythingOfType("storage.Upload"), mock.AnythingOfType("string")).
					Return("https://bucket.s3.ap-southeast-1.amazonaws.com/menu_items/key.jpg", nil)
				mMenu.On("Create", mock.Anything, mock.AnythingOfType("*model.MenuItem")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "free item is allowed",
			actor: owner,
			input: CreateMenuItemInput{Name: "Ice Water", Price: decimal.Zero},
			setupMock: func(mStall *MockStallRepository, mMenu *MockMenuItemRepository, mObj *MockObjectStore) {
				mStall.On("FindByID", mock.Anything, stallID).Return(stall, nil)
				mMenu.On("Create", mock.Anything, mock.AnythingOfType("*model.MenuItem")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "negative price rejected",
			actor: owner,
			input: CreateMenuItemInput{Name: "Laksa", Price: decimal.NewFromFloat(-1.00)},
			setupMock: func(mStall *MockStallRepository, mMenu *MockMenuItemRepository, mObj *MockObjectStore) {
				mStall.On("FindByID", mock.Anything, stallID).Return(stall, nil)
			},
			expectedError: errors.ErrInvalidPrice,
		},
		{
			name:  "non-owner rejected",
			actor: testCustomer(),
			input: CreateMenuItemInput{Name: "Laksa", Price: decimal.NewFromFloat(5.50)},
			setupMock: func(mStall *MockStallRepository, mMenu *MockMenuItemRepository, mObj *MockObjectStore) {
				mStall.On("FindByID", mock.Anything, stallID).Return(stall, nil)
			},
			expectedError: errors.ErrNotStallOwner,
		},
		{
			name:  "unknown stall",
			actor: owner,
			input: CreateMenuItemInput{Name: "Laksa", Price: decimal.NewFromFloat(5.50)},
			setupMock: func(mStall *MockStallRepository, mMenu *MockMenuItemRepository, mObj *MockObjectStore) {
				mStall.On("FindByID", mock.Anything, stallID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrStallNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStallRepo := new(MockStallRepository)
			mockMenuRepo := new(MockMenuItemRepository)
			mockObjects := new(MockObjectStore)
			tt.setupMock(mockStallRepo, mockMenuRepo, mockObjects)

			service := NewMenuService(mockStallRepo, mockMenuRepo, mockObjects)
			item, err := service.Create(context.Background(), tt.actor, stallID, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, item)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, item)
				assert.Equal(t, stallID, item.StallID)
				assert.True(t, tt.input.Price.Equal(item.Price))
			}

			mockStallRepo.AssertExpectations(t)
			mockMenuRepo.AssertExpectations(t)
			mockObjects.AssertExpectations(t)
		})
	}
}

func TestMenuService_List(t *testing.T) {
	stallID := uuid.New()
	stall := &model.Stall{ID: stallID, Name: "Laksa Corner"}
	items := []model.MenuItem{{ID: uuid.New(), StallID: stallID, Name: "Laksa"}}

	t.Run("all items", func(t *testing.T) {
		mockStallRepo := new(MockStallRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(stall, nil)
		mockMenuRepo.On("ListByStall", mock.Anything, stallID).Return(items, nil)

		service := NewMenuService(mockStallRepo, mockMenuRepo, new(MockObjectStore))
		got, err := service.List(context.Background(), stallID, "")

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		mockMenuRepo.AssertNotCalled(t, "ListByStallAndCategory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("filtered by category", func(t *testing.T) {
		mockStallRepo := new(MockStallRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(stall, nil)
		mockMenuRepo.On("ListByStallAndCategory", mock.Anything, stallID, "Noodles").Return(items, nil)

		service := NewMenuService(mockStallRepo, mockMenuRepo, new(MockObjectStore))
		got, err := service.List(context.Background(), stallID, "Noodles")

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		mockMenuRepo.AssertNotCalled(t, "ListByStall", mock.Anything, mock.Anything)
	})

	t.Run("unknown stall", func(t *testing.T) {
		mockStallRepo := new(MockStallRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(nil, gorm.ErrRecordNotFound)

		service := NewMenuService(mockStallRepo, new(MockMenuItemRepository), new(MockObjectStore))
		got, err := service.List(context.Background(), stallID, "")

		assert.Equal(t, errors.ErrStallNotFound, err)
		assert.Nil(t, got)
	})
}

func TestMenuService_Update(t *testing.T) {
	owner := testOwner()
	stallID := uuid.New()
	itemID := uuid.New()
	stall := &model.Stall{ID: stallID, OwnerID: owner.ID}
	item := &model.MenuItem{ID: itemID, StallID: stallID, Name: "Laksa", Price: decimal.NewFromFloat(5.50)}

	t.Run("partial update", func(t *testing.T) {
		mockStallRepo := new(MockStallRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(stall, nil)
		mockMenuRepo.On("FindByID", mock.Anything, itemID).Return(item, nil)

		newPrice := decimal.NewFromFloat(6.00)
		mockMenuRepo.On("UpdateFields", mock.Anything, itemID, mock.MatchedBy(func(fields map[string]interface{}) bool {
			price, ok := fields["price"].(decimal.Decimal)
			_, hasName := fields["name"]
			return ok && price.Equal(newPrice) && !hasName
		})).Return(nil)

		service := NewMenuService(mockStallRepo, mockMenuRepo, new(MockObjectStore))
		updated, err := service.Update(context.Background(), owner, stallID, itemID, UpdateMenuItemInput{Price: &newPrice})

		assert.NoError(t, err)
		assert.NotNil(t, updated)
		mockMenuRepo.AssertExpectations(t)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		mockStallRepo := new(MockStallRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(stall, nil)
		mockMenuRepo.On("FindByID", mock.Anything, itemID).Return(item, nil)

		badPrice := decimal.NewFromFloat(-0.01)
		service := NewMenuService(mockStallRepo, mockMenuRepo, new(MockObjectStore))
		updated, err := service.Update(context.Background(), owner, stallID, itemID, UpdateMenuItemInput{Price: &badPrice})

		assert.Equal(t, errors.ErrInvalidPrice, err)
		assert.Nil(t, updated)
		mockMenuRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("item of another stall", func(t *testing.T) {
		otherStallItem := &model.MenuItem{ID: itemID, StallID: uuid.New()}
		mockStallRepo := new(MockStallRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(stall, nil)
		mockMenuRepo.On("FindByID", mock.Anything, itemID).Return(otherStallItem, nil)

		newName := "Mee Siam"
		service := NewMenuService(mockStallRepo, mockMenuRepo, new(MockObjectStore))
		updated, err := service.Update(context.Background(), owner, stallID, itemID, UpdateMenuItemInput{Name: &newName})

		assert.Equal(t, errors.ErrStallMismatch, err)
		assert.Nil(t, updated)
	})

	t.Run("mismatch reported before ownership", func(t *testing.T) {
		otherStallItem := &model.MenuItem{ID: itemID, StallID: uuid.New()}
		mockStallRepo := new(MockStallRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(stall, nil)
		mockMenuRepo.On("FindByID", mock.Anything, itemID).Return(otherStallItem, nil)

		newName := "Mee Siam"
		service := NewMenuService(mockStallRepo, mockMenuRepo, new(MockObjectStore))
		_, err := service.Update(context.Background(), testCustomer(), stallID, itemID, UpdateMenuItemInput{Name: &newName})

		assert.Equal(t, errors.ErrStallMismatch, err)
	})

	t.Run("unknown item", func(t *testing.T) {
		mockStallRepo := new(MockStallRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(stall, nil)
		mockMenuRepo.On("FindByID", mock.Anything, itemID).Return(nil, gorm.ErrRecordNotFound)

		newName := "Mee Siam"
		service := NewMenuService(mockStallRepo, mockMenuRepo, new(MockObjectStore))
		updated, err := service.Update(context.Background(), owner, stallID, itemID, UpdateMenuItemInput{Name: &newName})

		assert.Equal(t, errors.ErrMenuItemNotFound, err)
		assert.Nil(t, updated)
	})
}

func TestMenuService_Delete(t *testing.T) {
	owner := testOwner()
	stallID := uuid.New()
	itemID := uuid.New()
	stall := &model.Stall{ID: stallID, OwnerID: owner.ID}
	item := &model.MenuItem{ID: itemID, StallID: stallID}

	t.Run("owner deletes item", func(t *testing.T) {
		mockStallRepo := new(MockStallRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(stall, nil)
		mockMenuRepo.On("FindByID", mock.Anything, itemID).Return(item, nil)
		mockMenuRepo.On("Delete", mock.Anything, itemID).Return(nil)

		service := NewMenuService(mockStallRepo, mockMenuRepo, new(MockObjectStore))
		err := service.Delete(context.Background(), owner, stallID, itemID)

		assert.NoError(t, err)
		mockMenuRepo.AssertExpectations(t)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		mockStallRepo := new(MockStallRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(stall, nil)
		mockMenuRepo.On("FindByID", mock.Anything, itemID).Return(item, nil)

		service := NewMenuService(mockStallRepo, mockMenuRepo, new(MockObjectStore))
		err := service.Delete(context.Background(), testCustomer(), stallID, itemID)

		assert.Equal(t, errors.ErrNotStallOwner, err)
		mockMenuRepo.AssertNotCalled(t, "Delete", mock.Anything, itemID)
	})
}

func TestMenuService_DeleteByCategory(t *testing.T) {
	owner := testOwner()
	stallID := uuid.New()
	stall := &model.Stall{ID: stallID, OwnerID: owner.ID}

	t.Run("deletes every item of the category", func(t *testing.T) {
		itemA := model.MenuItem{ID: uuid.New(), StallID: stallID, Category: "Noodles"}
		itemB := model.MenuItem{ID: uuid.New(), StallID: stallID, Category: "Noodles"}

		mockStallRepo := new(MockStallRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(stall, nil)
		mockMenuRepo.On("ListByStallAndCategory", mock.Anything, stallID, "Noodles").Return([]model.MenuItem{itemA, itemB}, nil)
		mockMenuRepo.On("Delete", mock.Anything, itemA.ID).Return(nil)
		mockMenuRepo.On("Delete", mock.Anything, itemB.ID).Return(nil)

		service := NewMenuService(mockStallRepo, mockMenuRepo, new(MockObjectStore))
		err := service.DeleteByCategory(context.Background(), owner, stallID, "Noodles")

		assert.NoError(t, err)
		mockMenuRepo.AssertExpectations(t)
	})

	t.Run("empty category is a no-op", func(t *testing.T) {
		mockStallRepo := new(MockStallRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(stall, nil)
		mockMenuRepo.On("ListByStallAndCategory", mock.Anything, stallID, "Desserts").Return([]model.MenuItem{}, nil)

		service := NewMenuService(mockStallRepo, mockMenuRepo, new(MockObjectStore))
		err := service.DeleteByCategory(context.Background(), owner, stallID, "Desserts")

		assert.NoError(t, err)
		mockMenuRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("stops at first failed delete", func(t *testing.T) {
		itemA := model.MenuItem{ID: uuid.New(), StallID: stallID, Category: "Noodles"}
		itemB := model.MenuItem{ID: uuid.New(), StallID: stallID, Category: "Noodles"}

		mockStallRepo := new(MockStallRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockStallRepo.On("FindByID", mock.Anything, stallID).Return(stall, nil)
		mockMenuRepo.On("ListByStallAndCategory", mock.Anything, stallID, "Noodles").Return([]model.MenuItem{itemA, itemB}, nil)
		mockMenuRepo.On("Delete", mock.Anything, itemA.ID).Return(gorm.ErrInvalidDB)

		service := NewMenuService(mockStallRepo, mockMenuRepo, new(MockObjectStore))
		err := service.DeleteByCategory(context.Background(), owner, stallID, "Noodles")

		assert.Error(t, err)
		mockMenuRepo.AssertNotCalled(t, "Delete", mock.Anything, itemB.ID)
	})
}
