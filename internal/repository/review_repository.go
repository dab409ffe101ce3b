package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stallfinder/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	FindByStallAndAuthor(ctx context.Context, stallID, userID uuid.UUID) (*model.Review, error)
	ListByStall(ctx context.Context, stallID uuid.UUID) ([]model.Review, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// FindByID finds a review by ID.
func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// FindByStallAndAuthor finds the review a user wrote for a stall, if any.
func (r *reviewRepository) FindByStallAndAuthor(ctx context.Context, stallID, userID uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Where("stall_id = ? AND user_id = ?", stallID, userID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByStall lists every review for a stall.
func (r *reviewRepository) ListByStall(ctx context.Context, stallID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Where("stall_id = ?", stallID).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// UpdateFields applies a field update to a review.
func (r *reviewRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes a review by ID.
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Review{}, "id = ?", id).Error
}
