package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stallfinder/internal/access"
	"stallfinder/internal/errors"
	"stallfinder/internal/model"
	"stallfinder/internal/repository"
)

// ReviewService handles reviews scoped to a stall and authored by customers.
type ReviewService interface {
	Create(ctx context.Context, actor *model.User, stallID uuid.UUID, rating int, comment string) (*model.Review, error)
	List(ctx context.Context, stallID uuid.UUID) ([]model.Review, error)
	Update(ctx context.Context, actor *model.User, stallID, reviewID uuid.UUID, rating int, comment string) (*model.Review, error)
	Delete(ctx context.Context, actor *model.User, stallID, reviewID uuid.UUID) error
}

type reviewService struct {
	stallRepo  repository.StallRepository
	reviewRepo repository.ReviewRepository
}

// NewReviewService creates a new review service.
func NewReviewService(stallRepo repository.StallRepository, reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{
		stallRepo:  stallRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *reviewService) findStall(ctx context.Context, stallID uuid.UUID) (*model.Stall, error) {
	stall, err := s.stallRepo.FindByID(ctx, stallID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrStallNotFound
		}
		return nil, fmt.Errorf("find stall: %w", err)
	}
	return stall, nil
}

// Create adds a review for a stall. One review per user per stall; owners
// cannot review their own stall. The author's display name is captured at
// creation time.
func (s *reviewService) Create(ctx context.Context, actor *model.User, stallID uuid.UUID, rating int, comment string) (*model.Review, error) {
	stall, err := s.findStall(ctx, stallID)
	if err != nil {
		return nil, err
	}

	if err := access.CanCreateReview(actor, stall); err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.FindByStallAndAuthor(ctx, stallID, actor.ID)
	if err == nil && existing != nil {
		return nil, errors.ErrDuplicateReview
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	if err := access.ValidateRating(rating); err != nil {
		return nil, err
	}

	review := &model.Review{
		ID:       uuid.New(),
		StallID:  stallID,
		UserID:   actor.ID,
		UserName: actor.FullName,
		Rating:   rating,
		Comment:  comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	return review, nil
}

// List returns every review for a stall.
func (s *reviewService) List(ctx context.Context, stallID uuid.UUID) ([]model.Review, error) {
	if _, err := s.findStall(ctx, stallID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByStall(ctx, stallID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) findReviewForWrite(ctx context.Context, actor *model.User, stallID, reviewID uuid.UUID) (*model.Review, error) {
	stall, err := s.findStall(ctx, stallID)
	if err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}

	if err := access.CanManageReview(actor, stall, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Update replaces the rating and comment of a review authored by the actor.
func (s *reviewService) Update(ctx context.Context, actor *model.User, stallID, reviewID uuid.UUID, rating int, comment string) (*model.Review, error) {
	if _, err := s.findReviewForWrite(ctx, actor, stallID, reviewID); err != nil {
		return nil, err
	}

	if err := access.ValidateRating(rating); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"rating":     rating,
		"comment":    comment,
		"updated_at": time.Now().UTC(),
	}
	if err := s.reviewRepo.UpdateFields(ctx, reviewID, fields); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	updated, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("reload review: %w", err)
	}
	return updated, nil
}

// Delete removes a review authored by the actor.
func (s *reviewService) Delete(ctx context.Context, actor *model.User, stallID, reviewID uuid.UUID) error {
	if _, err := s.findReviewForWrite(ctx, actor, stallID, reviewID); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}
