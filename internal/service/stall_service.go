package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"stallfinder/internal/access"
	"stallfinder/internal/cache"
	"stallfinder/internal/errors"
	"stallfinder/internal/geo"
	"stallfinder/internal/model"
	"stallfinder/internal/repository"
	"stallfinder/internal/storage"
)

const (
	stallCacheTTL = 5 * time.Minute

	// DefaultRadiusKm is the distance filter applied when a geo listing
	// does not specify a radius.
	DefaultRadiusKm = 5.0
)

// CreateStallInput carries the fields for a new stall.
type CreateStallInput struct {
	Name        string
	Description string
	Location    model.Location
	Image       *storage.Upload
}

// UpdateStallInput carries a partial stall update. Nil fields keep their
// prior value; location components merge into the existing location.
type UpdateStallInput struct {
	Name        *string
	Description *string
	Latitude    *float64
	Longitude   *float64
	Address     *string
	Image       *storage.Upload
}

// ListStallsQuery optionally narrows a listing to stalls within RadiusKm of
// a center point. Radius is ignored unless a center is present.
type ListStallsQuery struct {
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64
}

// StallService handles stall operations including the delete cascade to
// menu items and reviews.
type StallService interface {
	Create(ctx context.Context, actor *model.User, input CreateStallInput) (*model.Stall, error)
	List(ctx context.Context, query ListStallsQuery) ([]model.Stall, error)
	Get(ctx context.Context, stallID uuid.UUID) (*model.Stall, error)
	Update(ctx context.Context, actor *model.User, stallID uuid.UUID, input UpdateStallInput) (*model.Stall, error)
	Delete(ctx context.Context, actor *model.User, stallID uuid.UUID) error
}

type stallService struct {
	stallRepo  repository.StallRepository
	menuRepo   repository.MenuItemRepository
	reviewRepo repository.ReviewRepository
	objects    storage.ObjectStore
	cache      *cache.Client
	log        zerolog.Logger
}

// NewStallService creates a new stall service.
func NewStallService(
	stallRepo repository.StallRepository,
	menuRepo repository.MenuItemRepository,
	reviewRepo repository.ReviewRepository,
	objects storage.ObjectStore,
	cache *cache.Client,
	log zerolog.Logger,
) StallService {
	return &stallService{
		stallRepo:  stallRepo,
		menuRepo:   menuRepo,
		reviewRepo: reviewRepo,
		objects:    objects,
		cache:      cache,
		log:        log,
	}
}

func (s *stallService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("stall:%s", id.String())
}

// Create registers a new stall for an owner-role actor.
func (s *stallService) Create(ctx context.Context, actor *model.User, input CreateStallInput) (*model.Stall, error) {
	if err := access.RequireOwner(actor); err != nil {
		return nil, err
	}
	if err := access.ValidateLocation(input.Location); err != nil {
		return nil, err
	}

	var imageURL string
	if input.Image != nil {
		url, err := s.objects.Store(ctx, *input.Image, fmt.Sprintf("stalls/%s", actor.ID))
		if err != nil {
			return nil, fmt.Errorf("upload stall image: %w", err)
		}
		imageURL = url
	}

	stall := &model.Stall{
		ID:          uuid.New(),
		OwnerID:     actor.ID,
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		ImageURL:    imageURL,
	}

	if err := s.stallRepo.Create(ctx, stall); err != nil {
		return nil, fmt.Errorf("create stall: %w", err)
	}

	return stall, nil
}

// List returns stalls, geo-filtered and distance-sorted when a center point
// is supplied. Ties keep storage order (stable sort).
func (s *stallService) List(ctx context.Context, query ListStallsQuery) ([]model.Stall, error) {
	stalls, err := s.stallRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stalls: %w", err)
	}
	if stalls == nil {
		// keep the JSON response an empty array rather than null
		stalls = []model.Stall{}
	}

	if query.Latitude == nil || query.Longitude == nil {
		return stalls, nil
	}

	center := geo.Point{Latitude: *query.Latitude, Longitude: *query.Longitude}
	radius := query.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}

	within := make([]model.Stall, 0, len(stalls))
	for _, stall := range stalls {
		d := geo.DistanceKm(center, geo.Point{
			Latitude:  stall.Location.Latitude,
			Longitude: stall.Location.Longitude,
		})
		if d > radius {
			continue
		}
		distance := d
		stall.DistanceKm = &distance
		within = append(within, stall)
	}

	sort.SliceStable(within, func(i, j int) bool {
		return *within[i].DistanceKm < *within[j].DistanceKm
	})

	return within, nil
}

// Get retrieves a stall by ID with caching.
func (s *stallService) Get(ctx context.Context, stallID uuid.UUID) (*model.Stall, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(stallID)); data != nil {
		var cached model.Stall
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	stall, err := s.stallRepo.FindByID(ctx, stallID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrStallNotFound
		}
		return nil, fmt.Errorf("find stall: %w", err)
	}

	if payload, err := json.Marshal(stall); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(stallID), payload, stallCacheTTL)
	}

	return stall, nil
}

// Update applies a partial update to a stall owned by the actor. Location
// components merge into the existing location so an update supplying only
// latitude keeps the prior longitude and address.
func (s *stallService) Update(ctx context.Context, actor *model.User, stallID uuid.UUID, input UpdateStallInput) (*model.Stall, error) {
	stall, err := s.stallRepo.FindByID(ctx, stallID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrStallNotFound
		}
		return nil, fmt.Errorf("find stall: %w", err)
	}

	if err := access.CanManageStall(actor, stall); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}

	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}

	if input.Latitude != nil || input.Longitude != nil || input.Address != nil {
		merged := stall.Location
		if input.Latitude != nil {
			merged.Latitude = *input.Latitude
		}
		if input.Longitude != nil {
			merged.Longitude = *input.Longitude
		}
		if input.Address != nil {
			merged.Address = *input.Address
		}
		if err := access.ValidateLocation(merged); err != nil {
			return nil, err
		}
		fields["location_latitude"] = merged.Latitude
		fields["location_longitude"] = merged.Longitude
		fields["location_address"] = merged.Address
	}

	if input.Image != nil {
		url, err := s.objects.Store(ctx, *input.Image, fmt.Sprintf("stalls/%s", actor.ID))
		if err != nil {
			return nil, fmt.Errorf("upload stall image: %w", err)
		}
		fields["image_url"] = url
	}

	if err := s.stallRepo.UpdateFields(ctx, stallID, fields); err != nil {
		return nil, fmt.Errorf("update stall: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(stallID))

	updated, err := s.stallRepo.FindByID(ctx, stallID)
	if err != nil {
		return nil, fmt.Errorf("reload stall: %w", err)
	}
	return updated, nil
}

// Delete removes a stall and cascades to its menu items and reviews. The
// cascade is best effort: deletions already applied are not rolled back if
// a later one fails.
func (s *stallService) Delete(ctx context.Context, actor *model.User, stallID uuid.UUID) error {
	stall, err := s.stallRepo.FindByID(ctx, stallID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrStallNotFound
		}
		return fmt.Errorf("find stall: %w", err)
	}

	if err := access.CanManageStall(actor, stall); err != nil {
		return err
	}

	if err := s.stallRepo.Delete(ctx, stallID); err != nil {
		return fmt.Errorf("delete stall: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(stallID))

	items, err := s.menuRepo.ListByStall(ctx, stallID)
	if err != nil {
		return fmt.Errorf("list menu items for cascade: %w", err)
	}
	for _, item := range items {
		if err := s.menuRepo.Delete(ctx, item.ID); err != nil {
			s.log.Warn().Err(err).Str("stall_id", stallID.String()).Str("item_id", item.ID.String()).
				Msg("cascade delete of menu item failed")
			return fmt.Errorf("cascade delete menu item %s: %w", item.ID, err)
		}
	}

	reviews, err := s.reviewRepo.ListByStall(ctx, stallID)
	if err != nil {
		return fmt.Errorf("list reviews for cascade: %w", err)
	}
	for _, review := range reviews {
		if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
			s.log.Warn().Err(err).Str("stall_id", stallID.String()).Str("review_id", review.ID.String()).
				Msg("cascade delete of review failed")
			return fmt.Errorf("cascade delete review %s: %w", review.ID, err)
		}
	}

	return nil
}
