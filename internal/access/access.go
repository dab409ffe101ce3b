// Package access holds the authorization decision logic shared by every
// resource type. All functions are stateless: callers fetch the records
// involved, then consult access before applying a mutation. Check order is
// fixed: ownership-chain consistency, then role/identity, then business
// rules. Existence is the caller's concern since it falls out of the fetch.
package access

import (
	"github.com/shopspring/decimal"

	"stallfinder/internal/errors"
	"stallfinder/internal/geo"
	"stallfinder/internal/model"
)

// RequireOwner narrows the actor to the owner role.
func RequireOwner(actor *model.User) error {
	if actor.Role != model.RoleOwner {
		return errors.ErrOwnerRoleRequired
	}
	return nil
}

// CanManageStall allows stall mutations only for the stall's owner.
func CanManageStall(actor *model.User, stall *model.Stall) error {
	if stall.OwnerID != actor.ID {
		return errors.ErrNotStallOwner
	}
	return nil
}

// CanManageMenuItem allows menu item mutations only when the item belongs to
// the addressed stall and the actor owns that stall.
func CanManageMenuItem(actor *model.User, stall *model.Stall, item *model.MenuItem) error {
	if item.StallID != stall.ID {
		return errors.ErrStallMismatch
	}
	return CanManageStall(actor, stall)
}

// CanCreateReview blocks owners from reviewing their own stall.
func CanCreateReview(actor *model.User, stall *model.Stall) error {
	if stall.OwnerID == actor.ID {
		return errors.ErrSelfReview
	}
	return nil
}

// CanManageReview allows review mutations only when the review belongs to the
// addressed stall and the actor authored it.
func CanManageReview(actor *model.User, stall *model.Stall, review *model.Review) error {
	if review.StallID != stall.ID {
		return errors.ErrStallMismatch
	}
	if review.UserID != actor.ID {
		return errors.ErrNotReviewAuthor
	}
	return nil
}

// ValidateRating checks the rating is an integer in [1,5].
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errors.ErrInvalidRating
	}
	return nil
}

// ValidateLocation checks coordinate bounds.
func ValidateLocation(loc model.Location) error {
	p := geo.Point{Latitude: loc.Latitude, Longitude: loc.Longitude}
	if !p.Valid() {
		return errors.ErrInvalidLocation
	}
	return nil
}

// ValidatePrice rejects negative menu item prices.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errors.ErrInvalidPrice
	}
	return nil
}
