package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrStallNotFound is returned when a stall is not found.
	ErrStallNotFound = errors.New("stall not found")
	// ErrMenuItemNotFound is returned when a menu item is not found.
	ErrMenuItemNotFound = errors.New("menu item not found")
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrStallMismatch is returned when a child resource does not belong to
	// the stall addressed in the request.
	ErrStallMismatch = errors.New("resource does not belong to this stall")
	// ErrNotStallOwner is returned when the actor is not the owner of the stall.
	ErrNotStallOwner = errors.New("you are not the owner of this stall")
	// ErrNotReviewAuthor is returned when the actor is not the author of the review.
	ErrNotReviewAuthor = errors.New("you are not the author of this review")
	// ErrOwnerRoleRequired is returned when an operation needs an owner-role actor.
	ErrOwnerRoleRequired = errors.New("user is not an owner")
	// ErrSelfReview is returned when an owner tries to review their own stall.
	ErrSelfReview = errors.New("you cannot review your own stall")
	// ErrDuplicateEmail is returned when registering with an email already in use.
	ErrDuplicateEmail = errors.New("user with this email already exists")
	// ErrDuplicateReview is returned when the actor already reviewed the stall.
	ErrDuplicateReview = errors.New("you have already reviewed this stall")
	// ErrInvalidRating is returned when a rating is outside [1,5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrInvalidRole is returned when a registration carries an unknown role.
	ErrInvalidRole = errors.New("user type must be either 'owner' or 'customer'")
	// ErrInvalidPrice is returned when a menu item price is negative.
	ErrInvalidPrice = errors.New("price must not be negative")
	// ErrInvalidLocation is returned when coordinates are out of range.
	ErrInvalidLocation = errors.New("latitude must be in [-90,90] and longitude in [-180,180]")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// Unknown email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrUnauthenticated is returned when a bearer token cannot be resolved to a user.
	ErrUnauthenticated = errors.New("could not validate credentials")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrStallNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "STALL_NOT_FOUND")
	case ErrMenuItemNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "MENU_ITEM_NOT_FOUND")
	case ErrReviewNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "REVIEW_NOT_FOUND")
	case ErrStallMismatch:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "STALL_MISMATCH")
	case ErrNotStallOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_STALL_OWNER")
	case ErrNotReviewAuthor:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_REVIEW_AUTHOR")
	case ErrOwnerRoleRequired:
		return NewHTTPError(http.StatusForbidden, err.Error(), "OWNER_ROLE_REQUIRED")
	case ErrSelfReview:
		return NewHTTPError(http.StatusForbidden, err.Error(), "SELF_REVIEW")
	case ErrDuplicateEmail:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_EMAIL")
	case ErrDuplicateReview:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_REVIEW")
	case ErrInvalidRating:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	case ErrInvalidRole:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_USER_TYPE")
	case ErrInvalidPrice:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PRICE")
	case ErrInvalidLocation:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_LOCATION")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrUnauthenticated:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
