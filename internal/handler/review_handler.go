package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stallfinder/internal/errors"
	"stallfinder/internal/service"
)

// ReviewHandler handles review endpoints nested under a stall.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ReviewRequest represents a review create or update request. Update is a
// full replace of rating and comment.
type ReviewRequest struct {
	// Rating bounds are enforced by the review service so the same rule
	// covers create and update.
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func parseReviewID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid review ID",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

// Create godoc
// @Summary Review a stall
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param stall_id path string true "Stall ID"
// @Param request body ReviewRequest true "Review"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stalls/{stall_id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	stallID, err := parseStallID(c)
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	review, err := h.reviewService.Create(c.Request().Context(), actor, stallID, req.Rating, req.Comment)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, review)
}

// List godoc
// @Summary List a stall's reviews
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param stall_id path string true "Stall ID"
// @Success 200 {array} model.Review
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stalls/{stall_id}/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	if _, err := currentActor(c); err != nil {
		return err
	}

	stallID, err := parseStallID(c)
	if err != nil {
		return err
	}

	reviews, err := h.reviewService.List(c.Request().Context(), stallID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, reviews)
}

// Update godoc
// @Summary Update a review (author only)
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param stall_id path string true "Stall ID"
// @Param review_id path string true "Review ID"
// @Param request body ReviewRequest true "Review"
// @Success 200 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stalls/{stall_id}/reviews/{review_id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	stallID, err := parseStallID(c)
	if err != nil {
		return err
	}
	reviewID, err := parseReviewID(c)
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	review, err := h.reviewService.Update(c.Request().Context(), actor, stallID, reviewID, req.Rating, req.Comment)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, review)
}

// Delete godoc
// @Summary Delete a review (author only)
// @Tags reviews
// @Security BearerAuth
// @Param stall_id path string true "Stall ID"
// @Param review_id path string true "Review ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stalls/{stall_id}/reviews/{review_id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	stallID, err := parseStallID(c)
	if err != nil {
		return err
	}
	reviewID, err := parseReviewID(c)
	if err != nil {
		return err
	}

	if err := h.reviewService.Delete(c.Request().Context(), actor, stallID, reviewID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}
