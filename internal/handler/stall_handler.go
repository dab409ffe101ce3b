package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stallfinder/internal/errors"
	"stallfinder/internal/model"
	"stallfinder/internal/service"
)

// StallHandler handles stall endpoints. Create and update are multipart
// (form fields plus an image file).
type StallHandler struct {
	stallService service.StallService
}

// NewStallHandler creates a new stall handler.
func NewStallHandler(stallService service.StallService) *StallHandler {
	return &StallHandler{stallService: stallService}
}

func parseStallID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("stall_id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid stall ID",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

// Create godoc
// @Summary Create a stall
// @Tags stalls
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Stall name"
// @Param description formData string true "Description"
// @Param latitude formData number true "Latitude"
// @Param longitude formData number true "Longitude"
// @Param address formData string true "Address"
// @Param image formData file true "Stall image"
// @Success 201 {object} model.Stall
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /stalls [post]
func (h *StallHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	latitude, err := optionalFormFloat(c, "latitude")
	if err != nil {
		return err
	}
	longitude, err := optionalFormFloat(c, "longitude")
	if err != nil {
		return err
	}
	name := c.FormValue("name")
	address := c.FormValue("address")
	if name == "" || address == "" || latitude == nil || longitude == nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "name, address, latitude and longitude are required",
			Code:  "MISSING_FIELDS",
		})
	}

	image, err := formUpload(c, "image", true)
	if err != nil {
		return err
	}

	stall, err := h.stallService.Create(c.Request().Context(), actor, service.CreateStallInput{
		Name:        name,
		Description: c.FormValue("description"),
		Location: model.Location{
			Latitude:  *latitude,
			Longitude: *longitude,
			Address:   address,
		},
		Image: image,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, stall)
}

// List godoc
// @Summary List stalls, optionally filtered by distance from a point
// @Tags stalls
// @Produce json
// @Security BearerAuth
// @Param latitude query number false "Center latitude"
// @Param longitude query number false "Center longitude"
// @Param radius query number false "Radius in km (default 5.0)"
// @Success 200 {array} model.Stall
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /stalls [get]
func (h *StallHandler) List(c echo.Context) error {
	if _, err := currentActor(c); err != nil {
		return err
	}

	var query service.ListStallsQuery
	if v := c.QueryParam("latitude"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid latitude",
				Code:  "INVALID_NUMBER",
			})
		}
		query.Latitude = &lat
	}
	if v := c.QueryParam("longitude"); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid longitude",
				Code:  "INVALID_NUMBER",
			})
		}
		query.Longitude = &lon
	}
	if v := c.QueryParam("radius"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid radius",
				Code:  "INVALID_NUMBER",
			})
		}
		query.RadiusKm = radius
	}

	stalls, err := h.stallService.List(c.Request().Context(), query)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, stalls)
}

// Get godoc
// @Summary Get a stall by ID
// @Tags stalls
// @Produce json
// @Security BearerAuth
// @Param stall_id path string true "Stall ID"
// @Success 200 {object} model.Stall
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stalls/{stall_id} [get]
func (h *StallHandler) Get(c echo.Context) error {
	if _, err := currentActor(c); err != nil {
		return err
	}

	stallID, err := parseStallID(c)
	if err != nil {
		return err
	}

	stall, err := h.stallService.Get(c.Request().Context(), stallID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, stall)
}

// Update godoc
// @Summary Update a stall (owner only, partial fields)
// @Tags stalls
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param stall_id path string true "Stall ID"
// @Param name formData string false "Stall name"
// @Param description formData string false "Description"
// @Param latitude formData number false "Latitude"
// @Param longitude formData number false "Longitude"
// @Param address formData string false "Address"
// @Param image formData file false "Stall image"
// @Success 200 {object} model.Stall
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stalls/{stall_id} [put]
func (h *StallHandler) Update(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	stallID, err := parseStallID(c)
	if err != nil {
		return err
	}

	latitude, err := optionalFormFloat(c, "latitude")
	if err != nil {
		return err
	}
	longitude, err := optionalFormFloat(c, "longitude")
	if err != nil {
		return err
	}
	image, err := formUpload(c, "image", false)
	if err != nil {
		return err
	}

	stall, err := h.stallService.Update(c.Request().Context(), actor, stallID, service.UpdateStallInput{
		Name:        optionalFormString(c, "name"),
		Description: optionalFormString(c, "description"),
		Latitude:    latitude,
		Longitude:   longitude,
		Address:     optionalFormString(c, "address"),
		Image:       image,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, stall)
}

// Delete godoc
// @Summary Delete a stall and its menu items and reviews (owner only)
// @Tags stalls
// @Security BearerAuth
// @Param stall_id path string true "Stall ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stalls/{stall_id} [delete]
func (h *StallHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	stallID, err := parseStallID(c)
	if err != nil {
		return err
	}

	if err := h.stallService.Delete(c.Request().Context(), actor, stallID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}
