package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"stallfinder/internal/errors"
	"stallfinder/internal/service"
)

// MenuHandler handles menu item endpoints nested under a stall.
type MenuHandler struct {
	menuService service.MenuService
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(menuService service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

func parseItemID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid menu item ID",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

func optionalFormDecimal(c echo.Context, field string) (*decimal.Decimal, error) {
	v := c.FormValue(field)
	if v == "" {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(v)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid number in field " + field,
			Code:  "INVALID_NUMBER",
		})
	}
	return &parsed, nil
}

// Create godoc
// @Summary Add a menu item to a stall (owner only)
// @Tags menu
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param stall_id path string true "Stall ID"
// @Param name formData string true "Item name"
// @Param price formData number true "Price"
// @Param description formData string true "Description"
// @Param category formData string true "Category"
// @Param image formData file true "Item image"
// @Success 201 {object} model.MenuItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stalls/{stall_id}/menu [post]
func (h *MenuHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	stallID, err := parseStallID(c)
	if err != nil {
		return err
	}

	price, err := optionalFormDecimal(c, "price")
	if err != nil {
		return err
	}
	name := c.FormValue("name")
	if name == "" || price == nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "name and price are required",
			Code:  "MISSING_FIELDS",
		})
	}

	image, err := formUpload(c, "image", true)
	if err != nil {
		return err
	}

	item, err := h.menuService.Create(c.Request().Context(), actor, stallID, service.CreateMenuItemInput{
		Name:        name,
		Price:       *price,
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Image:       image,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, item)
}

// List godoc
// @Summary List a stall's menu items
// @Tags menu
// @Produce json
// @Security BearerAuth
// @Param stall_id path string true "Stall ID"
// @Param category query string false "Exact category filter"
// @Success 200 {array} model.MenuItem
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stalls/{stall_id}/menu [get]
func (h *MenuHandler) List(c echo.Context) error {
	if _, err := currentActor(c); err != nil {
		return err
	}

	stallID, err := parseStallID(c)
	if err != nil {
		return err
	}

	items, err := h.menuService.List(c.Request().Context(), stallID, c.QueryParam("category"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, items)
}

// Update godoc
// @Summary Update a menu item (owner only, partial fields)
// @Tags menu
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param stall_id path string true "Stall ID"
// @Param item_id path string true "Menu item ID"
// @Param name formData string false "Item name"
// @Param price formData number false "Price"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param image formData file false "Item image"
// @Success 200 {object} model.MenuItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stalls/{stall_id}/menu/{item_id} [put]
func (h *MenuHandler) Update(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	stallID, err := parseStallID(c)
	if err != nil {
		return err
	}
	itemID, err := parseItemID(c)
	if err != nil {
		return err
	}

	price, err := optionalFormDecimal(c, "price")
	if err != nil {
		return err
	}
	image, err := formUpload(c, "image", false)
	if err != nil {
		return err
	}

	item, err := h.menuService.Update(c.Request().Context(), actor, stallID, itemID, service.UpdateMenuItemInput{
		Name:        optionalFormString(c, "name"),
		Price:       price,
		Description: optionalFormString(c, "description"),
		Category:    optionalFormString(c, "category"),
		Image:       image,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a menu item (owner only)
// @Tags menu
// @Security BearerAuth
// @Param stall_id path string true "Stall ID"
// @Param item_id path string true "Menu item ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stalls/{stall_id}/menu/{item_id} [delete]
func (h *MenuHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	stallID, err := parseStallID(c)
	if err != nil {
		return err
	}
	itemID, err := parseItemID(c)
	if err != nil {
		return err
	}

	if err := h.menuService.Delete(c.Request().Context(), actor, stallID, itemID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteByCategory godoc
// @Summary Delete every menu item of a category (owner only)
// @Tags menu
// @Security BearerAuth
// @Param stall_id path string true "Stall ID"
// @Param category path string true "Category"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stalls/{stall_id}/menu/category/{category} [delete]
func (h *MenuHandler) DeleteByCategory(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	stallID, err := parseStallID(c)
	if err != nil {
		return err
	}

	if err := h.menuService.DeleteByCategory(c.Request().Context(), actor, stallID, c.Param("category")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}
