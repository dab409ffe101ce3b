package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"stallfinder/internal/errors"
	"stallfinder/internal/model"
	"stallfinder/internal/storage"
)

// actorContextKey is where the router's auth middleware stores the resolved actor.
const actorContextKey = "actor"

// currentActor returns the authenticated user placed in context by the auth
// middleware.
func currentActor(c echo.Context) (*model.User, error) {
	actor, ok := c.Get(actorContextKey).(*model.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: errors.ErrUnauthenticated.Error(),
			Code:  "UNAUTHENTICATED",
		})
	}
	return actor, nil
}

// formUpload reads a multipart file field into memory. Returns nil when the
// field is absent and not required.
func formUpload(c echo.Context, field string, required bool) (*storage.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if required {
			return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "image file is required",
				Code:  "IMAGE_REQUIRED",
			})
		}
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
	}

	return &storage.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// optionalFormString returns a pointer to the form value, or nil when the
// field was left empty.
func optionalFormString(c echo.Context, field string) *string {
	v := c.FormValue(field)
	if v == "" {
		return nil
	}
	return &v
}

// optionalFormFloat parses a float form value, or returns nil when absent.
func optionalFormFloat(c echo.Context, field string) (*float64, error) {
	v := c.FormValue(field)
	if v == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid number in field " + field,
			Code:  "INVALID_NUMBER",
		})
	}
	return &parsed, nil
}
