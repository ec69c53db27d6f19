// Package handler holds the echo handlers of the API.
package handler

import (
	"net/http"

	"hbnb/internal/delivery/api/response"
	"hbnb/internal/domain/entity"
	domainerrors "hbnb/internal/domain/errors"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
)

//nolint:gochecknoglobals
var binder = &echo.DefaultBinder{}

// bindJSON decodes a non-empty JSON request body into dst.
func bindJSON(c echo.Context, dst any) error {
	if c.Request().ContentLength == 0 {
		return domainerrors.ErrNotJSON
	}
	if err := binder.BindBody(c, dst); err != nil {
		return domainerrors.ErrNotJSON.WithDetails(err.Error())
	}

	return nil
}

// bindAttrs decodes a non-empty JSON object body into named attributes.
func bindAttrs(c echo.Context) (usecase.Attrs, error) {
	var attrs usecase.Attrs
	if err := bindJSON(c, &attrs); err != nil {
		return nil, err
	}
	if len(attrs) == 0 {
		return nil, domainerrors.ErrNotJSON
	}

	return attrs, nil
}

// validate runs the echo validator and renders a 400 when it fails.
func validate(c echo.Context, input any) (bool, error) {
	if err := c.Validate(input); err != nil {
		return false, response.BadRequestWithDetails(c,
			domainerrors.ErrValidationFailed.ErrorCode(),
			domainerrors.ErrValidationFailed.Message(),
			err.Error(),
		)
	}

	return true, nil
}

func publicList[T entity.Entity](items []T) []entity.Record {
	out := make([]entity.Record, 0, len(items))
	for _, item := range items {
		out = append(out, entity.Public(item))
	}

	return out
}

func ok[T entity.Entity](c echo.Context, item T) error {
	return response.Success(c, http.StatusOK, entity.Public(item))
}

func created[T entity.Entity](c echo.Context, item T) error {
	return response.Success(c, http.StatusCreated, entity.Public(item))
}

func deleted(c echo.Context) error {
	return response.Success(c, http.StatusOK, response.NoContent{})
}
