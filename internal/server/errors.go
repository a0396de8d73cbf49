package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SparrowZheyuan18/expert-annotator/internal/store"
	"github.com/SparrowZheyuan18/expert-annotator/models"
)

// httpError maps the store/domain error taxonomy onto status codes: missing
// rows are 404, constraint violations 400, everything else 500.
func httpError(err error) *echo.HTTPError {
	var verr models.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, verr.Msg)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
