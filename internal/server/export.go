package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SparrowZheyuan18/expert-annotator/internal/store"
)

type ExportHandler struct {
	Store *store.Store
}

func (h *ExportHandler) Register(e *echo.Echo) {
	e.GET("/export/:id", h.export)
}

func (h *ExportHandler) export(c echo.Context) error {
	export, err := h.Store.SessionExport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, export)
}
