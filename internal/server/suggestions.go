package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SparrowZheyuan18/expert-annotator/internal/suggest"
)

type SuggestionsHandler struct {
	Generator *suggest.Generator
}

func (h *SuggestionsHandler) Register(e *echo.Echo) {
	e.POST("/ai/suggestions", h.suggestions)
}

// suggestions runs the fallback chain. It cannot fail: the terminal mock
// stage always produces a list, so the only error path is a malformed body.
func (h *SuggestionsHandler) suggestions(c echo.Context) error {
	var req suggest.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result := h.Generator.Suggestions(c.Request().Context(), req)
	return c.JSON(http.StatusOK, result)
}
