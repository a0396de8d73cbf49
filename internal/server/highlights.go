package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SparrowZheyuan18/expert-annotator/internal/store"
	"github.com/SparrowZheyuan18/expert-annotator/models"
)

type HighlightsHandler struct {
	Store *store.Store
}

func (h *HighlightsHandler) Register(e *echo.Echo) {
	e.POST("/sessions/:id/documents/:doc_id/highlights", h.create)
	e.PATCH("/highlights/:id", h.updateJudgment)
	e.DELETE("/highlights/:id", h.delete)
	e.GET("/highlights/:id", h.get)
}

func (h *HighlightsHandler) create(c echo.Context) error {
	var req createHighlightRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	highlight := models.Highlight{
		SessionID:     c.Param("id"),
		DocumentID:    c.Param("doc_id"),
		Text:          req.Text,
		Context:       req.Context,
		Selector:      req.Selector,
		AISuggestions: req.AISuggestions,
		UserJudgment:  req.UserJudgment,
	}
	created, err := h.Store.CreateHighlight(c.Request().Context(), highlight)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// updateJudgment replaces the judgment wholesale; there is no field-level
// merge.
func (h *HighlightsHandler) updateJudgment(c echo.Context) error {
	var j models.UserJudgment
	if err := c.Bind(&j); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.Store.UpdateHighlightJudgment(c.Request().Context(), c.Param("id"), j)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *HighlightsHandler) delete(c echo.Context) error {
	deleted, err := h.Store.DeleteHighlight(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *HighlightsHandler) get(c echo.Context) error {
	highlight, err := h.Store.GetHighlight(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, highlight)
}
