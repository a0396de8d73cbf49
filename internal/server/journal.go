package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SparrowZheyuan18/expert-annotator/internal/store"
)

type JournalHandler struct {
	Store *store.Store
}

func (h *JournalHandler) Register(e *echo.Echo) {
	e.POST("/sessions/:id/search-episodes", h.searchEpisode)
	e.POST("/sessions/:id/interactions", h.interaction)
}

func (h *JournalHandler) searchEpisode(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("id")
	var req searchEpisodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := h.Store.GetSession(ctx, sessionID); err != nil {
		return httpError(err)
	}
	ep, err := h.Store.RecordSearchEpisode(ctx, sessionID, req.Platform, req.Query, req.Timestamp)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, ep)
}

func (h *JournalHandler) interaction(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("id")
	var req interactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := h.Store.GetSession(ctx, sessionID); err != nil {
		return httpError(err)
	}
	in, err := h.Store.RecordInteraction(ctx, sessionID, req.InteractionType, req.Payload, req.Timestamp)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, in)
}
