package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SparrowZheyuan18/expert-annotator/internal/store"
)

type SessionsHandler struct {
	Store *store.Store
}

func (h *SessionsHandler) Register(e *echo.Echo) {
	e.POST("/sessions", h.create)
	e.GET("/sessions/:id", h.get)
	e.POST("/sessions/:id/complete", h.complete)
	e.DELETE("/sessions/:id", h.delete)
}

func (h *SessionsHandler) create(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, err := h.Store.CreateSession(c.Request().Context(), req.ExpertName, req.Topic, req.ResearchGoal)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, sess)
}

func (h *SessionsHandler) get(c echo.Context) error {
	sess, err := h.Store.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sess)
}

// complete stamps the end time. Repeat calls restamp rather than fail, so a
// retried completion is harmless.
func (h *SessionsHandler) complete(c echo.Context) error {
	sessionID := c.Param("id")
	endedAt, err := h.Store.CompleteSession(c.Request().Context(), sessionID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, completeSessionResponse{SessionID: sessionID, EndTime: endedAt})
}

func (h *SessionsHandler) delete(c echo.Context) error {
	if err := h.Store.DeleteSession(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
