package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SparrowZheyuan18/expert-annotator/internal/store"
	"github.com/SparrowZheyuan18/expert-annotator/models"
)

type DocumentsHandler struct {
	Store *store.Store
}

func (h *DocumentsHandler) Register(e *echo.Echo) {
	e.POST("/sessions/:id/documents", h.upsert)
	e.POST("/sessions/:id/documents/:doc_id/summary", h.summary)
	e.POST("/sessions/:id/documents/:doc_id/pdf-review", h.pdfReview)
}

// upsert registers a document visit. Revisiting a URL within the same session
// returns the original row untouched.
func (h *DocumentsHandler) upsert(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("id")
	var req upsertDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := h.Store.GetSession(ctx, sessionID); err != nil {
		return httpError(err)
	}
	if req.Type == "" {
		req.Type = models.DocTypeHTML
	}
	if req.AccessedAt == "" {
		req.AccessedAt = store.NowISO()
	}
	doc, err := h.Store.GetOrCreateDocument(ctx, sessionID, req.Title, req.URL, req.Type, req.AccessedAt)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, doc)
}

// summary replaces the document-level judgment. The server stamps its own
// timestamp into the payload so clients cannot backdate it.
func (h *DocumentsHandler) summary(c echo.Context) error {
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body == nil {
		body = map[string]interface{}{}
	}
	body["timestamp"] = store.NowISO()
	doc, err := h.Store.SaveDocumentSummary(c.Request().Context(), c.Param("id"), c.Param("doc_id"), body)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentsHandler) pdfReview(c echo.Context) error {
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body == nil {
		body = map[string]interface{}{}
	}
	body["timestamp"] = store.NowISO()
	if err := h.Store.SavePDFReview(c.Request().Context(), c.Param("id"), c.Param("doc_id"), body); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"document_id": c.Param("doc_id")})
}
