package store

import (
	"context"
	"errors"
	"testing"

	"github.com/SparrowZheyuan18/expert-annotator/models"
)

func TestGetOrCreateDocumentIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	sess := mustSession(t, st)

	url := "https://example.org/paper"
	first, err := st.GetOrCreateDocument(ctx, sess.SessionID, "Original Title", url, "html", "2025-01-01T00:00:00.000000000Z")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := st.GetOrCreateDocument(ctx, sess.SessionID, "Different Title", url, "html", "2025-06-01T00:00:00.000000000Z")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.DocumentID != second.DocumentID {
		t.Fatalf("id changed across upserts: %s vs %s", first.DocumentID, second.DocumentID)
	}
	if second.Title != "Original Title" || second.AccessedAt != "2025-01-01T00:00:00.000000000Z" {
		t.Fatalf("revisit overwrote first write: %+v", second)
	}
}

func TestGetOrCreateDocumentPreservesJudgments(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	sess := mustSession(t, st)

	url := "https://example.org/paper"
	doc, err := st.GetOrCreateDocument(ctx, sess.SessionID, "A Paper", url, "html", NowISO())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := st.SaveDocumentSummary(ctx, sess.SessionID, doc.DocumentID, map[string]interface{}{"verdict": "useful"}); err != nil {
		t.Fatalf("saving summary: %v", err)
	}

	again, err := st.GetOrCreateDocument(ctx, sess.SessionID, "A Paper", url, "html", NowISO())
	if err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	if again.GlobalJudgment == nil || again.GlobalJudgment["verdict"] != "useful" {
		t.Fatalf("revisit dropped stored judgment: %+v", again.GlobalJudgment)
	}
}

func TestGetOrCreateDocumentRejectsBadType(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	sess := mustSession(t, st)

	_, err := st.GetOrCreateDocument(ctx, sess.SessionID, "T", "https://example.org", "docx", NowISO())
	var verr models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSaveDocumentSummaryScopedToSession(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	sess := mustSession(t, st)
	other := mustSession(t, st)
	doc := mustDocument(t, st, sess.SessionID, "https://example.org/paper", "html")

	if _, err := st.SaveDocumentSummary(ctx, other.SessionID, doc.DocumentID, map[string]interface{}{"verdict": "stolen"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("summary across sessions should be ErrNotFound, got %v", err)
	}

	updated, err := st.SaveDocumentSummary(ctx, sess.SessionID, doc.DocumentID, map[string]interface{}{"verdict": "useful", "confidence": 0.8})
	if err != nil {
		t.Fatalf("saving summary: %v", err)
	}
	if updated.GlobalJudgment["verdict"] != "useful" {
		t.Fatalf("summary not returned on the updated document: %+v", updated.GlobalJudgment)
	}
}

func TestSavePDFReviewRequiresPDF(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	sess := mustSession(t, st)
	htmlDoc := mustDocument(t, st, sess.SessionID, "https://example.org/page", "html")
	pdfDoc := mustDocument(t, st, sess.SessionID, "https://example.org/paper.pdf", "pdf")

	err := st.SavePDFReview(ctx, sess.SessionID, htmlDoc.DocumentID, map[string]interface{}{"rating": 4})
	var verr models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("pdf review on html should fail validation, got %v", err)
	}

	if err := st.SavePDFReview(ctx, sess.SessionID, pdfDoc.DocumentID, map[string]interface{}{"rating": 4}); err != nil {
		t.Fatalf("pdf review on pdf: %v", err)
	}
	got, err := st.GetDocument(ctx, pdfDoc.DocumentID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PDFReview == nil || got.PDFReview["rating"] != float64(4) {
		t.Fatalf("review not persisted: %+v", got.PDFReview)
	}

	if err := st.SavePDFReview(ctx, sess.SessionID, "missing", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing document should be ErrNotFound, got %v", err)
	}
}
