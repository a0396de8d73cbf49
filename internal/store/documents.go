package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SparrowZheyuan18/expert-annotator/models"
)

const selectDocument = `
SELECT document_id, session_id, title, url, type, accessed_at, global_judgment_json, pdf_review_json
FROM documents`

// GetOrCreateDocument upserts a document keyed on (session id, url). If the
// row already exists it is returned unchanged: first-write-wins, so repeated
// visits to a URL never overwrite accumulated judgments.
func (s *Store) GetOrCreateDocument(ctx context.Context, sessionID, title, url, docType, accessedAt string) (models.Document, error) {
	if err := models.ValidateDocType(docType); err != nil {
		return models.Document{}, err
	}
	docID := DocumentID(sessionID, url)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Document{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT OR IGNORE INTO documents (document_id, session_id, title, url, type, accessed_at)
VALUES (?, ?, ?, ?, ?, ?)
`, docID, sessionID, title, url, docType, accessedAt)
	if err != nil {
		return models.Document{}, fmt.Errorf("upserting document: %w", err)
	}

	doc, err := scanDocument(tx.QueryRowContext(ctx, selectDocument+` WHERE document_id = ?`, docID))
	if err != nil {
		return models.Document{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Document{}, fmt.Errorf("committing document upsert: %w", err)
	}
	return doc, nil
}

// GetDocument returns the document or ErrNotFound.
func (s *Store) GetDocument(ctx context.Context, documentID string) (models.Document, error) {
	return scanDocument(s.DB.QueryRowContext(ctx, selectDocument+` WHERE document_id = ?`, documentID))
}

// SaveDocumentSummary replaces the document's global judgment, scoped by
// (document id, session id). Returns the updated document; a failure on the
// follow-up read is the one internal error surfaced to callers.
func (s *Store) SaveDocumentSummary(ctx context.Context, sessionID, documentID string, summary map[string]interface{}) (models.Document, error) {
	blob, err := json.Marshal(summary)
	if err != nil {
		return models.Document{}, fmt.Errorf("encoding summary: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Document{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
UPDATE documents SET global_judgment_json = ? WHERE document_id = ? AND session_id = ?
`, string(blob), documentID, sessionID)
	if err != nil {
		return models.Document{}, fmt.Errorf("saving summary: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Document{}, err
	}
	if n == 0 {
		return models.Document{}, ErrNotFound
	}

	doc, err := scanDocument(tx.QueryRowContext(ctx, selectDocument+` WHERE document_id = ?`, documentID))
	if err != nil {
		return models.Document{}, fmt.Errorf("re-reading document after summary save: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Document{}, fmt.Errorf("committing summary save: %w", err)
	}
	return doc, nil
}

// SavePDFReview replaces the document's pdf review. Only documents of type
// "pdf" accept one.
func (s *Store) SavePDFReview(ctx context.Context, sessionID, documentID string, review map[string]interface{}) error {
	blob, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("encoding pdf review: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var docType string
	err = tx.QueryRowContext(ctx, `
SELECT type FROM documents WHERE document_id = ? AND session_id = ?
`, documentID, sessionID).Scan(&docType)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading document type: %w", err)
	}
	if docType != models.DocTypePDF {
		return models.Validationf("pdf review requires a %q document, got %q", models.DocTypePDF, docType)
	}

	if _, err := tx.ExecContext(ctx, `
UPDATE documents SET pdf_review_json = ? WHERE document_id = ? AND session_id = ?
`, string(blob), documentID, sessionID); err != nil {
		return fmt.Errorf("saving pdf review: %w", err)
	}
	return tx.Commit()
}

func scanDocument(row rowScanner) (models.Document, error) {
	var doc models.Document
	var judgment, review sql.NullString
	err := row.Scan(&doc.DocumentID, &doc.SessionID, &doc.Title, &doc.URL, &doc.Type, &doc.AccessedAt, &judgment, &review)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, ErrNotFound
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("reading document: %w", err)
	}
	// Malformed blobs degrade to absent rather than failing the read.
	if judgment.Valid {
		_ = json.Unmarshal([]byte(judgment.String), &doc.GlobalJudgment)
	}
	if review.Valid {
		_ = json.Unmarshal([]byte(review.String), &doc.PDFReview)
	}
	return doc, nil
}
