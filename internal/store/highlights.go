package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/SparrowZheyuan18/expert-annotator/models"
)

const selectHighlight = `
SELECT highlight_id, session_id, document_id, text, context, selector_json,
       ai_suggestions_json, chosen_label, reasoning, confidence,
       user_judgment_json, timestamp
FROM highlights`

// CreateHighlight inserts a highlight. Id and timestamp on the input are
// ignored and generated here. The judgment is persisted twice: normalized
// scalar columns for queryability plus the full blob for round-trip fidelity.
// The target document must belong to the highlight's session.
func (s *Store) CreateHighlight(ctx context.Context, h models.Highlight) (models.Highlight, error) {
	if err := h.Selector.Validate(); err != nil {
		return models.Highlight{}, err
	}
	if err := h.UserJudgment.Validate(); err != nil {
		return models.Highlight{}, err
	}
	if h.AISuggestions == nil {
		h.AISuggestions = []models.Suggestion{}
	}
	h.HighlightID = uuid.NewString()
	h.Timestamp = nowISO()

	selectorBlob, err := json.Marshal(h.Selector)
	if err != nil {
		return models.Highlight{}, fmt.Errorf("encoding selector: %w", err)
	}
	suggestionsBlob, err := json.Marshal(h.AISuggestions)
	if err != nil {
		return models.Highlight{}, fmt.Errorf("encoding suggestions: %w", err)
	}
	judgmentBlob, err := json.Marshal(h.UserJudgment)
	if err != nil {
		return models.Highlight{}, fmt.Errorf("encoding judgment: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Highlight{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var docSession string
	err = tx.QueryRowContext(ctx, `SELECT session_id FROM documents WHERE document_id = ?`, h.DocumentID).Scan(&docSession)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && docSession != h.SessionID) {
		return models.Highlight{}, ErrNotFound
	}
	if err != nil {
		return models.Highlight{}, fmt.Errorf("checking document ownership: %w", err)
	}

	var confidence interface{}
	if h.UserJudgment.Confidence != nil {
		confidence = *h.UserJudgment.Confidence
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO highlights (highlight_id, session_id, document_id, text, context, selector_json,
                        ai_suggestions_json, chosen_label, reasoning, confidence,
                        user_judgment_json, timestamp)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, h.HighlightID, h.SessionID, h.DocumentID, h.Text, h.Context, string(selectorBlob),
		string(suggestionsBlob), h.UserJudgment.ChosenLabel, h.UserJudgment.Reasoning, confidence,
		string(judgmentBlob), h.Timestamp)
	if err != nil {
		return models.Highlight{}, fmt.Errorf("inserting highlight: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Highlight{}, fmt.Errorf("committing highlight: %w", err)
	}
	return h, nil
}

// UpdateHighlightJudgment replaces the judgment wholesale and returns the
// updated highlight, or ErrNotFound.
func (s *Store) UpdateHighlightJudgment(ctx context.Context, highlightID string, j models.UserJudgment) (models.Highlight, error) {
	if err := j.Validate(); err != nil {
		return models.Highlight{}, err
	}
	blob, err := json.Marshal(j)
	if err != nil {
		return models.Highlight{}, fmt.Errorf("encoding judgment: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Highlight{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var confidence interface{}
	if j.Confidence != nil {
		confidence = *j.Confidence
	}
	res, err := tx.ExecContext(ctx, `
UPDATE highlights
SET chosen_label = ?, reasoning = ?, confidence = ?, user_judgment_json = ?
WHERE highlight_id = ?
`, j.ChosenLabel, j.Reasoning, confidence, string(blob), highlightID)
	if err != nil {
		return models.Highlight{}, fmt.Errorf("updating judgment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Highlight{}, err
	}
	if n == 0 {
		return models.Highlight{}, ErrNotFound
	}

	h, err := scanHighlight(tx.QueryRowContext(ctx, selectHighlight+` WHERE highlight_id = ?`, highlightID))
	if err != nil {
		return models.Highlight{}, fmt.Errorf("re-reading highlight after judgment update: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Highlight{}, fmt.Errorf("committing judgment update: %w", err)
	}
	return h, nil
}

// DeleteHighlight removes the highlight and reports whether a row was
// actually deleted.
func (s *Store) DeleteHighlight(ctx context.Context, highlightID string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM highlights WHERE highlight_id = ?`, highlightID)
	if err != nil {
		return false, fmt.Errorf("deleting highlight: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetHighlight returns the highlight or ErrNotFound.
func (s *Store) GetHighlight(ctx context.Context, highlightID string) (models.Highlight, error) {
	return scanHighlight(s.DB.QueryRowContext(ctx, selectHighlight+` WHERE highlight_id = ?`, highlightID))
}

func scanHighlight(row rowScanner) (models.Highlight, error) {
	var h models.Highlight
	var hlContext, judgmentBlob sql.NullString
	var confidence sql.NullFloat64
	var selectorBlob, suggestionsBlob, chosenLabel, reasoning string
	err := row.Scan(&h.HighlightID, &h.SessionID, &h.DocumentID, &h.Text, &hlContext, &selectorBlob,
		&suggestionsBlob, &chosenLabel, &reasoning, &confidence, &judgmentBlob, &h.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Highlight{}, ErrNotFound
	}
	if err != nil {
		return models.Highlight{}, fmt.Errorf("reading highlight: %w", err)
	}
	if hlContext.Valid {
		h.Context = &hlContext.String
	}
	if err := json.Unmarshal([]byte(selectorBlob), &h.Selector); err != nil {
		return models.Highlight{}, fmt.Errorf("decoding selector: %w", err)
	}
	if err := json.Unmarshal([]byte(suggestionsBlob), &h.AISuggestions); err != nil {
		return models.Highlight{}, fmt.Errorf("decoding suggestions: %w", err)
	}
	if h.AISuggestions == nil {
		h.AISuggestions = []models.Suggestion{}
	}
	// Rows written before the judgment blob existed fall back to the
	// scalar columns.
	if judgmentBlob.Valid && judgmentBlob.String != "" {
		if err := json.Unmarshal([]byte(judgmentBlob.String), &h.UserJudgment); err != nil {
			return models.Highlight{}, fmt.Errorf("decoding judgment: %w", err)
		}
	} else {
		h.UserJudgment = models.UserJudgment{ChosenLabel: chosenLabel, Reasoning: reasoning}
		if confidence.Valid {
			v := confidence.Float64
			h.UserJudgment.Confidence = &v
		}
	}
	return h, nil
}
