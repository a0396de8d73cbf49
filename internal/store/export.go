package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/SparrowZheyuan18/expert-annotator/models"
)

// SessionExport reconstructs the full session tree in one read transaction:
// documents ordered by access time, highlights within each document ordered
// by timestamp, plus the search-episode and interaction logs. Missing child
// collections degrade to empty lists, never errors.
func (s *Store) SessionExport(ctx context.Context, sessionID string) (models.SessionExport, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.SessionExport{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	sess, err := scanSession(tx.QueryRowContext(ctx, `
SELECT session_id, expert_name, topic, research_goal, start_time, end_time
FROM sessions WHERE session_id = ?
`, sessionID))
	if err != nil {
		return models.SessionExport{}, err
	}

	export := models.SessionExport{
		Session:        sess,
		Documents:      []models.DocumentExport{},
		SearchEpisodes: []models.SearchEpisode{},
		Interactions:   []models.Interaction{},
	}

	docRows, err := tx.QueryContext(ctx, selectDocument+` WHERE session_id = ? ORDER BY accessed_at`, sessionID)
	if err != nil {
		return models.SessionExport{}, fmt.Errorf("listing documents: %w", err)
	}
	docs, err := collectDocuments(docRows)
	if err != nil {
		return models.SessionExport{}, err
	}

	for _, doc := range docs {
		hlRows, err := tx.QueryContext(ctx, selectHighlight+` WHERE document_id = ? ORDER BY timestamp`, doc.DocumentID)
		if err != nil {
			return models.SessionExport{}, fmt.Errorf("listing highlights: %w", err)
		}
		highlights, err := collectHighlights(hlRows)
		if err != nil {
			return models.SessionExport{}, err
		}
		export.Documents = append(export.Documents, models.DocumentExport{Document: doc, Highlights: highlights})
	}

	epRows, err := tx.QueryContext(ctx, `
SELECT episode_id, session_id, platform, query, timestamp
FROM search_episodes WHERE session_id = ? ORDER BY timestamp
`, sessionID)
	if err != nil {
		return models.SessionExport{}, fmt.Errorf("listing search episodes: %w", err)
	}
	defer epRows.Close()
	for epRows.Next() {
		var ep models.SearchEpisode
		if err := epRows.Scan(&ep.EpisodeID, &ep.SessionID, &ep.Platform, &ep.Query, &ep.Timestamp); err != nil {
			return models.SessionExport{}, fmt.Errorf("reading search episode: %w", err)
		}
		export.SearchEpisodes = append(export.SearchEpisodes, ep)
	}
	if err := epRows.Err(); err != nil {
		return models.SessionExport{}, err
	}

	inRows, err := tx.QueryContext(ctx, `
SELECT interaction_id, session_id, interaction_type, payload_json, timestamp
FROM interactions WHERE session_id = ? ORDER BY timestamp
`, sessionID)
	if err != nil {
		return models.SessionExport{}, fmt.Errorf("listing interactions: %w", err)
	}
	defer inRows.Close()
	for inRows.Next() {
		var in models.Interaction
		var payload string
		if err := inRows.Scan(&in.InteractionID, &in.SessionID, &in.InteractionType, &payload, &in.Timestamp); err != nil {
			return models.SessionExport{}, fmt.Errorf("reading interaction: %w", err)
		}
		in.Payload = map[string]interface{}{}
		_ = json.Unmarshal([]byte(payload), &in.Payload)
		export.Interactions = append(export.Interactions, in)
	}
	if err := inRows.Err(); err != nil {
		return models.SessionExport{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.SessionExport{}, fmt.Errorf("committing export read: %w", err)
	}
	return export, nil
}

func collectDocuments(rows *sql.Rows) ([]models.Document, error) {
	defer rows.Close()
	var docs []models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func collectHighlights(rows *sql.Rows) ([]models.Highlight, error) {
	defer rows.Close()
	highlights := []models.Highlight{}
	for rows.Next() {
		h, err := scanHighlight(rows)
		if err != nil {
			return nil, err
		}
		highlights = append(highlights, h)
	}
	return highlights, rows.Err()
}
