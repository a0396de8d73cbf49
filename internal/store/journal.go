package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/SparrowZheyuan18/expert-annotator/models"
)

// RecordSearchEpisode appends a search query to the session log. Timestamp
// defaults to server time when absent.
func (s *Store) RecordSearchEpisode(ctx context.Context, sessionID, platform, query, timestamp string) (models.SearchEpisode, error) {
	if err := models.ValidatePlatform(platform); err != nil {
		return models.SearchEpisode{}, err
	}
	if timestamp == "" {
		timestamp = nowISO()
	}
	ep := models.SearchEpisode{
		EpisodeID: uuid.NewString(),
		SessionID: sessionID,
		Platform:  platform,
		Query:     query,
		Timestamp: timestamp,
	}
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO search_episodes (episode_id, session_id, platform, query, timestamp)
VALUES (?, ?, ?, ?, ?)
`, ep.EpisodeID, ep.SessionID, ep.Platform, ep.Query, ep.Timestamp)
	if err != nil {
		return models.SearchEpisode{}, fmt.Errorf("inserting search episode: %w", err)
	}
	return ep, nil
}

// RecordInteraction appends a generic UI event. Timestamp defaults to server
// time when absent.
func (s *Store) RecordInteraction(ctx context.Context, sessionID, interactionType string, payload map[string]interface{}, timestamp string) (models.Interaction, error) {
	if timestamp == "" {
		timestamp = nowISO()
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	blob, err := json.Marshal(payload)
	if err != nil {
		return models.Interaction{}, fmt.Errorf("encoding payload: %w", err)
	}
	in := models.Interaction{
		InteractionID:   uuid.NewString(),
		SessionID:       sessionID,
		InteractionType: interactionType,
		Payload:         payload,
		Timestamp:       timestamp,
	}
	_, err = s.DB.ExecContext(ctx, `
INSERT INTO interactions (interaction_id, session_id, interaction_type, payload_json, timestamp)
VALUES (?, ?, ?, ?, ?)
`, in.InteractionID, in.SessionID, in.InteractionType, string(blob), in.Timestamp)
	if err != nil {
		return models.Interaction{}, fmt.Errorf("inserting interaction: %w", err)
	}
	return in, nil
}
