package server

import "github.com/SparrowZheyuan18/expert-annotator/models"

// HealthResponse is the liveness payload.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type createSessionRequest struct {
	ExpertName   string `json:"expert_name"`
	Topic        string `json:"topic"`
	ResearchGoal string `json:"research_goal"`
}

type completeSessionResponse struct {
	SessionID string `json:"session_id"`
	EndTime   string `json:"end_time"`
}

type upsertDocumentRequest struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Type       string `json:"type"`
	AccessedAt string `json:"accessed_at"`
}

type createHighlightRequest struct {
	Text          string              `json:"text"`
	Context       *string             `json:"context"`
	Selector      models.Selector     `json:"selector"`
	AISuggestions []models.Suggestion `json:"ai_suggestions"`
	UserJudgment  models.UserJudgment `json:"user_judgment"`
}

type searchEpisodeRequest struct {
	Platform  string `json:"platform"`
	Query     string `json:"query"`
	Timestamp string `json:"timestamp"`
}

type interactionRequest struct {
	InteractionType string                 `json:"interaction_type"`
	Payload         map[string]interface{} `json:"payload"`
	Timestamp       string                 `json:"timestamp"`
}
