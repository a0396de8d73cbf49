package models

import "fmt"

// Document types accepted by the recorder.
const (
	DocTypeHTML = "html"
	DocTypePDF  = "pdf"
)

// Search platforms accepted for search episodes.
const (
	PlatformGoogleScholar   = "google_scholar"
	PlatformSemanticScholar = "semantic_scholar"
)

// ValidationError marks a request that violates a domain constraint. Handlers
// translate it to a 400 with the offending constraint named.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) ValidationError {
	return ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Session is the root of ownership for one expert's research activity.
type Session struct {
	SessionID    string  `json:"session_id"`
	ExpertName   string  `json:"expert_name"`
	Topic        string  `json:"topic"`
	ResearchGoal string  `json:"research_goal"`
	StartTime    string  `json:"start_time"`
	EndTime      *string `json:"end_time"`
}

// Document is a web page or PDF visited within a session. Its identity is a
// deterministic function of (session id, url), so revisits upsert instead of
// duplicating.
type Document struct {
	DocumentID     string                 `json:"document_id"`
	SessionID      string                 `json:"session_id"`
	Title          string                 `json:"title"`
	URL            string                 `json:"url"`
	Type           string                 `json:"type"`
	AccessedAt     string                 `json:"accessed_at"`
	GlobalJudgment map[string]interface{} `json:"global_judgment,omitempty"`
	PDFReview      map[string]interface{} `json:"pdf_review,omitempty"`
}

// ValidateDocType checks the document type enum.
func ValidateDocType(t string) error {
	switch t {
	case DocTypeHTML, DocTypePDF:
		return nil
	}
	return Validationf("type must be %q or %q, got %q", DocTypeHTML, DocTypePDF, t)
}

// ValidatePlatform checks the search platform enum.
func ValidatePlatform(p string) error {
	switch p {
	case PlatformGoogleScholar, PlatformSemanticScholar:
		return nil
	}
	return Validationf("platform must be %q or %q, got %q", PlatformGoogleScholar, PlatformSemanticScholar, p)
}

// Highlight is a user-selected passage within a document with an attached
// judgment.
type Highlight struct {
	HighlightID   string       `json:"highlight_id"`
	SessionID     string       `json:"session_id"`
	DocumentID    string       `json:"document_id"`
	Text          string       `json:"text"`
	Context       *string      `json:"context,omitempty"`
	Selector      Selector     `json:"selector"`
	AISuggestions []Suggestion `json:"ai_suggestions"`
	UserJudgment  UserJudgment `json:"user_judgment"`
	Timestamp     string       `json:"timestamp"`
}

// SearchEpisode is one logged query against an external search platform.
type SearchEpisode struct {
	EpisodeID string `json:"episode_id"`
	SessionID string `json:"session_id"`
	Platform  string `json:"platform"`
	Query     string `json:"query"`
	Timestamp string `json:"timestamp"`
}

// Interaction is a generic logged UI event with an arbitrary payload.
type Interaction struct {
	InteractionID   string                 `json:"interaction_id"`
	SessionID       string                 `json:"session_id"`
	InteractionType string                 `json:"interaction_type"`
	Payload         map[string]interface{} `json:"payload"`
	Timestamp       string                 `json:"timestamp"`
}

// DocumentExport is a document with its highlights inlined, ordered by
// highlight timestamp.
type DocumentExport struct {
	Document
	Highlights []Highlight `json:"highlights"`
}

// SessionExport is the full reconstructed session tree.
type SessionExport struct {
	Session
	Documents      []DocumentExport `json:"documents"`
	SearchEpisodes []SearchEpisode  `json:"search_episodes"`
	Interactions   []Interaction    `json:"interactions"`
}
