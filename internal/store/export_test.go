package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"
)

func TestSessionExportOrdering(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	sess := mustSession(t, st)

	// Insert out of chronological order; export must sort by access time.
	if _, err := st.GetOrCreateDocument(ctx, sess.SessionID, "Later", "https://example.org/b", "html", "2025-03-01T00:00:00.000000000Z"); err != nil {
		t.Fatalf("doc b: %v", err)
	}
	docA, err := st.GetOrCreateDocument(ctx, sess.SessionID, "Earlier", "https://example.org/a", "html", "2025-01-01T00:00:00.000000000Z")
	if err != nil {
		t.Fatalf("doc a: %v", err)
	}

	h1 := mustHighlight(t, st, sess.SessionID, docA.DocumentID, "first passage")
	h2 := mustHighlight(t, st, sess.SessionID, docA.DocumentID, "second passage")

	if _, err := st.RecordSearchEpisode(ctx, sess.SessionID, "semantic_scholar", "late query", "2025-02-01T00:00:00.000000000Z"); err != nil {
		t.Fatalf("episode: %v", err)
	}
	if _, err := st.RecordSearchEpisode(ctx, sess.SessionID, "google_scholar", "early query", "2025-01-15T00:00:00.000000000Z"); err != nil {
		t.Fatalf("episode: %v", err)
	}
	if _, err := st.RecordInteraction(ctx, sess.SessionID, "scroll", map[string]interface{}{"depth": 0.7}, ""); err != nil {
		t.Fatalf("interaction: %v", err)
	}

	export, err := st.SessionExport(ctx, sess.SessionID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if len(export.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(export.Documents))
	}
	if export.Documents[0].Title != "Earlier" || export.Documents[1].Title != "Later" {
		t.Fatalf("documents not ordered by access time: %s, %s", export.Documents[0].Title, export.Documents[1].Title)
	}

	highlights := export.Documents[0].Highlights
	if len(highlights) != 2 {
		t.Fatalf("expected 2 highlights, got %d", len(highlights))
	}
	if !sort.SliceIsSorted(highlights, func(i, j int) bool { return highlights[i].Timestamp < highlights[j].Timestamp }) {
		t.Fatal("highlights not ordered by timestamp")
	}
	if highlights[0].HighlightID != h1.HighlightID || highlights[1].HighlightID != h2.HighlightID {
		t.Fatalf("highlight order unexpected: %s, %s", highlights[0].HighlightID, highlights[1].HighlightID)
	}

	if len(export.SearchEpisodes) != 2 || export.SearchEpisodes[0].Query != "early query" {
		t.Fatalf("episodes not ordered by timestamp: %+v", export.SearchEpisodes)
	}
	if len(export.Interactions) != 1 || export.Interactions[0].Payload["depth"] != 0.7 {
		t.Fatalf("interaction payload lost: %+v", export.Interactions)
	}
}

func TestSessionExportEmptySession(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	sess := mustSession(t, st)

	export, err := st.SessionExport(ctx, sess.SessionID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	// Child collections serialize as [] rather than null.
	b, err := json.Marshal(export)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"documents", "search_episodes", "interactions"} {
		if _, ok := m[key].([]interface{}); !ok {
			t.Errorf("%s serialized as %T, want array", key, m[key])
		}
	}
}

func TestSessionExportNotFound(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.SessionExport(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
