package suggest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestForwardStageWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("forward used method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"suggestions":[{"title":"From upstream","detail":"forwarded detail"}]}`))
	}))
	defer srv.Close()

	p := &fakeProvider{reply: `[{"title":"unused","detail":"unused"}]`}
	g := NewGenerator(srv.URL, p, 3, time.Second, nil)
	res := g.Suggestions(context.Background(), Request{HighlightText: "some text"})
	if res.Source != SourceForward {
		t.Fatalf("source = %q, want forward", res.Source)
	}
	if len(res.Suggestions) != 1 || res.Suggestions[0].Title != "From upstream" {
		t.Fatalf("unexpected suggestions: %+v", res.Suggestions)
	}
	if p.calls != 0 {
		t.Fatal("provider should not run when forwarding succeeds")
	}
}

func TestForwardFailureFallsThroughToProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := &fakeProvider{reply: `[{"title":"Model view","detail":"provider detail"}]`}
	g := NewGenerator(srv.URL, p, 3, time.Second, nil)
	res := g.Suggestions(context.Background(), Request{HighlightText: "some text"})
	if res.Source != SourceProvider {
		t.Fatalf("source = %q, want provider", res.Source)
	}
	if res.Suggestions[0].Detail != "provider detail" {
		t.Fatalf("unexpected suggestions: %+v", res.Suggestions)
	}
}

func TestProviderErrorFallsThroughToMock(t *testing.T) {
	p := &fakeProvider{err: errors.New("upstream down")}
	g := NewGenerator("", p, 3, time.Second, nil)
	res := g.Suggestions(context.Background(), Request{HighlightText: "some text"})
	if res.Source != SourceMock {
		t.Fatalf("source = %q, want mock", res.Source)
	}
	if len(res.Suggestions) != 3 {
		t.Fatalf("mock should yield 3 suggestions, got %d", len(res.Suggestions))
	}
	if p.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", p.calls)
	}
}

func TestNoStagesConfiguredYieldsMock(t *testing.T) {
	g := NewGenerator("", nil, 0, 0, nil)
	res := g.Suggestions(context.Background(), Request{HighlightText: "anything"})
	if res.Source != SourceMock {
		t.Fatalf("source = %q, want mock", res.Source)
	}
	if len(res.Suggestions) != 3 {
		t.Fatalf("expected default count of 3, got %d", len(res.Suggestions))
	}
}

func TestRequestCountOverridesDefault(t *testing.T) {
	g := NewGenerator("", nil, 3, time.Second, nil)
	res := g.Suggestions(context.Background(), Request{HighlightText: "x", Count: 1})
	if len(res.Suggestions) != 1 {
		t.Fatalf("request count ignored, got %d suggestions", len(res.Suggestions))
	}
}

func TestMockSuggestionsTruncateHighlight(t *testing.T) {
	long := strings.Repeat("word ", 60)
	got := MockSuggestions(long)
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got))
	}
	if !strings.Contains(got[0].Detail, "…") {
		t.Fatal("long highlight should be truncated with an ellipsis")
	}
}

func TestMockSuggestionsCollapseWhitespace(t *testing.T) {
	got := MockSuggestions("some\n\n  spread   out\ttext")
	if !strings.Contains(got[0].Detail, "some spread out text") {
		t.Fatalf("whitespace not collapsed: %q", got[0].Detail)
	}
}
