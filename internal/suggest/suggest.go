package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/SparrowZheyuan18/expert-annotator/models"
	"github.com/SparrowZheyuan18/expert-annotator/provider"
)

// Pipeline stages, surfaced to callers as the result source.
const (
	SourceForward  = "forward"
	SourceProvider = "provider"
	SourceMock     = "mock"
)

const defaultCount = 3

// Request carries a highlighted passage plus whatever document context the
// extension had on hand. Its JSON form is also the forwarding wire format.
type Request struct {
	SessionID     string                 `json:"session_id,omitempty"`
	HighlightText string                 `json:"highlight_text"`
	Context       string                 `json:"context,omitempty"`
	Query         string                 `json:"query,omitempty"`
	Label         string                 `json:"label,omitempty"`
	Mode          string                 `json:"mode,omitempty"`
	DocumentText  string                 `json:"document_text,omitempty"`
	// Count, when positive, overrides the generator's configured count for
	// this one request. Surfaces the client asking for more or fewer
	// suggestions than the server default.
	Count int `json:"count,omitempty"`
	DocMeta       map[string]interface{} `json:"doc_meta,omitempty"`
}

// Result is a ranked suggestion list plus the stage that produced it.
type Result struct {
	Suggestions []models.Suggestion `json:"suggestions"`
	Source      string              `json:"source"`
}

// Generator runs the forward -> provider -> mock chain. It never returns an
// error: upstream failures are logged and the next stage takes over, so the
// caller always gets a non-empty list.
type Generator struct {
	ForwardURL string
	Provider   provider.Provider
	Count      int
	HTTPClient *http.Client
	Logger     *log.Logger
}

// NewGenerator wires the pipeline. A nil provider simply skips the provider
// stage; timeout bounds the forward call.
func NewGenerator(forwardURL string, p provider.Provider, count int, timeout time.Duration, logger *log.Logger) *Generator {
	if count < 1 {
		count = defaultCount
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Generator{
		ForwardURL: forwardURL,
		Provider:   p,
		Count:      count,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

// Suggestions produces the ranked list for a highlight, short-circuiting on
// the first stage that yields anything.
func (g *Generator) Suggestions(ctx context.Context, req Request) Result {
	count := g.Count
	if count < 1 {
		count = defaultCount
	}
	if req.Count > 0 {
		count = req.Count
	}
	req.Count = count

	if g.ForwardURL != "" {
		if out := g.forward(ctx, req); len(out) > 0 {
			stageCounter.WithLabelValues(SourceForward).Inc()
			return Result{Suggestions: capList(out, count), Source: SourceForward}
		}
	}
	if g.Provider != nil {
		if out := g.fromProvider(ctx, req, count); len(out) > 0 {
			stageCounter.WithLabelValues(SourceProvider).Inc()
			return Result{Suggestions: capList(out, count), Source: SourceProvider}
		}
	}
	stageCounter.WithLabelValues(SourceMock).Inc()
	return Result{Suggestions: capList(MockSuggestions(req.HighlightText), count), Source: SourceMock}
}

// forward posts the request to the configured endpoint. Any transport or
// decoding failure is treated as an empty result, never propagated.
func (g *Generator) forward(ctx context.Context, req Request) []models.Suggestion {
	body, err := json.Marshal(req)
	if err != nil {
		return nil
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.ForwardURL, bytes.NewReader(body))
	if err != nil {
		g.Logger.Printf("forward request build failed: %v", err)
		return nil
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTPClient.Do(httpReq)
	if err != nil {
		g.Logger.Printf("forward request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		g.Logger.Printf("forward endpoint returned status %d", resp.StatusCode)
		return nil
	}

	var out struct {
		Suggestions []models.Suggestion `json:"suggestions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		g.Logger.Printf("forward response decode failed: %v", err)
		return nil
	}
	return cleanAll(out.Suggestions)
}

func (g *Generator) fromProvider(ctx context.Context, req Request, count int) []models.Suggestion {
	system, user := BuildPrompt(req, count)
	raw, err := g.Provider.Complete(ctx, system, user)
	if err != nil {
		g.Logger.Printf("provider completion failed: %v", err)
		return nil
	}
	return Parse(raw, count)
}

// MockSuggestions is the terminal fallback: three deterministic suggestions
// derived from the highlight text, always non-empty.
func MockSuggestions(highlightText string) []models.Suggestion {
	snippet := truncate(collapse(highlightText), 120)
	return []models.Suggestion{
		{Title: "Goal alignment", Detail: fmt.Sprintf("Assess how this passage advances the research goal: %q", snippet)},
		{Title: "Evidence gaps", Detail: "Identify assumptions or evidence gaps that need validation."},
		{Title: "Follow-up searches", Detail: "Consider follow-up searches to deepen context or cross-check sources."},
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
