package suggest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/SparrowZheyuan18/expert-annotator/models"
)

const (
	maxTitleLen  = 80
	maxDetailLen = 320
)

// Title/detail separators for the line heuristic, in precedence order.
var separators = []string{"::", "—", " - ", ":", "-"}

var (
	fenceRE  = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")
	bulletRE = regexp.MustCompile(`^\s*(?:[-*\x{2022}]+|\d+[.)])\s*`)
)

// Parse converts arbitrary model output into a cleaned suggestion list
// capped at limit. The cascade tries, in order: fence-stripped strict JSON,
// JSON from the first '{' or '[' offset, both again on the unstripped text,
// a line-splitting heuristic, and finally a single "Key insight" synthesized
// from the raw text. Empty or whitespace-only input yields an empty list.
func Parse(raw string, limit int) []models.Suggestion {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if limit < 1 {
		limit = 1
	}

	for _, candidate := range []string{stripFence(trimmed), trimmed} {
		if out := decodeStructured(candidate); len(out) > 0 {
			return capList(out, limit)
		}
	}
	if out := parseLines(trimmed); len(out) > 0 {
		return capList(out, limit)
	}

	out := cleanAll([]models.Suggestion{{Title: "Key insight", Detail: trimmed}})
	return capList(out, limit)
}

// stripFence unwraps a single fenced code block; anything else passes
// through untouched.
func stripFence(s string) string {
	if m := fenceRE.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

func decodeStructured(s string) []models.Suggestion {
	if out := tryDecode(s, true); len(out) > 0 {
		return out
	}
	// Tolerate prose before or after the JSON payload.
	if idx := strings.IndexAny(s, "[{"); idx >= 0 {
		if out := tryDecode(s[idx:], false); len(out) > 0 {
			return out
		}
	}
	return nil
}

// tryDecode attempts the shapes providers actually return: a bare array, a
// {"suggestions": [...]} wrapper, or a single object. Strict mode rejects
// trailing garbage; lenient mode decodes the first JSON value and ignores
// the rest.
func tryDecode(s string, strict bool) []models.Suggestion {
	decode := func(v interface{}) bool {
		if strict {
			return json.Unmarshal([]byte(s), v) == nil
		}
		return json.NewDecoder(strings.NewReader(s)).Decode(v) == nil
	}

	var list []models.Suggestion
	if decode(&list) {
		if out := cleanAll(list); len(out) > 0 {
			return out
		}
	}
	var wrapper struct {
		Suggestions []models.Suggestion `json:"suggestions"`
	}
	if decode(&wrapper) {
		if out := cleanAll(wrapper.Suggestions); len(out) > 0 {
			return out
		}
	}
	var single models.Suggestion
	if decode(&single) {
		if out := cleanAll([]models.Suggestion{single}); len(out) > 0 {
			return out
		}
	}
	return nil
}

// parseLines treats each non-empty line as one candidate, stripping bullet
// and numbering punctuation and splitting on the separator precedence.
// Untitled lines get a synthesized "Idea N" title.
func parseLines(s string) []models.Suggestion {
	var out []models.Suggestion
	n := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(bulletRE.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		n++
		title, detail := splitLine(line, n)
		out = append(out, models.Suggestion{Title: title, Detail: detail})
	}
	return cleanAll(out)
}

func splitLine(line string, n int) (title, detail string) {
	for _, sep := range separators {
		if idx := strings.Index(line, sep); idx > 0 {
			title = strings.TrimSpace(line[:idx])
			detail = strings.TrimSpace(line[idx+len(sep):])
			if title != "" && detail != "" {
				return title, detail
			}
		}
	}
	return fmt.Sprintf("Idea %d", n), line
}

// cleanAll collapses whitespace, truncates to the title/detail budgets and
// drops suggestions left with an empty detail.
func cleanAll(in []models.Suggestion) []models.Suggestion {
	var out []models.Suggestion
	for _, s := range in {
		title := truncate(collapse(s.Title), maxTitleLen)
		detail := truncate(collapse(s.Detail), maxDetailLen)
		if detail == "" {
			continue
		}
		out = append(out, models.Suggestion{Title: title, Detail: detail})
	}
	return out
}

func capList(in []models.Suggestion, limit int) []models.Suggestion {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}

// truncate cuts at n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
