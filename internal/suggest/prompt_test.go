package suggest

import (
	"strings"
	"testing"
)

func TestBuildPromptModeFromMetadata(t *testing.T) {
	req := Request{
		HighlightText: "the ablation shows no effect",
		DocMeta:       map[string]interface{}{"type": "pdf"},
	}
	system, _ := BuildPrompt(req, 3)
	if !strings.Contains(system, "peer reviewer") {
		t.Fatalf("doc_meta type pdf should select the reviewer scenario:\n%s", system)
	}
}

func TestBuildPromptExplicitModeBeatsMetadata(t *testing.T) {
	req := Request{
		HighlightText: "some passage",
		Mode:          "pdf",
		DocMeta:       map[string]interface{}{"type": "html"},
	}
	system, _ := BuildPrompt(req, 3)
	if !strings.Contains(system, "peer reviewer") {
		t.Fatalf("explicit mode should win over metadata:\n%s", system)
	}
}

func TestBuildPromptUnknownModeDefaultsToHTML(t *testing.T) {
	for _, req := range []Request{
		{HighlightText: "x", Mode: "epub"},
		{HighlightText: "x"},
		{HighlightText: "x", DocMeta: map[string]interface{}{"type": "epub"}},
	} {
		system, _ := BuildPrompt(req, 3)
		if !strings.Contains(system, "triaging web sources") {
			t.Fatalf("mode %q / meta %v should fall back to the triage scenario", req.Mode, req.DocMeta)
		}
	}
}

func TestBuildPromptRequestsExactCount(t *testing.T) {
	system, _ := BuildPrompt(Request{HighlightText: "x"}, 5)
	if !strings.Contains(system, "exactly 5 objects") {
		t.Fatalf("count not threaded into the response format:\n%s", system)
	}
}

func TestBuildPromptSiteFromMetadata(t *testing.T) {
	req := Request{
		HighlightText: "x",
		DocMeta:       map[string]interface{}{"site": "arXiv", "url": "https://example.org/paper"},
	}
	_, user := BuildPrompt(req, 3)
	if !strings.Contains(user, "Site: arXiv\n") {
		t.Fatalf("explicit site ignored:\n%s", user)
	}
}

func TestBuildPromptSiteFallsBackToURLHost(t *testing.T) {
	req := Request{
		HighlightText: "x",
		DocMeta:       map[string]interface{}{"url": "https://arxiv.org/abs/1706.03762"},
	}
	_, user := BuildPrompt(req, 3)
	if !strings.Contains(user, "Site: arxiv.org\n") {
		t.Fatalf("site not derived from url host:\n%s", user)
	}
}

func TestBuildPromptOptionalSections(t *testing.T) {
	bare := Request{HighlightText: "just the passage"}
	_, user := BuildPrompt(bare, 3)
	if !strings.Contains(user, "HIGHLIGHTED PASSAGE:\njust the passage") {
		t.Fatalf("highlight text missing:\n%s", user)
	}
	for _, section := range []string{"LOCAL CONTEXT:", "FULL DOCUMENT TEXT:", "Active query:", "Label:", "Site:"} {
		if strings.Contains(user, section) {
			t.Fatalf("empty field rendered section %q:\n%s", section, user)
		}
	}

	full := Request{
		HighlightText: "the passage",
		Context:       "surrounding paragraph",
		DocumentText:  "entire document body",
		Query:         "reward hacking",
		Label:         "Core Concept",
	}
	_, user = BuildPrompt(full, 3)
	for _, want := range []string{
		"LOCAL CONTEXT:\nsurrounding paragraph",
		"FULL DOCUMENT TEXT:\nentire document body",
		"Active query: reward hacking\n",
		"Label: Core Concept\n",
	} {
		if !strings.Contains(user, want) {
			t.Fatalf("missing %q in:\n%s", want, user)
		}
	}
}
