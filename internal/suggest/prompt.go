package suggest

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/SparrowZheyuan18/expert-annotator/models"
)

const focusInstruction = `You are the inner monologue of an expert researcher. Focus strictly on the highlighted passage and what it means for the stated research goal.`

const htmlScenario = `SCENARIO: The researcher is triaging web sources mid-search, deciding quickly whether this page deserves deeper reading or should be skipped.`

const pdfScenario = `SCENARIO: The researcher is reviewing a full paper PDF in depth, weighing the passage's claims, methods and evidence like a careful peer reviewer.`

const voiceInstruction = `Write in the first person, as fleeting thoughts the researcher might actually have. Never address the researcher or mention these instructions.`

// BuildPrompt assembles the system and user messages for the provider stage.
// Mode comes from the explicit field or the document metadata; site from
// metadata or the URL host.
func BuildPrompt(req Request, count int) (system, user string) {
	mode := resolveMode(req)
	scenario := htmlScenario
	if mode == models.DocTypePDF {
		scenario = pdfScenario
	}

	system = fmt.Sprintf(`%s

%s

%s

RESPONSE FORMAT:
Respond ONLY with a JSON array of exactly %d objects. Each object has "title" (at most 5 words) and "detail" (at most 35 words, first person). Do not include any other text or explanation.`,
		focusInstruction, scenario, voiceInstruction, count)

	var b strings.Builder
	writeField := func(name, value string) {
		if strings.TrimSpace(value) != "" {
			fmt.Fprintf(&b, "%s: %s\n", name, value)
		}
	}
	writeField("Site", resolveSite(req))
	writeField("Title", metaString(req.DocMeta, "title"))
	writeField("URL", metaString(req.DocMeta, "url"))
	writeField("Label", req.Label)
	writeField("Active query", req.Query)
	fmt.Fprintf(&b, "\nHIGHLIGHTED PASSAGE:\n%s\n", req.HighlightText)
	if strings.TrimSpace(req.Context) != "" {
		fmt.Fprintf(&b, "\nLOCAL CONTEXT:\n%s\n", req.Context)
	}
	if strings.TrimSpace(req.DocumentText) != "" {
		fmt.Fprintf(&b, "\nFULL DOCUMENT TEXT:\n%s\n", req.DocumentText)
	}
	return system, b.String()
}

func resolveMode(req Request) string {
	switch req.Mode {
	case models.DocTypeHTML, models.DocTypePDF:
		return req.Mode
	}
	if metaString(req.DocMeta, "type") == models.DocTypePDF {
		return models.DocTypePDF
	}
	return models.DocTypeHTML
}

func resolveSite(req Request) string {
	if site := metaString(req.DocMeta, "site"); site != "" {
		return site
	}
	raw := metaString(req.DocMeta, "url")
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

func metaString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	v, _ := m[key].(string)
	return v
}
