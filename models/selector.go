package models

import (
	"encoding/json"
)

// Selector discriminator values.
const (
	SelectorTextQuote = "TextQuote"
	SelectorPDFText   = "PdfText"
)

// TextQuoteSelector anchors a highlight in HTML by an exact string plus
// surrounding context.
type TextQuoteSelector struct {
	Exact  string `json:"exact"`
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

// Rect is a rectangle in PDF page coordinates.
type Rect struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// PDFTextSelector anchors a highlight on a 1-indexed PDF page, optionally
// with a bounding rectangle.
type PDFTextSelector struct {
	Page   int    `json:"page"`
	Text   string `json:"text"`
	Coords *Rect  `json:"coords,omitempty"`
}

// Selector is the tagged union of highlight anchors. Exactly one variant is
// set. An unrecognized or absent discriminator parses as TextQuote.
type Selector struct {
	TextQuote *TextQuoteSelector
	PDFText   *PDFTextSelector
}

type selectorEnvelope struct {
	Type   string `json:"type"`
	Exact  string `json:"exact"`
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
	Page   int    `json:"page"`
	Text   string `json:"text"`
	Coords *struct {
		X1 *float64 `json:"x1"`
		Y1 *float64 `json:"y1"`
		X2 *float64 `json:"x2"`
		Y2 *float64 `json:"y2"`
	} `json:"coords"`
}

// UnmarshalJSON dispatches on the "type" discriminator. Partial coordinate
// rectangles are rejected here because key presence is only visible at parse
// time.
func (s *Selector) UnmarshalJSON(b []byte) error {
	var env selectorEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	if env.Type == SelectorPDFText {
		sel := &PDFTextSelector{Page: env.Page, Text: env.Text}
		if env.Coords != nil {
			c := env.Coords
			if c.X1 == nil || c.Y1 == nil || c.X2 == nil || c.Y2 == nil {
				return Validationf("selector coords requires all of x1, y1, x2, y2")
			}
			sel.Coords = &Rect{X1: *c.X1, Y1: *c.Y1, X2: *c.X2, Y2: *c.Y2}
		}
		*s = Selector{PDFText: sel}
		return nil
	}
	*s = Selector{TextQuote: &TextQuoteSelector{Exact: env.Exact, Prefix: env.Prefix, Suffix: env.Suffix}}
	return nil
}

// MarshalJSON emits the tagged wire form.
func (s Selector) MarshalJSON() ([]byte, error) {
	if s.PDFText != nil {
		return json.Marshal(struct {
			Type string `json:"type"`
			PDFTextSelector
		}{Type: SelectorPDFText, PDFTextSelector: *s.PDFText})
	}
	tq := s.TextQuote
	if tq == nil {
		tq = &TextQuoteSelector{}
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		TextQuoteSelector
	}{Type: SelectorTextQuote, TextQuoteSelector: *tq})
}

// Validate checks variant-specific constraints.
func (s Selector) Validate() error {
	switch {
	case s.TextQuote != nil && s.PDFText != nil:
		return Validationf("selector must have exactly one variant")
	case s.PDFText != nil:
		if s.PDFText.Page < 1 {
			return Validationf("selector page must be >= 1, got %d", s.PDFText.Page)
		}
		if s.PDFText.Text == "" {
			return Validationf("selector text is required")
		}
	case s.TextQuote != nil:
		if s.TextQuote.Exact == "" {
			return Validationf("selector exact is required")
		}
	default:
		return Validationf("selector is required")
	}
	return nil
}
