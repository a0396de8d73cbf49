package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSelectorUnmarshalTextQuote(t *testing.T) {
	var sel Selector
	raw := `{"type":"TextQuote","exact":"transformer","prefix":"the ","suffix":" model"}`
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sel.TextQuote == nil || sel.PDFText != nil {
		t.Fatalf("expected TextQuote variant, got %+v", sel)
	}
	if sel.TextQuote.Exact != "transformer" || sel.TextQuote.Prefix != "the " {
		t.Fatalf("unexpected fields: %+v", sel.TextQuote)
	}
}

func TestSelectorUnknownTypeDefaultsToTextQuote(t *testing.T) {
	for _, raw := range []string{
		`{"type":"XPath","exact":"anchor"}`,
		`{"exact":"anchor"}`,
	} {
		var sel Selector
		if err := json.Unmarshal([]byte(raw), &sel); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if sel.TextQuote == nil {
			t.Fatalf("expected TextQuote fallback for %s", raw)
		}
		if sel.TextQuote.Exact != "anchor" {
			t.Fatalf("lost exact field for %s", raw)
		}
	}
}

func TestSelectorPDFTextWithFullCoords(t *testing.T) {
	var sel Selector
	raw := `{"type":"PdfText","page":3,"text":"ablation","coords":{"x1":1,"y1":2,"x2":3,"y2":4}}`
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sel.PDFText == nil {
		t.Fatalf("expected PdfText variant, got %+v", sel)
	}
	if sel.PDFText.Coords == nil || sel.PDFText.Coords.Y2 != 4 {
		t.Fatalf("coords not parsed: %+v", sel.PDFText.Coords)
	}
	if err := sel.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSelectorPartialCoordsRejected(t *testing.T) {
	var sel Selector
	raw := `{"type":"PdfText","page":1,"text":"x","coords":{"x1":1,"y1":2}}`
	err := json.Unmarshal([]byte(raw), &sel)
	if err == nil {
		t.Fatal("expected error for partial coords")
	}
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestSelectorValidate(t *testing.T) {
	cases := []struct {
		name    string
		sel     Selector
		wantErr bool
	}{
		{"empty", Selector{}, true},
		{"text quote ok", Selector{TextQuote: &TextQuoteSelector{Exact: "x"}}, false},
		{"text quote missing exact", Selector{TextQuote: &TextQuoteSelector{}}, true},
		{"pdf ok", Selector{PDFText: &PDFTextSelector{Page: 1, Text: "x"}}, false},
		{"pdf zero page", Selector{PDFText: &PDFTextSelector{Page: 0, Text: "x"}}, true},
		{"pdf missing text", Selector{PDFText: &PDFTextSelector{Page: 2}}, true},
	}
	for _, tc := range cases {
		err := tc.sel.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: got err=%v, wantErr=%v", tc.name, err, tc.wantErr)
		}
	}
}

func TestSelectorMarshalRoundTrip(t *testing.T) {
	orig := Selector{PDFText: &PDFTextSelector{Page: 2, Text: "claim", Coords: &Rect{X1: 1, Y1: 2, X2: 3, Y2: 4}}}
	b, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Selector
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.PDFText == nil || back.PDFText.Page != 2 || back.PDFText.Coords == nil || back.PDFText.Coords.X2 != 3 {
		t.Fatalf("round trip mismatch: %+v", back.PDFText)
	}
}
