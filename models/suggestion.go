package models

import "encoding/json"

// Suggestion is a short title+detail pair proposed to the expert as a
// possible interpretation of a highlight.
type Suggestion struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// UnmarshalJSON accepts the object form and, for older extension builds that
// sent plain strings, a bare string shorthand mapped to the detail.
func (s *Suggestion) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = Suggestion{Detail: str}
		return nil
	}
	type alias Suggestion
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*s = Suggestion(a)
	return nil
}
