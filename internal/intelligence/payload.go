package intelligence

import (
	"bytes"
	"encoding/json"
	"strings"
)

// text decodes any JSON value into a string: strings as-is, arrays joined
// with newlines, objects and scalars as compact JSON. Models are asked for
// strings but often return lists.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = text(strings.TrimSpace(s))
		return nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(b, &arr); err == nil {
		parts := make([]string, 0, len(arr))
		for _, raw := range arr {
			var p text
			if err := p.UnmarshalJSON(raw); err != nil {
				return err
			}
			if p != "" {
				parts = append(parts, string(p))
			}
		}
		*t = text(strings.Join(parts, "\n"))
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	*t = text(buf.String())
	return nil
}

// textList decodes an array of values, or a single comma-separated string.
type textList []string

func (l *textList) UnmarshalJSON(b []byte) error {
	var arr []text
	if err := json.Unmarshal(b, &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if v != "" {
				out = append(out, string(v))
			}
		}
		*l = out
		return nil
	}
	var single text
	if err := json.Unmarshal(b, &single); err != nil {
		return err
	}
	var out []string
	for _, part := range strings.Split(string(single), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*l = out
	return nil
}

type questionPayload struct {
	Question    text     `json:"question"`
	Suggestions textList `json:"suggestions"`
}

func validateQuestion(p questionPayload) error {
	if strings.TrimSpace(string(p.Question)) == "" {
		return errMissing("question")
	}
	return nil
}

type missingFieldError string

func (e missingFieldError) Error() string { return string(e) + " is missing" }

func errMissing(field string) error { return missingFieldError(field) }
