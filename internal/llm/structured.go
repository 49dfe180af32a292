package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

var (
	openingFencePattern  = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	closingFencePattern  = regexp.MustCompile("\r?\n?[ \t]*```[ \t]*$")
	objectPattern        = regexp.MustCompile(`(?s)\{.*\}`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// Decoded is the outcome of decoding a model response. When Fallback is set,
// Value holds the caller-supplied default and Reason explains why parsing failed.
type Decoded[T any] struct {
	Value    T
	Fallback bool
	Reason   error
}

// Sanitize parses a model response into a generic JSON object.
func Sanitize(raw string) (map[string]any, error) {
	return ExtractJSON[map[string]any](raw, nil)
}

// SanitizeOr is Sanitize with an explicit fallback object.
func SanitizeOr(raw string, fallback map[string]any) Decoded[map[string]any] {
	return DecodeOr(raw, fallback, nil)
}

// DecodeOr extracts T from raw, substituting fallback when nothing usable
// can be recovered. It never returns an error; callers inspect Fallback.
func DecodeOr[T any](raw string, fallback T, validator SchemaValidator[T]) Decoded[T] {
	v, err := ExtractJSON(raw, validator)
	if err != nil {
		return Decoded[T]{Value: fallback, Fallback: true, Reason: err}
	}
	return Decoded[T]{Value: v}
}

// ExtractJSON extracts a JSON object of type T from raw LLM text output.
// Candidates are tried in order: the fence-stripped text itself, the widest
// {...} regex match, then a string-aware balanced-brace scan.
// If validator is non-nil, the extracted value is validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	candidates := jsonCandidates(raw)
	if len(candidates) == 0 {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var lastErr error
	for _, candidate := range candidates {
		var result T
		if err := json.Unmarshal([]byte(repairJSON(candidate)), &result); err != nil {
			lastErr = err
			continue
		}
		if validator != nil {
			if err := validator(result); err != nil {
				return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
			}
		}
		return result, nil
	}

	return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, lastErr)
}

func jsonCandidates(raw string) []string {
	cleaned := stripCodeFences(raw)

	var out []string
	add := func(s string) {
		if s == "" {
			return
		}
		for _, existing := range out {
			if existing == s {
				return
			}
		}
		out = append(out, s)
	}

	if strings.HasPrefix(cleaned, "{") {
		add(cleaned)
	}
	add(objectPattern.FindString(cleaned))
	add(extractJSONBlock(cleaned))
	return out
}

// stripCodeFences trims the text and removes a leading ``` fence (with or
// without a language tag) and a trailing ``` fence.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = openingFencePattern.ReplaceAllString(s, "")
	s = closingFencePattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func repairJSON(s string) string {
	s = stripJSONComments(s)
	s = trailingCommaPattern.ReplaceAllString(s, "$1")
	return normalizeLeadingDecimalNumbers(s)
}

// extractJSONBlock finds the first balanced { ... } block in the text.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}

		if c == '\\' && inString {
			escaped = true
			continue
		}

		if c == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}

// stripJSONComments removes C-style comments outside of JSON string values.
// Models sometimes emit comments in JSON output despite instructions not to.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}

		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}

		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}

		if inString {
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}

		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			i += 2
			for i+1 < len(s) {
				if s[i] == '*' && s[i+1] == '/' {
					i++
					break
				}
				i++
			}
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

// normalizeLeadingDecimalNumbers rewrites invalid JSON numeric literals such as
// ".8" or "-.3" into valid forms "0.8" and "-0.3" outside string values.
func normalizeLeadingDecimalNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}

		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}

		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}

		if inString {
			b.WriteByte(c)
			continue
		}

		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(prevNonSpace(s, i-1)) {
			b.WriteByte('0')
		}

		b.WriteByte(c)
	}

	return b.String()
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		if s[i] != ' ' && s[i] != '\n' && s[i] != '\r' && s[i] != '\t' {
			return s[i]
		}
	}
	return 0
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
