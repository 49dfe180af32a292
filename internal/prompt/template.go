// Package prompt renders the natural-language prompts sent to the
// completion provider. Templates declare which fields they need; the caller
// supplies values and never assembles prompt text by hand.
package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrMissingField is returned when a required field has no value.
	ErrMissingField = errors.New("missing required prompt field")

	// ErrUnknownTemplate is returned when a catalog has no template by that name.
	ErrUnknownTemplate = errors.New("unknown prompt template")

	// ErrInvalidTemplate is returned when template text references an
	// undeclared field or the declaration itself is malformed.
	ErrInvalidTemplate = errors.New("invalid prompt template")
)

// placeholderPattern matches {fieldName}. Identifier characters only, so JSON
// examples embedded in prompts ({"question": ...}) are left alone.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

// Field declares one substitution slot.
type Field struct {
	Name     string `yaml:"name" json:"name"`
	Required bool   `yaml:"required" json:"required"`
}

// Template is a named system + user prompt pair.
type Template struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	System      string  `yaml:"system" json:"system"`
	Text        string  `yaml:"text" json:"text"`
	Fields      []Field `yaml:"fields" json:"fields"`
}

// Values maps field names to their substitution text.
type Values map[string]string

// Rendered is a fully substituted prompt pair.
type Rendered struct {
	System string
	User   string
}

// Render substitutes values into the template.
//
// A required field that is missing or blank fails with ErrMissingField.
// Optional fields that are missing render as empty strings, and a line whose
// placeholders are all optional and all empty is dropped entirely.
func (t Template) Render(v Values) (Rendered, error) {
	for _, f := range t.Fields {
		if f.Required && strings.TrimSpace(v[f.Name]) == "" {
			return Rendered{}, fmt.Errorf("%w: template %s requires %q", ErrMissingField, t.Name, f.Name)
		}
	}
	required := t.requiredSet()
	return Rendered{
		System: renderText(t.System, required, v),
		User:   renderText(t.Text, required, v),
	}, nil
}

// Validate checks the declaration and that every placeholder is declared.
func (t Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTemplate)
	}
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("%w: %s has no text", ErrInvalidTemplate, t.Name)
	}
	declared := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: %s declares a field without a name", ErrInvalidTemplate, t.Name)
		}
		if declared[f.Name] {
			return fmt.Errorf("%w: %s declares %q twice", ErrInvalidTemplate, t.Name, f.Name)
		}
		declared[f.Name] = true
	}
	if err := t.CheckText(t.System); err != nil {
		return err
	}
	return t.CheckText(t.Text)
}

// CheckText verifies that text only references fields this template declares.
// Used for admin-supplied override text.
func (t Template) CheckText(text string) error {
	declared := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		declared[f.Name] = true
	}
	for _, name := range Placeholders(text) {
		if !declared[name] {
			return fmt.Errorf("%w: %s references undeclared field %q", ErrInvalidTemplate, t.Name, name)
		}
	}
	return nil
}

// Placeholders lists the distinct field names referenced by text, in order.
func Placeholders(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

func (t Template) requiredSet() map[string]bool {
	out := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if f.Required {
			out[f.Name] = true
		}
	}
	return out
}

func renderText(text string, required map[string]bool, v Values) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		names := placeholderPattern.FindAllStringSubmatch(line, -1)
		if len(names) > 0 && allOptionalAndEmpty(names, required, v) {
			continue
		}
		out = append(out, placeholderPattern.ReplaceAllStringFunc(line, func(tok string) string {
			return v[tok[1:len(tok)-1]]
		}))
	}
	return strings.Join(out, "\n")
}

func allOptionalAndEmpty(matches [][]string, required map[string]bool, v Values) bool {
	for _, m := range matches {
		if required[m[1]] || strings.TrimSpace(v[m[1]]) != "" {
			return false
		}
	}
	return true
}
