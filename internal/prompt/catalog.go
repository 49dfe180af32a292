package prompt

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Template names used by the wizard flows.
const (
	ToneFirstQuestion         = "tone_first_question"
	ToneNextQuestion          = "tone_next_question"
	ToneSynthesis             = "tone_synthesis"
	MessageContextualQuestion = "message_contextual_question"
	MessageUpdateWithAnswers  = "message_update_with_answers"
	MessageGenerateWithPrompt = "message_generate_with_prompt"
	AudienceEditWithPrompt    = "audience_edit_with_prompt"
	AudienceGeneration        = "audience_generation"
)

//go:embed prompts.yaml
var defaultCatalogYAML []byte

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// OverrideSource supplies admin-edited user prompt text by template name.
type OverrideSource interface {
	PromptOverride(ctx context.Context, name string) (text string, ok bool, err error)
}

// Catalog holds the named templates the wizard renders.
type Catalog struct {
	templates map[string]Template
	overrides OverrideSource
	logger    *slog.Logger
}

// DefaultCatalog loads the embedded prompt set.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultCatalogYAML)
}

// LoadCatalog parses a YAML catalog and validates every template in it.
func LoadCatalog(data []byte) (*Catalog, error) {
	templates, err := parseTemplates(data)
	if err != nil {
		return nil, err
	}
	c := &Catalog{templates: make(map[string]Template, len(templates)), logger: slog.Default()}
	for _, t := range templates {
		c.templates[t.Name] = t
	}
	return c, nil
}

// MergeFile replaces templates by name with those declared in a YAML file.
// Templates absent from the file keep their current definition.
func (c *Catalog) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read prompt file: %w", err)
	}
	templates, err := parseTemplates(data)
	if err != nil {
		return fmt.Errorf("prompt file %s: %w", path, err)
	}
	for _, t := range templates {
		c.templates[t.Name] = t
	}
	return nil
}

// WithOverrides makes Lookup consult src for override text.
func (c *Catalog) WithOverrides(src OverrideSource) *Catalog {
	c.overrides = src
	return c
}

// WithLogger sets the logger used when the override source fails.
func (c *Catalog) WithLogger(logger *slog.Logger) *Catalog {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Base returns the template as loaded, ignoring overrides.
func (c *Catalog) Base(name string) (Template, bool) {
	t, ok := c.templates[name]
	return t, ok
}

// Names lists template names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.templates))
	for name := range c.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the effective template. An override replaces the user
// prompt text; a failing override source is logged and the base text used.
func (c *Catalog) Lookup(ctx context.Context, name string) (Template, error) {
	t, ok := c.templates[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	if c.overrides == nil {
		return t, nil
	}
	text, found, err := c.overrides.PromptOverride(ctx, name)
	if err != nil {
		c.logger.Warn("prompt override lookup failed", "template", name, "error", err)
		return t, nil
	}
	if found && text != "" {
		t.Text = text
	}
	return t, nil
}

// Render looks up name and renders it with v.
func (c *Catalog) Render(ctx context.Context, name string, v Values) (Rendered, error) {
	t, err := c.Lookup(ctx, name)
	if err != nil {
		return Rendered{}, err
	}
	return t.Render(v)
}

func parseTemplates(data []byte) ([]Template, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}
	seen := make(map[string]bool, len(f.Templates))
	for _, t := range f.Templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("%w: duplicate template %s", ErrInvalidTemplate, t.Name)
		}
		seen[t.Name] = true
	}
	return f.Templates, nil
}
