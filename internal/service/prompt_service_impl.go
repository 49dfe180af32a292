package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/prompt"
	"github.com/alexanderramin/brandvoice/internal/repository"
)

type promptService struct {
	catalog   *prompt.Catalog
	overrides repository.PromptOverrideRepo
	observer  UseCaseObserver
}

// NewPromptService manages admin overrides of the catalog's user prompts.
// The catalog should read overrides from the same repository.
func NewPromptService(catalog *prompt.Catalog, overrides repository.PromptOverrideRepo, observers ...UseCaseObserver) PromptService {
	return &promptService{catalog: catalog, overrides: overrides, observer: useCaseObserverOrNoop(observers)}
}

func (s *promptService) List(ctx context.Context) ([]PromptView, error) {
	stored, err := s.overrides.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*domain.PromptOverride, len(stored))
	for _, o := range stored {
		byName[o.Name] = o
	}

	names := s.catalog.Names()
	out := make([]PromptView, 0, len(names))
	for _, name := range names {
		base, _ := s.catalog.Base(name)
		out = append(out, view(base, byName[name]))
	}
	return out, nil
}

func (s *promptService) Get(ctx context.Context, name string) (*PromptView, error) {
	base, err := s.base(name)
	if err != nil {
		return nil, err
	}
	o, err := s.overrides.Get(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		o = nil
	} else if err != nil {
		return nil, err
	}
	v := view(base, o)
	return &v, nil
}

// Set stores override text after checking it only references the
// template's declared fields.
func (s *promptService) Set(ctx context.Context, name, text, updatedBy string) (pv *PromptView, err error) {
	defer observe(ctx, s.observer, "set-prompt-override", time.Now(), &err, map[string]any{"template": name})

	base, err := s.base(name)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.Required("text")
	}
	if err := base.CheckText(text); err != nil {
		return nil, domain.Invalid("text", "%v", err)
	}
	o := &domain.PromptOverride{Name: name, Text: text, UpdatedBy: updatedBy, UpdatedAt: time.Now().UTC()}
	if err := s.overrides.Upsert(ctx, o); err != nil {
		return nil, err
	}
	v := view(base, o)
	return &v, nil
}

func (s *promptService) Reset(ctx context.Context, name string) (err error) {
	defer observe(ctx, s.observer, "reset-prompt-override", time.Now(), &err, map[string]any{"template": name})

	if _, err := s.base(name); err != nil {
		return err
	}
	return s.overrides.Delete(ctx, name)
}

func (s *promptService) base(name string) (prompt.Template, error) {
	t, ok := s.catalog.Base(name)
	if !ok {
		return prompt.Template{}, fmt.Errorf("prompt %s: %w", name, repository.ErrNotFound)
	}
	return t, nil
}

func view(base prompt.Template, o *domain.PromptOverride) PromptView {
	v := PromptView{Template: base}
	if o != nil {
		v.Text = o.Text
		v.Overridden = true
		v.UpdatedBy = o.UpdatedBy
		v.UpdatedAt = o.UpdatedAt
	}
	return v
}
