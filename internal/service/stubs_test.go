package service

import (
	"context"
	"sync"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
)

type stubAudienceGenerator struct {
	draft     *intelligence.AudienceDraft
	err       error
	calls     int
	lastBrand intelligence.BrandContext
}

func (s *stubAudienceGenerator) Generate(_ context.Context, brand intelligence.BrandContext, _ *domain.Brief) (*intelligence.AudienceDraft, error) {
	s.calls++
	s.lastBrand = brand
	if s.err != nil {
		return nil, s.err
	}
	return s.draft, nil
}

type stubToneWizard struct {
	step      *intelligence.ToneStep
	err       error
	lastBrand intelligence.BrandContext
}

func (s *stubToneWizard) Step(_ context.Context, brand intelligence.BrandContext, _ *intelligence.Session) (*intelligence.ToneStep, error) {
	s.lastBrand = brand
	if s.err != nil {
		return nil, s.err
	}
	return s.step, nil
}

type stubMessageWizard struct {
	step       *intelligence.MessageStep
	synth      *intelligence.MessageSynthesis
	refinement *intelligence.MessageRefinement
	err        error
}

func (s *stubMessageWizard) ContextualQuestion(context.Context, intelligence.MessageContext, *intelligence.Session, string) (*intelligence.MessageStep, error) {
	return s.step, s.err
}

func (s *stubMessageWizard) UpdateWithAnswers(context.Context, intelligence.MessageContext, []intelligence.Turn) (*intelligence.MessageSynthesis, error) {
	return s.synth, s.err
}

func (s *stubMessageWizard) GenerateWithPrompt(context.Context, intelligence.MessageContext, string, bool) (*intelligence.MessageRefinement, error) {
	return s.refinement, s.err
}

type recordingUseCaseObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}
