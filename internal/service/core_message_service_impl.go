package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/brandvoice/internal/db"
	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
	"github.com/alexanderramin/brandvoice/internal/repository"
)

type coreMessageService struct {
	wizard     intelligence.MessageService
	onboarding repository.OnboardingRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewCoreMessageService(
	wizard intelligence.MessageService,
	onboarding repository.OnboardingRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CoreMessageService {
	return &coreMessageService{
		wizard:     wizard,
		onboarding: onboarding,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *coreMessageService) ContextualQuestion(ctx context.Context, userID string, mc intelligence.MessageContext, session *intelligence.Session, userInput string) (step *intelligence.MessageStep, err error) {
	fields := map[string]any{}
	if session != nil {
		fields["question_index"] = session.Step
	}
	defer observe(ctx, s.observer, "contextual-question", time.Now(), &err, fields)

	step, err = s.wizard.ContextualQuestion(ctx, mc, session, userInput)
	if err != nil {
		return nil, err
	}
	fields["source"] = step.Source
	fields["completed"] = step.Completed
	if step.Completed && step.Source == intelligence.SourceLLM {
		if err = s.saveOnboarding(ctx, userID, mc, step.CoreMessage); err != nil {
			return nil, err
		}
	}
	return step, nil
}

func (s *coreMessageService) UpdateWithAnswers(ctx context.Context, userID string, mc intelligence.MessageContext, turns []intelligence.Turn) (synth *intelligence.MessageSynthesis, err error) {
	fields := map[string]any{"answers": len(turns)}
	defer observe(ctx, s.observer, "update-with-answers", time.Now(), &err, fields)

	synth, err = s.wizard.UpdateWithAnswers(ctx, mc, turns)
	if err != nil {
		return nil, err
	}
	fields["source"] = synth.Source
	if synth.Source == intelligence.SourceLLM {
		if err = s.saveOnboarding(ctx, userID, mc, synth.CoreMessage); err != nil {
			return nil, err
		}
	}
	return synth, nil
}

// GenerateWithPrompt stores the updated core message. Audience edits are
// returned to the caller only.
func (s *coreMessageService) GenerateWithPrompt(ctx context.Context, userID string, mc intelligence.MessageContext, userPrompt string, isAudienceEdit bool) (ref *intelligence.MessageRefinement, err error) {
	fields := map[string]any{"audience_edit": isAudienceEdit}
	defer observe(ctx, s.observer, "generate-with-prompt", time.Now(), &err, fields)

	ref, err = s.wizard.GenerateWithPrompt(ctx, mc, userPrompt, isAudienceEdit)
	if err != nil {
		return nil, err
	}
	fields["source"] = ref.Source
	if !isAudienceEdit && ref.Source == intelligence.SourceLLM && ref.UpdatedMessage != "" {
		if err = s.onboarding.SetCoreMessage(ctx, userID, ref.UpdatedMessage); err != nil {
			return nil, err
		}
	}
	return ref, nil
}

func (s *coreMessageService) Get(ctx context.Context, userID string) (*domain.Onboarding, error) {
	return s.onboarding.Get(ctx, userID)
}

// saveOnboarding overwrites the core message and fills any onboarding field
// the form supplied.
func (s *coreMessageService) saveOnboarding(ctx context.Context, userID string, mc intelligence.MessageContext, message string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteOnboardingRepo(tx)
		o, err := repo.Get(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			o = &domain.Onboarding{UserID: userID}
		} else if err != nil {
			return err
		}
		o.BusinessName = domain.CoalesceStr(mc.BusinessName, o.BusinessName)
		o.Industry = domain.CoalesceStr(mc.Industry, o.Industry)
		o.Description = domain.CoalesceStr(mc.Description, o.Description)
		o.ProductService = domain.CoalesceStr(mc.ProductService, o.ProductService)
		o.TargetAudience = domain.CoalesceStr(mc.TargetAudience, o.TargetAudience)
		o.Goals = domain.CoalesceStr(mc.Goals, o.Goals)
		o.CoreMessage = message
		o.UpdatedAt = time.Now().UTC()
		return repo.Upsert(ctx, o)
	})
}
