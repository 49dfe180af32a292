package service

import (
	"context"
	"time"

	"github.com/alexanderramin/brandvoice/internal/db"
	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
	"github.com/alexanderramin/brandvoice/internal/repository"
)

type toneProfileService struct {
	wizard   intelligence.ToneService
	brands   repository.BrandRepo
	profiles repository.ToneProfileRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewToneProfileService(
	wizard intelligence.ToneService,
	brands repository.BrandRepo,
	profiles repository.ToneProfileRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ToneProfileService {
	return &toneProfileService{
		wizard:   wizard,
		brands:   brands,
		profiles: profiles,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *toneProfileService) Chat(ctx context.Context, ownerID string, req ToneChat) (step *intelligence.ToneStep, err error) {
	fields := map[string]any{"brand_id": req.BrandID}
	if req.Session != nil {
		fields["step"] = req.Session.Step
	}
	defer observe(ctx, s.observer, "tone-of-voice-chat", time.Now(), &err, fields)

	brand := req.Brand
	if req.BrandID != "" {
		stored, err := ownedBrand(ctx, s.brands, ownerID, req.BrandID)
		if err != nil {
			return nil, err
		}
		brand = mergeBrandContext(brand, intelligence.BrandContextFrom(stored))
	}

	step, err = s.wizard.Step(ctx, brand, req.Session)
	if err != nil {
		return nil, err
	}
	fields["source"] = step.Source
	fields["complete"] = step.IsComplete
	if !step.IsComplete || req.BrandID == "" {
		return step, nil
	}

	profile := &domain.ToneProfile{
		BrandID:    req.BrandID,
		Archetypes: step.Archetypes,
		Tone:       *step.ToneOfVoice,
		Source:     step.Source,
		UpdatedAt:  time.Now().UTC(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := ownedBrand(ctx, repository.NewSQLiteBrandRepo(tx), ownerID, req.BrandID); err != nil {
			return err
		}
		return repository.NewSQLiteToneProfileRepo(tx).Upsert(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return step, nil
}

func (s *toneProfileService) Get(ctx context.Context, ownerID, brandID string) (*domain.ToneProfile, error) {
	if _, err := ownedBrand(ctx, s.brands, ownerID, brandID); err != nil {
		return nil, err
	}
	return s.profiles.Get(ctx, brandID)
}

// mergeBrandContext prefers request fields and fills blanks from the stored brand.
func mergeBrandContext(req, stored intelligence.BrandContext) intelligence.BrandContext {
	return intelligence.BrandContext{
		Name:         domain.CoalesceStr(req.Name, stored.Name),
		Industry:     domain.CoalesceStr(req.Industry, stored.Industry),
		Description:  domain.CoalesceStr(req.Description, stored.Description),
		Website:      domain.CoalesceStr(req.Website, stored.Website),
		TargetMarket: domain.CoalesceStr(req.TargetMarket, stored.TargetMarket),
	}
}
