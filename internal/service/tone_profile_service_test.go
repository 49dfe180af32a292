package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
	"github.com/alexanderramin/brandvoice/internal/repository"
	"github.com/alexanderramin/brandvoice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedToneStep() *intelligence.ToneStep {
	return &intelligence.ToneStep{
		Step:        5,
		IsComplete:  true,
		Archetypes:  []domain.Archetype{domain.ArchetypeSage, domain.ArchetypeHero},
		ToneOfVoice: &domain.ToneOfVoice{KeyTraits: "Clear", CommunicationStyle: "Direct", Examples: "Hi.", Guidelines: "Be brief."},
		Source:      intelligence.SourceLLM,
	}
}

func newToneFixture(t *testing.T, wizard intelligence.ToneService) (ToneProfileService, *domain.Brand) {
	t.Helper()
	database := testutil.NewTestDB(t)
	brands := repository.NewSQLiteBrandRepo(database)
	brand := testutil.NewTestBrand("u1", "Acme", testutil.WithIndustry("tech"), testutil.WithWebsite("acme.test"))
	require.NoError(t, brands.Create(context.Background(), brand))
	svc := NewToneProfileService(wizard, brands, repository.NewSQLiteToneProfileRepo(database), testutil.NewTestUoW(database))
	return svc, brand
}

func TestToneProfileService_CompletionSavesProfile(t *testing.T) {
	wizard := &stubToneWizard{step: completedToneStep()}
	svc, brand := newToneFixture(t, wizard)
	ctx := context.Background()
	session, _ := intelligence.NewSession(5, nil, "")

	step, err := svc.Chat(ctx, "u1", ToneChat{
		BrandID: brand.ID,
		Brand:   intelligence.BrandContext{Description: "Fresh description"},
		Session: session,
	})
	require.NoError(t, err)
	assert.True(t, step.IsComplete)

	assert.Equal(t, "Acme", wizard.lastBrand.Name)
	assert.Equal(t, "Fresh description", wizard.lastBrand.Description)
	assert.Equal(t, "acme.test", wizard.lastBrand.Website)

	profile, err := svc.Get(ctx, "u1", brand.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Archetype{domain.ArchetypeSage, domain.ArchetypeHero}, profile.Archetypes)
	assert.Equal(t, "Be brief.", profile.Tone.Guidelines)
	assert.Equal(t, intelligence.SourceLLM, profile.Source)
}

func TestToneProfileService_QuestionStepDoesNotSave(t *testing.T) {
	wizard := &stubToneWizard{step: &intelligence.ToneStep{Step: 1, Question: "How formal?", Source: intelligence.SourceLLM}}
	svc, brand := newToneFixture(t, wizard)
	ctx := context.Background()
	session, _ := intelligence.NewSession(0, nil, "")

	_, err := svc.Chat(ctx, "u1", ToneChat{BrandID: brand.ID, Session: session})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "u1", brand.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestToneProfileService_WithoutBrandIDUsesRequestContext(t *testing.T) {
	wizard := &stubToneWizard{step: completedToneStep()}
	svc, _ := newToneFixture(t, wizard)
	session, _ := intelligence.NewSession(5, nil, "")

	_, err := svc.Chat(context.Background(), "u1", ToneChat{
		Brand:   intelligence.BrandContext{Name: "Walk-in"},
		Session: session,
	})
	require.NoError(t, err)
	assert.Equal(t, intelligence.BrandContext{Name: "Walk-in"}, wizard.lastBrand)
}

func TestToneProfileService_ForeignBrand(t *testing.T) {
	wizard := &stubToneWizard{step: completedToneStep()}
	svc, brand := newToneFixture(t, wizard)
	session, _ := intelligence.NewSession(5, nil, "")

	_, err := svc.Chat(context.Background(), "u2", ToneChat{BrandID: brand.ID, Session: session})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Get(context.Background(), "u2", brand.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestToneProfileService_WizardValidationPassesThrough(t *testing.T) {
	wizard := &stubToneWizard{err: domain.Required("brandData.name")}
	svc, _ := newToneFixture(t, wizard)

	_, err := svc.Chat(context.Background(), "u1", ToneChat{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
