package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/llm"
	"github.com/alexanderramin/brandvoice/internal/prompt"
)

// ToneStep is the result of one tone-of-voice wizard call. Question fields
// are set while IsComplete is false; Archetypes and ToneOfVoice once it is true.
type ToneStep struct {
	Step         int
	Question     string
	Suggestions  []string
	IsComplete   bool
	Archetypes   []domain.Archetype
	ToneOfVoice  *domain.ToneOfVoice
	Source       string
	Deduplicated bool
}

// ToneService runs the tone-of-voice discovery wizard.
type ToneService interface {
	Step(ctx context.Context, brand BrandContext, session *Session) (*ToneStep, error)
}

type toneService struct {
	gen   generator
	dedup Deduplicator
}

// NewToneService creates a ToneService backed by an LLM client.
func NewToneService(client llm.LLMClient, catalog *prompt.Catalog, observer FallbackObserver, opts ...Option) ToneService {
	return &toneService{gen: newGenerator(client, catalog, observer, opts), dedup: ToneDeduplicator}
}

const maxArchetypes = 3

type toneSynthesisPayload struct {
	Archetypes  textList `json:"archetypes"`
	ToneOfVoice struct {
		KeyTraits          text `json:"keyTraits"`
		CommunicationStyle text `json:"communicationStyle"`
		Examples           text `json:"examples"`
		Guidelines         text `json:"guidelines"`
	} `json:"toneOfVoice"`
}

func (p toneSynthesisPayload) tone() domain.ToneOfVoice {
	return domain.ToneOfVoice{
		KeyTraits:          string(p.ToneOfVoice.KeyTraits),
		CommunicationStyle: string(p.ToneOfVoice.CommunicationStyle),
		Examples:           string(p.ToneOfVoice.Examples),
		Guidelines:         string(p.ToneOfVoice.Guidelines),
	}
}

func validateToneSynthesis(p toneSynthesisPayload) error {
	t := p.tone()
	if t.KeyTraits == "" && t.CommunicationStyle == "" && t.Examples == "" && t.Guidelines == "" {
		return errMissing("toneOfVoice")
	}
	return nil
}

func (s *toneService) Step(ctx context.Context, brand BrandContext, session *Session) (*ToneStep, error) {
	if err := brand.validate("brandData"); err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.Required("currentStep")
	}

	if session.State() == StateSynthesizing {
		return s.synthesize(ctx, brand, session), nil
	}
	if err := s.gen.checkSession(FlowTone, session); err != nil {
		return nil, err
	}
	return s.ask(ctx, brand, session), nil
}

func (s *toneService) ask(ctx context.Context, brand BrandContext, session *Session) *ToneStep {
	prior := session.PriorQuestions()
	canned := s.dedup.Fallback(prior)

	name := prompt.ToneNextQuestion
	v := with(brand.values(),
		"step", itoa(session.NextStep()),
		"maxSteps", itoa(MaxSteps),
		"transcript", session.Transcript(),
		"priorQuestions", bulletList(prior),
	)
	if len(session.Answered()) == 0 {
		name = prompt.ToneFirstQuestion
		v = with(brand.values(), "maxSteps", itoa(MaxSteps))
	}

	fallback := questionPayload{Question: text(canned.Question), Suggestions: canned.Suggestions}
	d := generate(ctx, s.gen, FlowTone, StageQuestion, llm.TaskToneQuestion, name, v, fallback, validateQuestion)

	result := &ToneStep{Step: session.NextStep(), Source: sourceOf(d)}
	q, replaced := s.dedup.Next(string(d.Value.Question), prior)
	if replaced {
		s.gen.fallback(FlowTone, StageDedup, fmt.Errorf("model repeated question %q", d.Value.Question))
		result.Question = q.Question
		result.Suggestions = normalizeSuggestions(q.Suggestions, nil)
		result.Deduplicated = true
		result.Source = SourceFallback
		return result
	}
	result.Question = q.Question
	result.Suggestions = normalizeSuggestions(d.Value.Suggestions, canned.Suggestions)
	return result
}

func (s *toneService) synthesize(ctx context.Context, brand BrandContext, session *Session) *ToneStep {
	transcript := session.Transcript()
	if transcript == "" {
		transcript = noAnswersTranscript
	}
	known := make([]string, len(domain.Archetypes))
	for i, a := range domain.Archetypes {
		known[i] = string(a)
	}
	v := with(brand.values(),
		"transcript", transcript,
		"archetypes", strings.Join(known, ", "),
	)

	d := generate(ctx, s.gen, FlowTone, StageSynthesis, llm.TaskToneSynthesis,
		prompt.ToneSynthesis, v, toneSynthesisPayload{}, validateToneSynthesis)

	fallbackTone := FallbackToneOfVoice(brand.Name)
	tone := fallbackTone
	archetypes := []domain.Archetype{domain.DefaultArchetype}
	if !d.Fallback {
		tone = fillTone(d.Value.tone(), fallbackTone)
		archetypes = NormalizeArchetypes(d.Value.Archetypes)
		if len(archetypes) == 0 {
			s.gen.fallback(FlowTone, StageArchetypes, errors.New("no known archetype in model output"))
			archetypes = []domain.Archetype{domain.DefaultArchetype}
		}
	}

	session.Complete()
	return &ToneStep{
		Step:        session.Step,
		IsComplete:  true,
		Archetypes:  archetypes,
		ToneOfVoice: &tone,
		Source:      sourceOf(d),
	}
}

// NormalizeArchetypes maps names onto the known archetypes, dropping unknown
// names and duplicates, and keeps at most three.
func NormalizeArchetypes(names []string) []domain.Archetype {
	var out []domain.Archetype
	for _, n := range names {
		a, ok := domain.ParseArchetype(n)
		if !ok {
			continue
		}
		dup := false
		for _, existing := range out {
			if existing == a {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		out = append(out, a)
		if len(out) == maxArchetypes {
			break
		}
	}
	return out
}

// FallbackToneOfVoice is the canned tone served when synthesis fails. It
// describes the default archetype.
func FallbackToneOfVoice(brandName string) domain.ToneOfVoice {
	name := domain.CoalesceStr(brandName, "Your brand")
	return domain.ToneOfVoice{
		KeyTraits:          "Knowledgeable, clear, trustworthy, thoughtful",
		CommunicationStyle: fmt.Sprintf("%s explains things plainly and backs claims with evidence. It informs rather than pushes.", name),
		Examples:           fmt.Sprintf("Here is what you need to know before you choose.\n%s: clear answers, no jargon.", name),
		Guidelines:         "Lead with insight. Use simple words and short sentences. Avoid hype and exaggerated claims.",
	}
}

func fillTone(t, fallback domain.ToneOfVoice) domain.ToneOfVoice {
	t.KeyTraits = domain.CoalesceStr(t.KeyTraits, fallback.KeyTraits)
	t.CommunicationStyle = domain.CoalesceStr(t.CommunicationStyle, fallback.CommunicationStyle)
	t.Examples = domain.CoalesceStr(t.Examples, fallback.Examples)
	t.Guidelines = domain.CoalesceStr(t.Guidelines, fallback.Guidelines)
	return t
}
