package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/llm"
	"github.com/alexanderramin/brandvoice/internal/prompt"
)

// WelcomeMessage prefixes the repeated question when the user only greets.
const WelcomeMessage = "Hi! Let's keep shaping your core message."

// MessageStep is the result of one core-message wizard call.
type MessageStep struct {
	QuestionIndex int
	Question      string
	Suggestions   []string
	Completed     bool
	CoreMessage   string
	Greeting      bool
	Welcome       string
	Source        string
	Deduplicated  bool
}

// MessageSynthesis is a finalized core message.
type MessageSynthesis struct {
	CoreMessage string
	Source      string
}

// MessageRefinement is a chat-style refinement: a follow-up question plus the
// silently updated message (or audience description).
type MessageRefinement struct {
	Question       string
	UpdatedMessage string
	IsAudienceEdit bool
	Source         string
}

// MessageService runs the core-message refinement flows.
type MessageService interface {
	// ContextualQuestion advances the wizard with userInput as the answer to
	// the pending question. A bare greeting repeats the current question
	// without advancing.
	ContextualQuestion(ctx context.Context, mc MessageContext, session *Session, userInput string) (*MessageStep, error)

	// UpdateWithAnswers synthesizes the finalized core message from answers.
	UpdateWithAnswers(ctx context.Context, mc MessageContext, turns []Turn) (*MessageSynthesis, error)

	// GenerateWithPrompt applies a free-form request in one shot.
	GenerateWithPrompt(ctx context.Context, mc MessageContext, userPrompt string, isAudienceEdit bool) (*MessageRefinement, error)
}

type messageService struct {
	gen   generator
	dedup Deduplicator
}

// NewMessageService creates a MessageService backed by an LLM client.
func NewMessageService(client llm.LLMClient, catalog *prompt.Catalog, observer FallbackObserver, opts ...Option) MessageService {
	return &messageService{gen: newGenerator(client, catalog, observer, opts), dedup: MessageDeduplicator}
}

type coreMessagePayload struct {
	CoreMessage text `json:"coreMessage"`
}

func validateCoreMessage(p coreMessagePayload) error {
	if p.CoreMessage == "" {
		return errMissing("coreMessage")
	}
	return nil
}

type refinementPayload struct {
	Question       text `json:"question"`
	UpdatedMessage text `json:"updatedMessage"`
}

func validateRefinement(p refinementPayload) error {
	if p.Question == "" && p.UpdatedMessage == "" {
		return errMissing("question and updatedMessage")
	}
	return nil
}

func (s *messageService) ContextualQuestion(ctx context.Context, mc MessageContext, session *Session, userInput string) (*MessageStep, error) {
	if err := mc.validate(); err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.Required("questionIndex")
	}

	greeting := IsGreeting(userInput)
	if greeting && session.State() != StateSynthesizing {
		return s.greet(session), nil
	}
	if !greeting {
		session.Record(userInput)
	}

	if session.State() == StateSynthesizing {
		synth := s.synthesize(ctx, mc, session.Answered())
		session.Complete()
		return &MessageStep{
			QuestionIndex: session.Step,
			Completed:     true,
			CoreMessage:   synth.CoreMessage,
			Source:        synth.Source,
		}, nil
	}
	if err := s.gen.checkSession(FlowMessage, session); err != nil {
		return nil, err
	}
	return s.ask(ctx, mc, session), nil
}

func (s *messageService) greet(session *Session) *MessageStep {
	q := session.PendingQuestion()
	suggestions := session.Suggestions
	switch {
	case q == "":
		canned := s.dedup.Fallback(session.PriorQuestions())
		q, suggestions = canned.Question, canned.Suggestions
	case len(suggestions) == 0:
		if canned, ok := s.dedup.Lookup(q); ok {
			suggestions = canned.Suggestions
		}
	}
	return &MessageStep{
		QuestionIndex: session.Step,
		Question:      q,
		Suggestions:   normalizeSuggestions(suggestions, nil),
		Greeting:      true,
		Welcome:       WelcomeMessage,
		Source:        SourceCanned,
	}
}

func (s *messageService) ask(ctx context.Context, mc MessageContext, session *Session) *MessageStep {
	prior := session.PriorQuestions()
	canned := s.dedup.Fallback(prior)

	v := with(mc.values(),
		"step", itoa(session.NextStep()),
		"maxSteps", itoa(MaxSteps),
		"transcript", session.Transcript(),
		"priorQuestions", bulletList(prior),
	)
	fallback := questionPayload{Question: text(canned.Question), Suggestions: canned.Suggestions}
	d := generate(ctx, s.gen, FlowMessage, StageQuestion, llm.TaskMessageQuestion,
		prompt.MessageContextualQuestion, v, fallback, validateQuestion)

	result := &MessageStep{QuestionIndex: session.NextStep(), Source: sourceOf(d)}
	q, replaced := s.dedup.Next(string(d.Value.Question), prior)
	if replaced {
		s.gen.fallback(FlowMessage, StageDedup, fmt.Errorf("model repeated question %q", d.Value.Question))
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

func (s *messageService) UpdateWithAnswers(ctx context.Context, mc MessageContext, turns []Turn) (*MessageSynthesis, error) {
	if err := mc.validate(); err != nil {
		return nil, err
	}
	session, err := NewSession(MaxSteps, turns, "")
	if err != nil {
		return nil, err
	}
	answered := session.Answered()
	if len(answered) == 0 {
		return nil, domain.Required("userAnswers")
	}
	return s.synthesize(ctx, mc, answered), nil
}

func (s *messageService) synthesize(ctx context.Context, mc MessageContext, answered []Turn) *MessageSynthesis {
	transcript := formatTranscript(answered)
	if transcript == "" {
		transcript = noAnswersTranscript
	}
	fallback := coreMessagePayload{CoreMessage: text(FallbackCoreMessage(mc))}
	d := generate(ctx, s.gen, FlowMessage, StageSynthesis, llm.TaskMessageRefine,
		prompt.MessageUpdateWithAnswers, with(mc.values(), "transcript", transcript), fallback, validateCoreMessage)
	return &MessageSynthesis{CoreMessage: string(d.Value.CoreMessage), Source: sourceOf(d)}
}

func (s *messageService) GenerateWithPrompt(ctx context.Context, mc MessageContext, userPrompt string, isAudienceEdit bool) (*MessageRefinement, error) {
	if err := mc.validate(); err != nil {
		return nil, err
	}
	userPrompt = strings.TrimSpace(userPrompt)
	if userPrompt == "" {
		return nil, domain.Required("userPrompt")
	}

	name := prompt.MessageGenerateWithPrompt
	if isAudienceEdit {
		name = prompt.AudienceEditWithPrompt
	}
	canned := s.dedup.Fallback(nil)
	fallback := refinementPayload{Question: text(canned.Question), UpdatedMessage: text(mc.CurrentMessage)}
	d := generate(ctx, s.gen, FlowMessage, StageRefine, llm.TaskMessageRefine,
		name, with(mc.values(), "userPrompt", userPrompt), fallback, validateRefinement)

	return &MessageRefinement{
		Question:       domain.CoalesceStr(string(d.Value.Question), canned.Question),
		UpdatedMessage: domain.CoalesceStr(string(d.Value.UpdatedMessage), mc.CurrentMessage),
		IsAudienceEdit: isAudienceEdit,
		Source:         sourceOf(d),
	}, nil
}

// FallbackCoreMessage keeps the current message, or builds a plain one from
// the form when there is none yet.
func FallbackCoreMessage(mc MessageContext) string {
	if strings.TrimSpace(mc.CurrentMessage) != "" {
		return mc.CurrentMessage
	}
	offer := strings.TrimRight(domain.CoalesceStr(mc.ProductService, mc.Description, "what we do best"), ". ")
	if mc.TargetAudience != "" {
		return fmt.Sprintf("%s helps %s with %s.", mc.BusinessName, mc.TargetAudience, offer)
	}
	return fmt.Sprintf("%s: %s.", mc.BusinessName, offer)
}
