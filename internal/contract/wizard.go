// Package contract holds the JSON request and response shapes of the HTTP API
// and their conversion to and from the service layer.
package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
)

// Answer is one asked question and the user's reply.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Answers accepts either [{"question": .., "answer": ..}] or a plain list of
// answer strings.
type Answers []Answer

func (a *Answers) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("answers must be an array: %w", err)
	}
	out := make(Answers, 0, len(raw))
	for i, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, Answer{Answer: s})
			continue
		}
		var obj Answer
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("answers[%d]: %w", i, err)
		}
		out = append(out, obj)
	}
	*a = out
	return nil
}

// Turns converts the answers for session reconstruction.
func (a Answers) Turns() []intelligence.Turn {
	turns := make([]intelligence.Turn, len(a))
	for i, ans := range a {
		turns[i] = intelligence.Turn{Question: ans.Question, Answer: ans.Answer}
	}
	return turns
}

// BrandData is the brand context sent with a tone-of-voice request.
type BrandData struct {
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	Description  string `json:"description"`
	Website      string `json:"website"`
	TargetMarket string `json:"targetMarket"`
}

func (b BrandData) Context() intelligence.BrandContext {
	return intelligence.BrandContext{
		Name:         strings.TrimSpace(b.Name),
		Industry:     strings.TrimSpace(b.Industry),
		Description:  strings.TrimSpace(b.Description),
		Website:      strings.TrimSpace(b.Website),
		TargetMarket: strings.TrimSpace(b.TargetMarket),
	}
}

// ToneChatRequest is the body of POST /api/brand/tone-of-voice-chat.
//
// CurrentStep is the step returned by the previous call (0 to start).
// UserAnswer answers CurrentQuestion; PreviousAnswers holds every earlier turn.
type ToneChatRequest struct {
	BrandID         string    `json:"brandId"`
	BrandData       BrandData `json:"brandData"`
	CurrentStep     *int      `json:"currentStep"`
	CurrentQuestion string    `json:"currentQuestion"`
	UserAnswer      string    `json:"userAnswer"`
	PreviousAnswers Answers   `json:"previousAnswers"`
}

// Session rebuilds the wizard session the request describes.
func (r ToneChatRequest) Session() (*intelligence.Session, error) {
	if r.CurrentStep == nil {
		return nil, domain.Required("currentStep")
	}
	return intelligence.NewSession(*r.CurrentStep, withPending(r.PreviousAnswers, r.CurrentQuestion), r.UserAnswer)
}

type ToneChatResponse struct {
	NextQuestion string              `json:"nextQuestion,omitempty"`
	Suggestions  []string            `json:"suggestions,omitempty"`
	IsComplete   bool                `json:"isComplete"`
	Step         int                 `json:"step"`
	Archetypes   []string            `json:"archetypes,omitempty"`
	ToneOfVoice  *domain.ToneOfVoice `json:"toneOfVoice,omitempty"`
	Source       string              `json:"source"`
	Deduplicated bool                `json:"deduplicated,omitempty"`
}

func NewToneChatResponse(s *intelligence.ToneStep) ToneChatResponse {
	resp := ToneChatResponse{
		NextQuestion: s.Question,
		Suggestions:  s.Suggestions,
		IsComplete:   s.IsComplete,
		Step:         s.Step,
		ToneOfVoice:  s.ToneOfVoice,
		Source:       s.Source,
		Deduplicated: s.Deduplicated,
	}
	for _, a := range s.Archetypes {
		resp.Archetypes = append(resp.Archetypes, string(a))
	}
	return resp
}

// FormData is the onboarding form sent with every marketing request.
type FormData struct {
	BusinessName   string `json:"businessName"`
	Industry       string `json:"industry"`
	Description    string `json:"description"`
	ProductService string `json:"productService"`
	TargetAudience string `json:"targetAudience"`
	Goals          string `json:"goals"`
}

func (f FormData) Context(currentMessage string) intelligence.MessageContext {
	return intelligence.MessageContext{
		BusinessName:   strings.TrimSpace(f.BusinessName),
		Industry:       strings.TrimSpace(f.Industry),
		Description:    strings.TrimSpace(f.Description),
		ProductService: strings.TrimSpace(f.ProductService),
		TargetAudience: strings.TrimSpace(f.TargetAudience),
		Goals:          strings.TrimSpace(f.Goals),
		CurrentMessage: strings.TrimSpace(currentMessage),
	}
}

// ContextualQuestionRequest is the body of POST /api/marketing/contextual-question.
type ContextualQuestionRequest struct {
	FormData        FormData `json:"formData"`
	CurrentMessage  string   `json:"currentMessage"`
	QuestionIndex   *int     `json:"questionIndex"`
	CurrentQuestion string   `json:"currentQuestion"`
	// CurrentSuggestions echoes the options shown with CurrentQuestion.
	CurrentSuggestions []string `json:"currentSuggestions"`
	UserAnswers        Answers  `json:"userAnswers"`
	UserInput          string   `json:"userInput"`
}

// Session rebuilds the session without the user input, which the wizard
// records itself once it has ruled out a greeting.
func (r ContextualQuestionRequest) Session() (*intelligence.Session, error) {
	if r.QuestionIndex == nil {
		return nil, domain.Required("questionIndex")
	}
	session, err := intelligence.NewSession(*r.QuestionIndex, withPending(r.UserAnswers, r.CurrentQuestion), "")
	if err != nil {
		return nil, err
	}
	session.Suggestions = r.CurrentSuggestions
	return session, nil
}

type ContextualQuestionResponse struct {
	Question       string   `json:"question,omitempty"`
	Suggestions    []string `json:"suggestions,omitempty"`
	QuestionIndex  int      `json:"questionIndex"`
	Completed      bool     `json:"completed"`
	CoreMessage    string   `json:"coreMessage,omitempty"`
	Greeting       bool     `json:"greeting,omitempty"`
	WelcomeMessage string   `json:"welcomeMessage,omitempty"`
	Source         string   `json:"source"`
	Deduplicated   bool     `json:"deduplicated,omitempty"`
}

func NewContextualQuestionResponse(s *intelligence.MessageStep) ContextualQuestionResponse {
	return ContextualQuestionResponse{
		Question:       s.Question,
		Suggestions:    s.Suggestions,
		QuestionIndex:  s.QuestionIndex,
		Completed:      s.Completed,
		CoreMessage:    s.CoreMessage,
		Greeting:       s.Greeting,
		WelcomeMessage: s.Welcome,
		Source:         s.Source,
		Deduplicated:   s.Deduplicated,
	}
}

// UpdateWithAnswersRequest is the body of POST /api/marketing/update-with-answers.
type UpdateWithAnswersRequest struct {
	FormData       FormData `json:"formData"`
	CurrentMessage string   `json:"currentMessage"`
	UserAnswers    Answers  `json:"userAnswers"`
}

type CoreMessageResult struct {
	CoreMessage string `json:"coreMessage"`
	Source      string `json:"source"`
}

func NewCoreMessageResult(s *intelligence.MessageSynthesis) CoreMessageResult {
	return CoreMessageResult{CoreMessage: s.CoreMessage, Source: s.Source}
}

// GenerateWithPromptRequest is the body of POST /api/marketing/generate-with-prompt.
type GenerateWithPromptRequest struct {
	FormData       FormData `json:"formData"`
	CurrentMessage string   `json:"currentMessage"`
	UserPrompt     string   `json:"userPrompt"`
	IsAudienceEdit bool     `json:"isAudienceEdit"`
}

type GenerateWithPromptResponse struct {
	Question       string `json:"question"`
	UpdatedMessage string `json:"updatedMessage"`
	IsAudienceEdit bool   `json:"isAudienceEdit"`
	Source         string `json:"source"`
}

func NewGenerateWithPromptResponse(r *intelligence.MessageRefinement) GenerateWithPromptResponse {
	return GenerateWithPromptResponse{
		Question:       r.Question,
		UpdatedMessage: r.UpdatedMessage,
		IsAudienceEdit: r.IsAudienceEdit,
		Source:         r.Source,
	}
}

func withPending(answers Answers, currentQuestion string) []intelligence.Turn {
	turns := answers.Turns()
	if q := strings.TrimSpace(currentQuestion); q != "" {
		turns = append(turns, intelligence.Turn{Question: q})
	}
	return turns
}
