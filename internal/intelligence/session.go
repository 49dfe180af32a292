package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/brandvoice/internal/domain"
)

// MaxSteps is the hard question budget of a refinement session. A session at
// or past this step synthesizes instead of asking.
const MaxSteps = 5

// State is the position of a session in the refinement wizard.
type State string

const (
	StateAwaitingFirstQuestion State = "AWAITING_FIRST_QUESTION"
	StateAwaitingAnswer        State = "AWAITING_ANSWER"
	StateSynthesizing          State = "SYNTHESIZING"
	StateDone                  State = "DONE"
)

// Turn is one question and the user's answer to it. Answer is empty while
// the question is still pending.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session is rebuilt from client-supplied history on every request; the
// server keeps no conversation state between calls.
type Session struct {
	Step  int
	Turns []Turn
	// Suggestions are the options last offered for the pending question,
	// echoed back by the client so a greeting can repeat them.
	Suggestions []string
	done        bool
}

// NewSession rebuilds a session from the step the client asserts, the turns
// it resends, and the answer it is submitting now (may be empty).
func NewSession(step int, turns []Turn, pendingAnswer string) (*Session, error) {
	if step < 0 {
		return nil, domain.Invalid("currentStep", "must not be negative")
	}
	s := &Session{Step: step}
	for _, t := range turns {
		q := strings.TrimSpace(t.Question)
		a := strings.TrimSpace(t.Answer)
		if q == "" && a == "" {
			continue
		}
		s.Turns = append(s.Turns, Turn{Question: q, Answer: a})
	}
	s.Record(pendingAnswer)
	return s, nil
}

// Record attaches answer to the pending question, or appends it as a
// free-form turn when no question is pending. Blank answers are ignored.
func (s *Session) Record(answer string) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return
	}
	if n := len(s.Turns); n > 0 && s.Turns[n-1].Answer == "" {
		s.Turns[n-1].Answer = answer
		return
	}
	s.Turns = append(s.Turns, Turn{Answer: answer})
}

// State derives the wizard state from the step and transcript.
func (s *Session) State() State {
	switch {
	case s.done:
		return StateDone
	case s.Step >= MaxSteps:
		return StateSynthesizing
	case s.Step == 0 && len(s.Answered()) == 0:
		return StateAwaitingFirstQuestion
	default:
		return StateAwaitingAnswer
	}
}

// Complete moves the session to DONE after synthesis.
func (s *Session) Complete() { s.done = true }

// NextStep is the step reported back after a non-terminal call.
func (s *Session) NextStep() int { return s.Step + 1 }

// Answered returns the turns that carry an answer, in order.
func (s *Session) Answered() []Turn {
	var out []Turn
	for _, t := range s.Turns {
		if t.Answer != "" {
			out = append(out, t)
		}
	}
	return out
}

// PendingQuestion is the trailing unanswered question, if any.
func (s *Session) PendingQuestion() string {
	if n := len(s.Turns); n > 0 && s.Turns[n-1].Answer == "" {
		return s.Turns[n-1].Question
	}
	return ""
}

// PriorQuestions lists every question already asked, in order.
func (s *Session) PriorQuestions() []string {
	var out []string
	for _, t := range s.Turns {
		if t.Question != "" {
			out = append(out, t.Question)
		}
	}
	return out
}

// Mismatch reports whether a mid-conversation step disagrees with the number
// of answers supplied. Terminal steps are never a mismatch: they always
// synthesize.
func (s *Session) Mismatch() bool {
	return s.Step < MaxSteps && s.Progress() != s.Step
}

// Progress counts the answers that advance the wizard. Free-form input given
// before the first question is opening context, unless the history carries no
// questions at all past step 0 (plain answer lists).
func (s *Session) Progress() int {
	answered := s.Answered()
	lead := 0
	for lead < len(answered) && answered[lead].Question == "" {
		lead++
	}
	if lead == len(answered) && s.Step > 0 {
		return len(answered)
	}
	return len(answered) - lead
}

// Transcript renders the answered turns for a prompt.
func (s *Session) Transcript() string {
	return formatTranscript(s.Answered())
}

func formatTranscript(turns []Turn) string {
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		if t.Question != "" {
			fmt.Fprintf(&b, "Q%d: %s\n", i+1, t.Question)
		}
		fmt.Fprintf(&b, "A%d: %s", i+1, t.Answer)
	}
	return b.String()
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "- " + strings.Join(items, "\n- ")
}
