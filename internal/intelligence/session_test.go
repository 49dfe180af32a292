package intelligence

import (
	"testing"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_RejectsNegativeStep(t *testing.T) {
	_, err := NewSession(-1, nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewSession_PendingAnswerFillsTrailingQuestion(t *testing.T) {
	s, err := NewSession(1, []Turn{{Question: "Who buys from you?"}}, " Small teams ")
	require.NoError(t, err)

	require.Len(t, s.Turns, 1)
	assert.Equal(t, Turn{Question: "Who buys from you?", Answer: "Small teams"}, s.Turns[0])
	assert.False(t, s.Mismatch())
}

func TestNewSession_PendingAnswerAppendsWhenNothingPending(t *testing.T) {
	s, err := NewSession(2, []Turn{{Question: "Q1", Answer: "A1"}}, "A2")
	require.NoError(t, err)

	require.Len(t, s.Turns, 2)
	assert.Equal(t, Turn{Answer: "A2"}, s.Turns[1])
	assert.Len(t, s.Answered(), 2)
}

func TestNewSession_DropsBlankTurns(t *testing.T) {
	s, err := NewSession(0, []Turn{{}, {Question: "  ", Answer: ""}}, "")
	require.NoError(t, err)
	assert.Empty(t, s.Turns)
}

func TestSession_States(t *testing.T) {
	first, _ := NewSession(0, nil, "")
	assert.Equal(t, StateAwaitingFirstQuestion, first.State())

	mid, _ := NewSession(2, []Turn{{"Q1", "A1"}, {"Q2", "A2"}}, "")
	assert.Equal(t, StateAwaitingAnswer, mid.State())

	terminal, _ := NewSession(5, nil, "")
	assert.Equal(t, StateSynthesizing, terminal.State())

	terminal.Complete()
	assert.Equal(t, StateDone, terminal.State())
}

func TestSession_MismatchOnlyBeforeCutoff(t *testing.T) {
	s, _ := NewSession(3, []Turn{{"Q1", "A1"}}, "")
	assert.True(t, s.Mismatch())

	s, _ = NewSession(7, []Turn{{"Q1", "A1"}}, "")
	assert.False(t, s.Mismatch())
}

func TestSession_OpeningContextDoesNotCountAsProgress(t *testing.T) {
	opening, _ := NewSession(0, []Turn{{Answer: "We sell bread"}}, "")
	assert.Equal(t, 0, opening.Progress())
	assert.False(t, opening.Mismatch())

	afterFirst, _ := NewSession(1, []Turn{{Answer: "We sell bread"}, {"Who buys?", "Families"}}, "")
	assert.Equal(t, 1, afterFirst.Progress())
	assert.False(t, afterFirst.Mismatch())

	plain, _ := NewSession(2, []Turn{{Answer: "A1"}, {Answer: "A2"}}, "")
	assert.Equal(t, 2, plain.Progress())
	assert.False(t, plain.Mismatch())

	trailing, _ := NewSession(2, []Turn{{"Q1", "A1"}, {Answer: "A2"}}, "")
	assert.Equal(t, 2, trailing.Progress())
}

func TestSession_PriorQuestionsAndPending(t *testing.T) {
	s, _ := NewSession(1, []Turn{{"Q1", "A1"}, {"Q2", ""}}, "")

	assert.Equal(t, []string{"Q1", "Q2"}, s.PriorQuestions())
	assert.Equal(t, "Q2", s.PendingQuestion())
	assert.Equal(t, 2, s.NextStep())
}

func TestSession_Transcript(t *testing.T) {
	s, _ := NewSession(2, []Turn{{"Who buys?", "Teams"}, {"", "Also agencies"}}, "")
	assert.Equal(t, "Q1: Who buys?\nA1: Teams\nA2: Also agencies", s.Transcript())
}
