package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicator_AcceptsNewQuestion(t *testing.T) {
	q, replaced := ToneDeduplicator.Next("What tone fits you?", []string{"Something else?"})
	assert.False(t, replaced)
	assert.Equal(t, "What tone fits you?", q.Question)
}

func TestDeduplicator_ExactMatchDrawsFromPool(t *testing.T) {
	prior := []string{"What tone...?"}

	q, replaced := ToneDeduplicator.Next("What tone...?", prior)

	assert.True(t, replaced)
	assert.NotEqual(t, "What tone...?", q.Question)
	assert.Equal(t, ToneDeduplicator.Pool[0].Question, q.Question)
}

func TestDeduplicator_MatchIsCaseSensitive(t *testing.T) {
	_, replaced := ToneDeduplicator.Next("what tone...?", []string{"What tone...?"})
	assert.False(t, replaced)
}

func TestDeduplicator_BlankCandidateIsReplaced(t *testing.T) {
	q, replaced := MessageDeduplicator.Next("   ", nil)
	assert.True(t, replaced)
	assert.Equal(t, MessageDeduplicator.Pool[0].Question, q.Question)
}

func TestDeduplicator_SkipsUsedPoolEntries(t *testing.T) {
	prior := []string{"Dup?", ToneDeduplicator.Pool[0].Question, ToneDeduplicator.Pool[1].Question}

	q, replaced := ToneDeduplicator.Next("Dup?", prior)

	assert.True(t, replaced)
	assert.Equal(t, ToneDeduplicator.Pool[2].Question, q.Question)
}

func TestDeduplicator_ExhaustedPoolUsesDefault(t *testing.T) {
	var prior []string
	for _, c := range MessageDeduplicator.Pool {
		prior = append(prior, c.Question)
	}

	q, replaced := MessageDeduplicator.Next(prior[3], prior)

	assert.True(t, replaced)
	assert.Equal(t, MessageDeduplicator.Default.Question, q.Question)
}

func TestDeduplicator_PoolsHaveTenDistinctQuestions(t *testing.T) {
	for name, d := range map[string]Deduplicator{"tone": ToneDeduplicator, "message": MessageDeduplicator} {
		seen := map[string]bool{}
		for _, c := range d.Pool {
			seen[c.Question] = true
			assert.GreaterOrEqual(t, len(c.Suggestions), minSuggestions, c.Question)
			assert.LessOrEqual(t, len(c.Suggestions), maxSuggestions, c.Question)
		}
		assert.Len(t, seen, 10, name)
		assert.False(t, seen[d.Default.Question], name)
	}
}

func TestNormalizeSuggestions(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d"}, normalizeSuggestions([]string{"a", "b", "c", "d", "e"}, nil))
	assert.Equal(t, []string{"a", "x", "y"}, normalizeSuggestions([]string{" a ", "", "a"}, []string{"a", "x", "y", "z"}))
	assert.Len(t, normalizeSuggestions(nil, nil), minSuggestions)
}
