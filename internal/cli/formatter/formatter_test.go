package formatter

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
	"github.com/alexanderramin/brandvoice/internal/prompt"
	"github.com/alexanderramin/brandvoice/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderBox(t *testing.T) {
	out := stripANSI(RenderBox("Title", "body"))
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╰")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "body")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	out := stripANSI(RenderBox("", "only content"))
	assert.Contains(t, out, "only content")
	assert.NotContains(t, out, "TITLE")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"cut", "hello world", 6, "hello…"},
		{"one", "hello", 1, "…"},
		{"collapses whitespace", "a\n  b", 10, "a b"},
		{"unicode", "héllo wörld", 4, "hél…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.n))
		})
	}
}

func TestBullets_SkipsBlankLines(t *testing.T) {
	out := stripANSI(Bullets("first\n\n  second  \n"))
	assert.Equal(t, "  • first\n  • second\n", out)
}

func TestSourceBadge(t *testing.T) {
	assert.Equal(t, "● LLM", stripANSI(SourceBadge(intelligence.SourceLLM)))
	assert.Equal(t, "● FALLBACK", stripANSI(SourceBadge(intelligence.SourceFallback)))
	assert.Equal(t, "● UNKNOWN", stripANSI(SourceBadge("")))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"long value", "x"}, {"s", "y"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	col := strings.Index(lines[0], "B")
	var found int
	for _, l := range lines {
		if i := strings.IndexAny(l, "xy"); i >= 0 {
			assert.Equal(t, col, i, "line %q", l)
			found++
		}
	}
	assert.Equal(t, 2, found)
}

func TestFormatQuestion_NumbersSuggestions(t *testing.T) {
	out := stripANSI(FormatQuestion(2, "Who is your audience?", []string{"Parents", "Students"}, intelligence.SourceLLM))
	assert.Contains(t, out, "[2/5]")
	assert.Contains(t, out, "Who is your audience?")
	assert.Contains(t, out, "1. Parents")
	assert.Contains(t, out, "2. Students")
	assert.NotContains(t, out, "LLM")
}

func TestFormatQuestion_FlagsFallback(t *testing.T) {
	out := stripANSI(FormatQuestion(1, "What do you sell?", nil, intelligence.SourceFallback))
	assert.Contains(t, out, "FALLBACK")
}

func TestFormatToneResult(t *testing.T) {
	step := &intelligence.ToneStep{
		IsComplete: true,
		Archetypes: []domain.Archetype{domain.ArchetypeSage, domain.Archetype("The Hero")},
		ToneOfVoice: &domain.ToneOfVoice{
			KeyTraits:  "Calm\nExpert",
			Guidelines: "Avoid jargon",
		},
		Source: intelligence.SourceLLM,
	}
	out := stripANSI(FormatToneResult(step))
	assert.Contains(t, out, "TONE OF VOICE")
	assert.Contains(t, out, "The Sage")
	assert.Contains(t, out, "The Hero")
	assert.Contains(t, out, "• Calm")
	assert.Contains(t, out, "• Expert")
	assert.Contains(t, out, "Avoid jargon")
	assert.NotContains(t, out, "Communication style")
}

func TestFormatCoreMessage(t *testing.T) {
	out := stripANSI(FormatCoreMessage("Fresh bread daily.", intelligence.SourceFallback))
	assert.Contains(t, out, "CORE MESSAGE")
	assert.Contains(t, out, "Fresh bread daily.")
	assert.Contains(t, out, "FALLBACK")
}

func TestFormatArchetypeList(t *testing.T) {
	out := stripANSI(FormatArchetypeList())
	for _, a := range domain.Archetypes {
		assert.Contains(t, out, string(a))
	}
}

func TestFormatPromptList(t *testing.T) {
	views := []service.PromptView{
		{Template: prompt.Template{Name: "tone_first_question", Description: "Opening question"}},
		{Template: prompt.Template{Name: "tone_synthesis"}, Overridden: true},
	}
	out := stripANSI(FormatPromptList(views))
	assert.Contains(t, out, "tone_first_question")
	assert.Contains(t, out, "default")
	assert.Contains(t, out, "override")
	assert.Contains(t, out, "Opening question")

	assert.Contains(t, stripANSI(FormatPromptList(nil)), "No prompts.")
}

func TestFormatPromptShow(t *testing.T) {
	v := &service.PromptView{
		Template: prompt.Template{
			Name:   "tone_synthesis",
			Fields: []prompt.Field{{Name: "name", Required: true}, {Name: "answers"}},
			System: "You are a brand strategist.",
			Text:   "Brand {name}: {answers}",
		},
		Overridden: true,
		UpdatedBy:  "admin-1",
		UpdatedAt:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
	out := stripANSI(FormatPromptShow(v))
	assert.Contains(t, out, "TONE_SYNTHESIS")
	assert.Contains(t, out, "{name}* {answers}")
	assert.Contains(t, out, "override by admin-1 at 2026-03-01 09:30")
	assert.Contains(t, out, "Brand {name}: {answers}")
}

func TestStartSpinner_NilWriterIsNoop(t *testing.T) {
	stop := StartSpinner(nil, "working")
	stop()
}

func TestSpinner_ClearsLineOnStop(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "thinking")
	s.Start()
	s.Stop()
	assert.Contains(t, buf.String(), "\r")
}
