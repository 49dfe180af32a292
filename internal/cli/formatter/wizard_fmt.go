package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
)

const wrapWidth = 80

// FormatWizardWelcome introduces a wizard run.
func FormatWizardWelcome(title, subject string) string {
	var b strings.Builder
	b.WriteString("\n" + Header(title) + "\n")
	b.WriteString(Dim(fmt.Sprintf("%d questions about %s. Pick a suggestion or type your own answer.", intelligence.MaxSteps, subject)))
	b.WriteString("\n")
	return b.String()
}

// FormatQuestion renders one wizard question with its progress counter and
// numbered suggestions.
func FormatQuestion(step int, question string, suggestions []string, source string) string {
	var b strings.Builder
	counter := StylePurple.Render(fmt.Sprintf("[%d/%d]", step, intelligence.MaxSteps))
	b.WriteString("\n" + counter + " " + Bold(Wrap(question, wrapWidth)))
	if source != intelligence.SourceLLM {
		b.WriteString(" " + SourceBadge(source))
	}
	b.WriteString("\n")
	for i, s := range suggestions {
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim(fmt.Sprintf("%d.", i+1)), s))
	}
	return b.String()
}

// FormatToneResult renders the archetypes and tone-of-voice synthesis.
func FormatToneResult(step *intelligence.ToneStep) string {
	var b strings.Builder

	names := make([]string, 0, len(step.Archetypes))
	for _, a := range step.Archetypes {
		names = append(names, StyleBlue.Render(string(a)))
	}
	b.WriteString(Bold("Archetypes") + "\n  " + strings.Join(names, Dim(" · ")) + "\n")

	if t := step.ToneOfVoice; t != nil {
		writeToneSection(&b, "Key traits", t.KeyTraits)
		writeToneSection(&b, "Communication style", t.CommunicationStyle)
		writeToneSection(&b, "Examples", t.Examples)
		writeToneSection(&b, "Guidelines", t.Guidelines)
	}
	b.WriteString("\n" + SourceBadge(step.Source))
	return RenderBox("Tone of voice", b.String())
}

func writeToneSection(b *strings.Builder, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	b.WriteString("\n" + Bold(title) + "\n" + Bullets(body))
}

// FormatCoreMessage renders a finalized core message.
func FormatCoreMessage(message, source string) string {
	return RenderBox("Core message", StyleFg.Render(Wrap(message, wrapWidth))+"\n\n"+SourceBadge(source))
}

// FormatArchetypeList renders the known archetype vocabulary.
func FormatArchetypeList() string {
	rows := make([][]string, 0, len(domain.Archetypes))
	for i, a := range domain.Archetypes {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), string(a)})
	}
	return RenderTable([]string{"#", "ARCHETYPE"}, rows)
}
