package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/brandvoice/internal/cli/formatter"
)

var errInputCancelled = errors.New("input cancelled")

const otherOption = "Other…"

// asker collects one answer to a wizard question.
type asker interface {
	Ask(ctx context.Context, suggestions []string) (string, error)
}

func newAsker(app *App, cmd *cobra.Command) asker {
	if app.interactive() {
		return huhAsker{}
	}
	return lineAsker{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
}

// lineAsker reads plain lines. A number picks the matching suggestion.
type lineAsker struct {
	in  io.Reader
	out io.Writer
}

func (a lineAsker) Ask(ctx context.Context, suggestions []string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(a.out, formatter.StylePurple.Render("> "))
		line, err := readPromptLine(a.in)
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return "", errInputCancelled
			}
			return "", err
		}
		if line == "" {
			fmt.Fprintln(a.out, formatter.Dim("An answer is required."))
			continue
		}
		if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(suggestions) {
			return suggestions[n-1], nil
		}
		return line, nil
	}
}

// readPromptLine reads until either LF or CR so Enter works in normal and raw terminal modes.
func readPromptLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}

	var buf []byte
	var one [1]byte

	for {
		n, err := in.Read(one[:])
		if n > 0 {
			switch one[0] {
			case '\n', '\r':
				return string(buf), nil
			default:
				buf = append(buf, one[0])
			}
		}

		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}

// huhAsker offers the suggestions in a select with a free-text escape hatch.
type huhAsker struct{}

func (huhAsker) Ask(ctx context.Context, suggestions []string) (string, error) {
	if len(suggestions) > 0 {
		options := make([]huh.Option[string], 0, len(suggestions)+1)
		for _, s := range suggestions {
			options = append(options, huh.NewOption(s, s))
		}
		options = append(options, huh.NewOption(otherOption, otherOption))

		var choice string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Your answer").
					Options(options...).
					Value(&choice),
			),
		).WithTheme(brandvoiceHuhTheme()).WithShowHelp(false)
		if err := form.RunWithContext(ctx); err != nil {
			return "", huhErr(err)
		}
		if choice != otherOption {
			return choice, nil
		}
	}

	var answer string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your answer").
				Value(&answer).
				Validate(requireAnswer),
		),
	).WithTheme(brandvoiceHuhTheme()).WithShowHelp(false)
	if err := form.RunWithContext(ctx); err != nil {
		return "", huhErr(err)
	}
	return strings.TrimSpace(answer), nil
}

func requireAnswer(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("an answer is required")
	}
	return nil
}

func huhErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return errInputCancelled
	}
	return err
}

// brandvoiceHuhTheme returns a huh theme using the formatter palette.
func brandvoiceHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
