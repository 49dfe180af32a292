package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/brandvoice/internal/cli/formatter"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
)

func newMessageCmd(app *App) *cobra.Command {
	var (
		mc         intelligence.MessageContext
		userPrompt string
		audience   bool
	)

	cmd := &cobra.Command{
		Use:   "message",
		Short: "Refine a core marketing message",
		Long: `Refine a core marketing message.

Without --prompt, runs the five-question wizard and prints the finalized
message. With --prompt, applies a single free-form edit to --current.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Message == nil {
				return errors.New("message wizard is not configured")
			}
			out := cmd.OutOrStdout()
			if strings.TrimSpace(userPrompt) != "" {
				return runMessageRefine(cmd.Context(), app, out, mc, userPrompt, audience)
			}
			return runMessageWizard(cmd.Context(), app, newAsker(app, cmd), out, mc)
		},
	}

	cmd.Flags().StringVar(&mc.BusinessName, "business", "", "business name (required)")
	cmd.Flags().StringVar(&mc.Industry, "industry", "", "industry")
	cmd.Flags().StringVar(&mc.Description, "description", "", "what the business does")
	cmd.Flags().StringVar(&mc.ProductService, "product", "", "product or service")
	cmd.Flags().StringVar(&mc.TargetAudience, "audience", "", "target audience")
	cmd.Flags().StringVar(&mc.Goals, "goals", "", "marketing goals")
	cmd.Flags().StringVar(&mc.CurrentMessage, "current", "", "current core message")
	cmd.Flags().StringVar(&userPrompt, "prompt", "", "apply one free-form edit instead of running the wizard")
	cmd.Flags().BoolVar(&audience, "audience-edit", false, "treat --prompt as an audience edit")
	_ = cmd.MarkFlagRequired("business")

	return cmd
}

func runMessageWizard(ctx context.Context, app *App, in asker, out io.Writer, mc intelligence.MessageContext) error {
	fmt.Fprint(out, formatter.FormatWizardWelcome("Core message", mc.BusinessName))
	if mc.CurrentMessage != "" {
		fmt.Fprintln(out, formatter.Dim("Current: "+mc.CurrentMessage))
	}

	var (
		answered    []intelligence.Turn
		pending     string
		suggestions []string
		input       string
		step        int
	)
	for {
		turns := answered
		if pending != "" {
			turns = append(append([]intelligence.Turn(nil), answered...), intelligence.Turn{Question: pending})
		}
		session, err := intelligence.NewSession(step, turns, "")
		if err != nil {
			return err
		}
		session.Suggestions = suggestions

		stop := formatter.StartSpinner(app.spinnerOut(out), "Thinking...")
		res, err := app.Message.ContextualQuestion(ctx, mc, session, input)
		stop()
		if err != nil {
			return err
		}

		switch {
		case res.Completed:
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.FormatCoreMessage(res.CoreMessage, res.Source))
			return nil
		case res.Greeting:
			fmt.Fprintln(out, formatter.StyleGreen.Render(res.Welcome))
			if len(suggestions) == 0 {
				suggestions = res.Suggestions
			}
		default:
			if pending != "" {
				answered = append(answered, intelligence.Turn{Question: pending, Answer: input})
			}
			pending = res.Question
			suggestions = res.Suggestions
			step = res.QuestionIndex
		}

		fmt.Fprint(out, formatter.FormatQuestion(max(step, 1), res.Question, suggestions, res.Source))
		input, err = in.Ask(ctx, suggestions)
		if err != nil {
			return err
		}
	}
}

func runMessageRefine(ctx context.Context, app *App, out io.Writer, mc intelligence.MessageContext, userPrompt string, audience bool) error {
	stop := formatter.StartSpinner(app.spinnerOut(out), "Rewriting...")
	res, err := app.Message.GenerateWithPrompt(ctx, mc, userPrompt, audience)
	stop()
	if err != nil {
		return err
	}
	if res.Question != "" {
		fmt.Fprintln(out, formatter.Bold(res.Question))
	}
	if res.UpdatedMessage != "" {
		fmt.Fprintln(out, formatter.FormatCoreMessage(res.UpdatedMessage, res.Source))
	}
	return nil
}
