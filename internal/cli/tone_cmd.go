package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/brandvoice/internal/cli/formatter"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
)

func newToneCmd(app *App) *cobra.Command {
	var brand intelligence.BrandContext

	cmd := &cobra.Command{
		Use:   "tone",
		Short: "Discover a brand's tone of voice in five questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Tone == nil {
				return errors.New("tone wizard is not configured")
			}
			return runToneWizard(cmd.Context(), app, newAsker(app, cmd), cmd.OutOrStdout(), brand)
		},
	}

	cmd.Flags().StringVar(&brand.Name, "name", "", "brand name (required)")
	cmd.Flags().StringVar(&brand.Industry, "industry", "", "industry")
	cmd.Flags().StringVar(&brand.Description, "description", "", "what the brand does")
	cmd.Flags().StringVar(&brand.Website, "website", "", "website URL")
	cmd.Flags().StringVar(&brand.TargetMarket, "target-market", "", "who the brand sells to")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runToneWizard(ctx context.Context, app *App, in asker, out io.Writer, brand intelligence.BrandContext) error {
	fmt.Fprint(out, formatter.FormatWizardWelcome("Tone of voice", brand.Name))

	var turns []intelligence.Turn
	step := 0
	for {
		session, err := intelligence.NewSession(step, turns, "")
		if err != nil {
			return err
		}

		stop := formatter.StartSpinner(app.spinnerOut(out), "Thinking...")
		res, err := app.Tone.Step(ctx, brand, session)
		stop()
		if err != nil {
			return err
		}

		if res.IsComplete {
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.FormatToneResult(res))
			return nil
		}

		fmt.Fprint(out, formatter.FormatQuestion(res.Step, res.Question, res.Suggestions, res.Source))
		answer, err := in.Ask(ctx, res.Suggestions)
		if err != nil {
			return err
		}
		turns = append(turns, intelligence.Turn{Question: res.Question, Answer: answer})
		step = res.Step
	}
}
