package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/brandvoice/internal/cli/formatter"
)

func newPromptsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Inspect the effective prompt catalog",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Prompts == nil {
				return errors.New("prompt catalog is not configured")
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List prompt templates and whether they are overridden",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				views, err := app.Prompts.List(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPromptList(views))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Show one prompt template with its effective text",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := app.Prompts.Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("prompt %q: %w", args[0], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPromptShow(v))
				return nil
			},
		},
	)

	return cmd
}
