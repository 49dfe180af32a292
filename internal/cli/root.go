// Package cli implements the brandvoice command line: the HTTP server, the
// terminal refinement wizards and a few operator tools.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/brandvoice/internal/auth"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
	"github.com/alexanderramin/brandvoice/internal/service"
)

// App holds the services CLI commands run against.
type App struct {
	Tone    intelligence.ToneService
	Message intelligence.MessageService
	Prompts service.PromptService
	Issuer  *auth.Issuer

	// Serve runs the HTTP API until ctx is cancelled.
	Serve func(ctx context.Context) error

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// spinnerOut returns out when a spinner should be drawn on it.
func (a *App) spinnerOut(out io.Writer) io.Writer {
	if a.interactive() {
		return out
	}
	return nil
}

// NewRootCmd creates the top-level "brandvoice" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "brandvoice",
		Short:         "Marketing content refinement wizard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newToneCmd(app),
		newMessageCmd(app),
		newArchetypesCmd(),
		newTokenCmd(app),
		newPromptsCmd(app),
	)

	return root
}
