package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/brandvoice/internal/app"
	"github.com/alexanderramin/brandvoice/internal/auth"
	"github.com/alexanderramin/brandvoice/internal/cli"
	"github.com/alexanderramin/brandvoice/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	serving := len(os.Args) > 1 && os.Args[1] == "serve"
	logger := newLogger(serving, cfg.LogLevel)
	slog.SetDefault(logger)

	a, err := app.New(app.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer a.Close()

	var issuer *auth.Issuer
	if cfg.JWTSecret != "" {
		issuer = auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	}

	root := cli.NewRootCmd(&cli.App{
		Tone:    a.ToneWizard,
		Message: a.MessageWizard,
		Prompts: a.Services.Prompts,
		Issuer:  issuer,
		Serve: func(ctx context.Context) error {
			if err := cfg.ValidateServe(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger.Info("starting server", "port", cfg.Port, "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
			return a.Serve(ctx, issuer)
		},
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	})
	return root.Execute()
}

// newLogger logs JSON to stdout for the server and text to stderr for the
// terminal commands, so wizard output stays readable.
func newLogger(serving bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if serving {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
