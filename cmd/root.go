package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khrees2412/cvgen/internal/app"
	"github.com/spf13/cobra"
)

// application is kept for cleanup after the command tree returns.
var application *app.App

var rootCmd = &cobra.Command{
	Use:   "cvgen",
	Short: "CV builder with PDF export",
	Long: `cvgen renders a CV document (JSON) and exports it to PDF.
It rasterizes the rendered CV in headless Chrome, paginates it onto pages and
falls back to a static layout when the live capture fails.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		application = a

		cmd.SetContext(app.WithApp(cmd.Context(), a))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	if application != nil {
		application.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		stop()
		os.Exit(1)
	}
}
