package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khrees2412/cvgen/internal/app"
	"github.com/khrees2412/cvgen/internal/browser"
	"github.com/khrees2412/cvgen/internal/config"
	"github.com/khrees2412/cvgen/internal/database"
	"github.com/khrees2412/cvgen/internal/document"
	"github.com/khrees2412/cvgen/internal/export"
	"github.com/khrees2412/cvgen/internal/raster"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// maxCapturePixels bounds a decoded capture before it is paginated.
const maxCapturePixels = 48_000_000

var exportCmd = &cobra.Command{
	Use:   "export <document.json>",
	Short: "Export a CV document to PDF",
	Long: `Render the CV, rasterize it in headless Chrome and paginate it into a PDF.
If the first strategy fails the static fallback layout is tried once.`,
	Args: cobra.ExactArgs(1),
	Example: `  cvgen export cv.json
  cvgen export cv.json --format letter --margin 10
  cvgen export cv.json --strategy sections --out ./build`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())

		doc, err := document.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("load document: %w", err)
		}
		if doc.IsEmpty() {
			return fmt.Errorf("%s: %w", args[0], app.ErrEmptyDocument)
		}

		opts, err := exportOptions(cmd, a.Config)
		if err != nil {
			return err
		}

		bopts := browserOptions(a.Config)
		capturer := raster.NewChromeCapturer(raster.ChromeOptions{Browser: bopts, MaxPixels: maxCapturePixels}, a.Logger)
		exp := export.NewExporter(capturer, opts,
			export.WithLogger(a.Logger),
			export.WithHistory(database.CreateExport),
			export.WithFallbackLoader(fallbackLoader(bopts, a.Logger)),
		)

		art, err := exp.Export(cmd.Context(), doc, newStatusLine(cmd.OutOrStdout()))
		if err != nil {
			var ee *export.Error
			if errors.As(err, &ee) {
				a.Logger.Error("export failed", zap.Stringer("kind", ee.Kind), zap.Error(err))
				return errors.New(ee.UserMessage())
			}
			return err
		}

		cmd.Println(titleStyle.Render("PDF exported"))
		cmd.Printf("%s %s\n", labelStyle.Render("File:"), valueStyle.Render(art.Path))
		cmd.Printf("%s %s\n", labelStyle.Render("Strategy:"), valueStyle.Render(art.Strategy))
		cmd.Printf("%s %d\n", labelStyle.Render("Pages:"), art.Pages)
		cmd.Printf("%s %s\n", labelStyle.Render("Size:"), formatBytes(art.Size))
		cmd.Printf("%s %s\n", labelStyle.Render("Duration:"), art.Duration.Round(time.Millisecond))
		cmd.Printf("%s %s\n", labelStyle.Render("Run:"), art.RunID)
		for _, w := range art.Warnings {
			cmd.Println(warnStyle.Render("! " + w))
		}
		return nil
	},
}

// exportOptions starts from the configuration and applies any flags the user set.
func exportOptions(cmd *cobra.Command, cfg *config.Config) (export.Options, error) {
	opts := export.DefaultOptions()
	opts.Scale = cfg.Scale
	opts.Quality = cfg.Quality
	opts.MarginMM = cfg.Margin
	opts.PaddingMM = cfg.Padding
	opts.Format = cfg.PageFormat
	opts.Strategy = cfg.Strategy
	opts.OutputDir = cfg.OutputDir
	if cfg.ConvergeTimeout > 0 {
		opts.ConvergeTimeout = cfg.ConvergeTimeout
	}
	if cfg.CaptureTimeout > 0 {
		opts.CaptureTimeout = cfg.CaptureTimeout
	}
	if cfg.FallbackLoadTimeout > 0 {
		opts.FallbackLoadTimeout = cfg.FallbackLoadTimeout
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("scale") {
		opts.Scale, err = flags.GetFloat64("scale")
	}
	if err == nil && flags.Changed("quality") {
		opts.Quality, err = flags.GetFloat64("quality")
	}
	if err == nil && flags.Changed("margin") {
		opts.MarginMM, err = flags.GetFloat64("margin")
	}
	if err == nil && flags.Changed("padding") {
		opts.PaddingMM, err = flags.GetFloat64("padding")
	}
	if err == nil && flags.Changed("format") {
		opts.Format, err = flags.GetString("format")
	}
	if err == nil && flags.Changed("strategy") {
		opts.Strategy, err = flags.GetString("strategy")
	}
	if err == nil && flags.Changed("out") {
		opts.OutputDir, err = flags.GetString("out")
	}
	if err != nil {
		return opts, fmt.Errorf("%w: %v", app.ErrInvalidArgument, err)
	}
	return opts, nil
}

func browserOptions(cfg *config.Config) browser.Options {
	return browser.Options{
		ExecPath:       cfg.ChromePath,
		WindowWidth:    1280,
		WindowHeight:   1024,
		WSURLReadLimit: 20 * time.Second,
	}
}

// fallbackLoader checks that a browser can be started before handing out a
// fresh capturer for the static layout.
func fallbackLoader(opts browser.Options, log *zap.Logger) export.FallbackLoader {
	return func(ctx context.Context) (raster.Capturer, error) {
		bctx, cancel := browser.NewContext(ctx, opts, log)
		defer cancel()
		if err := browser.Start(bctx); err != nil {
			return nil, err
		}
		return raster.NewChromeCapturer(raster.ChromeOptions{Browser: opts, MaxPixels: maxCapturePixels}, log), nil
	}
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func addExportFlags(c *cobra.Command) {
	c.Flags().Float64("scale", 2.0, "Rasterization multiplier")
	c.Flags().Float64("quality", 0.95, "JPEG quality of page images (0-1)")
	c.Flags().Float64("margin", 0, "Page margin in mm")
	c.Flags().Float64("padding", 2, "Surface padding in mm")
	c.Flags().String("format", "a4", "Page format (a3, a4, a5, letter, legal)")
	c.Flags().String("strategy", export.StrategyPrimary, "First strategy (primary, sections)")
	c.Flags().String("out", ".", "Output directory")
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addExportFlags(exportCmd)
}
