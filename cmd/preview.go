package cmd

import (
	"fmt"
	"os"

	"github.com/khrees2412/cvgen/internal/app"
	"github.com/khrees2412/cvgen/internal/document"
	"github.com/khrees2412/cvgen/internal/pagination"
	"github.com/khrees2412/cvgen/internal/render"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <document.json>",
	Short: "Write the rendered CV preview as HTML",
	Args:  cobra.ExactArgs(1),
	Example: `  cvgen preview cv.json
  cvgen preview cv.json --static --out fallback.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())

		doc, err := document.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("load document: %w", err)
		}

		formatName, _ := cmd.Flags().GetString("format")
		if !cmd.Flags().Changed("format") {
			formatName = a.Config.PageFormat
		}
		format, err := pagination.LookupFormat(formatName)
		if err != nil {
			return fmt.Errorf("%w: %v", app.ErrInvalidArgument, err)
		}

		opts := render.Options{
			PageWidthMM:  format.WidthMM,
			PageHeightMM: format.HeightMM,
			PaddingMM:    a.Config.Padding,
			Format:       format.Name,
		}

		static, _ := cmd.Flags().GetBool("static")
		var html string
		if static {
			html, err = render.Fragment(doc, opts)
		} else {
			html, err = render.Surface(doc, opts)
		}
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}

		out, _ := cmd.Flags().GetString("out")
		if err := os.WriteFile(out, []byte(html), 0644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		cmd.Printf("✓ Preview written to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().String("format", "a4", "Page format (a3, a4, a5, letter, legal)")
	previewCmd.Flags().String("out", "cv-preview.html", "Output file")
	previewCmd.Flags().Bool("static", false, "Write the static fallback layout instead of the live surface")
}
