package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/khrees2412/cvgen/internal/app"
	"github.com/khrees2412/cvgen/internal/document"
	"github.com/khrees2412/cvgen/internal/export"
	"github.com/khrees2412/cvgen/internal/pagination"
	"github.com/khrees2412/cvgen/internal/printer"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print <document.json>",
	Short: "Print a CV document with Chrome's print engine",
	Long: `Build the standalone print document and print it to PDF with Chrome's
native print engine. Text stays selectable. Use --html to write the print
document instead.`,
	Args: cobra.ExactArgs(1),
	Example: `  cvgen print cv.json
  cvgen print cv.json --format letter --out cv-print.pdf
  cvgen print cv.json --html --out cv-print.html`,
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

		asHTML, _ := cmd.Flags().GetBool("html")
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			name := export.Filename(doc.PersonalInfo.FullName, time.Now())
			if asHTML {
				name = strings.TrimSuffix(name, ".pdf") + ".html"
			}
			out = filepath.Join(a.Config.OutputDir, name)
		}

		var data []byte
		if asHTML {
			html, err := printer.Document(doc, format)
			if err != nil {
				return fmt.Errorf("render print document: %w", err)
			}
			data = []byte(html)
		} else {
			eng := printer.NewChromePrinter(browserOptions(a.Config), a.Config.CaptureTimeout, a.Logger)
			data, err = printer.Print(cmd.Context(), eng, doc, format)
			if errors.Is(err, printer.ErrPrintContextUnavailable) {
				return errors.New("please allow the browser to start to print your CV: install Chrome or set chrome_path")
			}
			if err != nil {
				return fmt.Errorf("print: %w", err)
			}
		}

		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		cmd.Printf("✓ Print output written to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(printCmd)

	printCmd.Flags().String("format", "a4", "Page format (a3, a4, a5, letter, legal)")
	printCmd.Flags().String("out", "", "Output file (default: <Name>_<date> in output_dir)")
	printCmd.Flags().Bool("html", false, "Write the print document HTML instead of a PDF")
}
