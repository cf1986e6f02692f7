package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/khrees2412/cvgen/internal/document"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the sample CV document",
	Example: `  cvgen sample > cv.json
  cvgen sample --out cv.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := document.NewSession()
		s.LoadSample()

		out, _ := cmd.Flags().GetString("out")
		var w io.Writer = cmd.OutOrStdout()
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			w = f
		}

		if err := document.Encode(w, s.Snapshot()); err != nil {
			return fmt.Errorf("encode sample: %w", err)
		}
		if out != "" {
			cmd.Printf("✓ Sample written to %s\n", out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().String("out", "", "Output file (default: stdout)")
}
