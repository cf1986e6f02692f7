package cmd

import (
	"fmt"

	"github.com/khrees2412/cvgen/internal/document"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document.json>",
	Short: "Validate a CV document and report export readiness",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := document.LoadFile(args[0])
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("Document"))
		cmd.Printf("%s %s\n", labelStyle.Render("Name:"), valueStyle.Render(doc.PersonalInfo.FullName))
		cmd.Printf("%s %d\n", labelStyle.Render("Experience:"), len(doc.Experience))
		cmd.Printf("%s %d\n", labelStyle.Render("Education:"), len(doc.Education))
		cmd.Printf("%s %d\n", labelStyle.Render("Skills:"), len(doc.Skills))
		cmd.Printf("%s %d\n", labelStyle.Render("Projects:"), len(doc.Projects))
		cmd.Printf("%s %d\n", labelStyle.Render("Languages:"), len(doc.Languages))

		warnings := document.Readiness(doc)
		if len(warnings) == 0 {
			cmd.Println("\n✓ Ready to export")
			return nil
		}
		cmd.Println()
		for _, w := range warnings {
			cmd.Println(warnStyle.Render(fmt.Sprintf("! %s", w)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
