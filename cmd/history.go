package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/khrees2412/cvgen/internal/app"
	"github.com/khrees2412/cvgen/internal/database"
	"github.com/khrees2412/cvgen/pkg/models"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent export attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		records, err := database.GetRecentExports(limit)
		if err != nil {
			return fmt.Errorf("fetch history: %w", err)
		}
		if len(records) == 0 {
			cmd.Println("No exports yet. Export a CV with 'cvgen export <document.json>'")
			return nil
		}

		cmd.Println(titleStyle.Render(fmt.Sprintf("Recent Exports (%d)", len(records))))
		for _, rec := range records {
			status := valueStyle.Render("✓")
			detail := fmt.Sprintf("%s, %d page(s), %s", rec.Strategy, rec.Pages, formatBytes(rec.SizeBytes))
			if rec.Status == models.ExportFailed {
				status = errorStyle.Render("✗")
				detail = rec.ErrorKind
			}
			cmd.Printf("%s [%d] %s  %s  %s\n", status, rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"),
				labelStyle.Render(displayName(rec)), detail)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one export attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: export ID must be a number", app.ErrInvalidArgument)
		}

		rec, err := database.GetExport(id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("export %d: %w", id, app.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("fetch export: %w", err)
		}

		cmd.Println(titleStyle.Render(fmt.Sprintf("Export #%d", rec.ID)))
		cmd.Printf("%s %s\n", labelStyle.Render("Run:"), rec.RunID)
		cmd.Printf("%s %s\n", labelStyle.Render("Status:"), rec.Status)
		cmd.Printf("%s %s\n", labelStyle.Render("Strategy:"), rec.Strategy)
		if rec.Status == models.ExportSucceeded {
			cmd.Printf("%s %s\n", labelStyle.Render("File:"), rec.FilePath)
			cmd.Printf("%s %d\n", labelStyle.Render("Pages:"), rec.Pages)
			cmd.Printf("%s %s\n", labelStyle.Render("Size:"), formatBytes(rec.SizeBytes))
		} else {
			cmd.Printf("%s %s\n", labelStyle.Render("Error:"), rec.ErrorKind)
			cmd.Printf("%s %s\n", labelStyle.Render("Detail:"), rec.ErrorMessage)
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Duration:"), time.Duration(rec.DurationMS)*time.Millisecond)
		cmd.Printf("%s %s\n", labelStyle.Render("When:"), rec.CreatedAt.Local().Format(time.RFC1123))
		for _, w := range rec.Warnings {
			cmd.Println(warnStyle.Render("! " + w))
		}
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:     "prune",
	Short:   "Delete export history older than a given age",
	Example: `  cvgen history prune --older-than 720h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetDuration("older-than")
		if age <= 0 {
			return fmt.Errorf("%w: --older-than must be positive", app.ErrInvalidArgument)
		}

		n, err := database.DeleteExportsBefore(time.Now().Add(-age))
		if err != nil {
			return fmt.Errorf("prune history: %w", err)
		}
		cmd.Printf("✓ Removed %d export(s)\n", n)
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize export outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		byStatus, err := database.GetExportStats()
		if err != nil {
			return fmt.Errorf("fetch stats: %w", err)
		}
		byStrategy, err := database.GetStrategyStats()
		if err != nil {
			return fmt.Errorf("fetch stats: %w", err)
		}

		total := byStatus[models.ExportSucceeded] + byStatus[models.ExportFailed]
		cmd.Println(titleStyle.Render("Export Statistics"))
		cmd.Printf("  Total: %d\n", total)
		cmd.Printf("  Succeeded: %d\n", byStatus[models.ExportSucceeded])
		cmd.Printf("  Failed: %d\n", byStatus[models.ExportFailed])
		if total > 0 {
			rate := float64(byStatus[models.ExportSucceeded]) / float64(total) * 100
			cmd.Printf("  Success Rate: %.1f%%\n", rate)
		}

		if len(byStrategy) > 0 {
			cmd.Printf("\n%s\n", labelStyle.Render("Successful Strategy"))
			for strategy, count := range byStrategy {
				cmd.Printf("  %s: %d\n", strategy, count)
			}
		}
		return nil
	},
}

func displayName(rec *models.ExportRecord) string {
	if rec.FileName != "" {
		return rec.FileName
	}
	return rec.RunID
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)
	historyCmd.AddCommand(historyStatsCmd)

	historyCmd.Flags().Int("limit", 10, "Number of exports to list")
	historyPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Delete exports older than this")
}
