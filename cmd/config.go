package cmd

import (
	"fmt"

	"github.com/khrees2412/cvgen/internal/app"
	"github.com/khrees2412/cvgen/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.AppConfig
		cmd.Println(titleStyle.Render("Configuration"))
		cmd.Printf("%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		cmd.Printf("%s %g\n", labelStyle.Render("Scale:"), cfg.Scale)
		cmd.Printf("%s %g\n", labelStyle.Render("Quality:"), cfg.Quality)
		cmd.Printf("%s %gmm\n", labelStyle.Render("Margin:"), cfg.Margin)
		cmd.Printf("%s %gmm\n", labelStyle.Render("Padding:"), cfg.Padding)
		cmd.Printf("%s %s\n", labelStyle.Render("Page Format:"), cfg.PageFormat)
		cmd.Printf("%s %s\n", labelStyle.Render("Strategy:"), cfg.Strategy)
		cmd.Printf("%s %s\n", labelStyle.Render("Output Dir:"), cfg.OutputDir)
		if cfg.ChromePath != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Chrome:"), cfg.ChromePath)
		} else {
			cmd.Printf("%s %s\n", labelStyle.Render("Chrome:"), "auto-detect")
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Converge Timeout:"), cfg.ConvergeTimeout)
		cmd.Printf("%s %s\n", labelStyle.Render("Capture Timeout:"), cfg.CaptureTimeout)
		cmd.Printf("%s %s\n", labelStyle.Render("Fallback Load Timeout:"), cfg.FallbackLoadTimeout)
		cmd.Printf("%s %s\n", labelStyle.Render("Log Level:"), cfg.LogLevel)
		cmd.Printf("%s %s\n", labelStyle.Render("History DB:"), cfg.HistoryDB)
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  cvgen config set --key page_format --value letter
  cvgen config set --key strategy --value sections
  cvgen config set --key chrome_path --value /usr/bin/chromium`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("%w: both --key and --value are required", app.ErrInvalidArgument)
		}
		if !config.IsValidKey(key) {
			return fmt.Errorf("%w: key must be one of %v", app.ErrInvalidArgument, config.ValidKeys)
		}

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("update config: %w", err)
		}

		cmd.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
