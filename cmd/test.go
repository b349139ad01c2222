package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinescope/library"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test the connection to TMDB and Radarr",
	Long:    `Verify the TMDB credential and, when enabled, the connection to Radarr.`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	printer.Print("Testing connection to TMDB at %s...", cfg.TMDB.BaseURL)
	if err := tmdbClient.Ping(commandContext(cmd)); err != nil {
		return fmt.Errorf("TMDB connection failed: %w", err)
	}
	printer.Success("Connection successful!")

	printer.Print("")
	printer.Print("Configuration:")
	if cfg.File != "" {
		printer.Print("- Config file: %s", cfg.File)
	}
	printer.Print("- Language: %s", cfg.TMDB.Language)
	printer.Print("- Default movie category: %s", cfg.Browse.MovieCategory)
	printer.Print("- Default TV category: %s", cfg.Browse.TVCategory)
	printer.Print("- Filter presets: %d", len(filters.ListFilters()))

	if !cfg.Radarr.Enabled {
		printer.Print("")
		printer.Print("Radarr integration: %s", boolToStatus(false))
		return nil
	}

	printer.Print("")
	printer.Print("Testing connection to Radarr at %s...", cfg.Radarr.URL)
	if _, err := library.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, logger); err != nil {
		return err
	}
	printer.Success("Radarr connection successful!")
	printer.Print("Radarr integration: %s", boolToStatus(true))

	return nil
}
