package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinescope/output"
	"github.com/s0up4200/cinescope/tmdb"
	"github.com/s0up4200/cinescope/ui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse movies and TV shows interactively",
	Long: `Open the interactive browser with Movies, Search and TV Shows tabs.

Logs are written to logging.file when it is set and discarded otherwise, so
they do not disturb the screen.`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !output.IsTerminal(os.Stdout) {
		return fmt.Errorf("browse needs an interactive terminal, use list or search instead")
	}

	uiLogger, closeLog, err := browseLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := newTMDBClient(cfg.TMDB, uiLogger)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	opts := ui.Options{
		API:           client,
		Library:       libraryChecker(uiLogger),
		MovieCategory: cfg.Browse.MovieCategory,
		TVCategory:    cfg.Browse.TVCategory,
		SearchKind:    tmdb.Kind(cfg.Browse.SearchKind),
		ImageBaseURL:  cfg.TMDB.ImageBaseURL,
		PosterSize:    cfg.Browse.PosterSize,
		Logger:        uiLogger,
	}

	return ui.Run(commandContext(cmd), opts)
}

// browseLogger sends logs to logging.file, or nowhere
func browseLogger() (zerolog.Logger, func(), error) {
	if cfg.Logging.File == "" {
		return zerolog.Nop(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return setupLogger(cfg.Logging, f), func() { _ = f.Close() }, nil
}
