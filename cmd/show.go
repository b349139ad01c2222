package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/output"
	"github.com/s0up4200/cinescope/tmdb"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <movie|tv|multi> <id>",
	Short: "Show the details of a movie or TV show",
	Example: `  cinescope show movie 550
  cinescope show tv 1399`,
	Args:    cobra.ExactArgs(2),
	PreRunE: initializeApp,
	RunE:    runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	kind, err := tmdb.ParseKind(args[0])
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(args[1])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q: must be a positive number", args[1])
	}

	ctx := commandContext(cmd)
	detail := browse.NewDetailController(tmdbClient, logger)
	defer detail.Close()

	view, err := detail.Fetch(ctx, kind, id)
	if err != nil {
		printer.Error("%s", view.Message)
		return fmt.Errorf("failed to load %s %d: %w", kind, id, err)
	}

	opts := formatOptions()
	if kind == tmdb.KindMovie {
		if checker := libraryChecker(logger); checker != nil {
			status, err := checker.Lookup(ctx, id)
			if err != nil {
				logger.Warn().Err(err).Int("tmdb_id", id).Msg("Library lookup failed")
			} else {
				opts.Annotations = map[int]string{id: status.Label()}
			}
		}
	}

	printer.Print("%s", output.NewConsoleFormatter(printer, opts).FormatDetail(view.Record))
	return nil
}
