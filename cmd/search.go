package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/filter"
	"github.com/s0up4200/cinescope/output"
	"github.com/s0up4200/cinescope/tmdb"
)

var searchKind string

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search movies and TV shows by title",
	Long: `Search TMDB for movies or TV shows whose title matches the query.

--kind selects what to search: movie, tv or multi (both). Only the first page
of results is shown.`,
	Example: `  cinescope search the matrix
  cinescope search --kind tv breaking bad
  cinescope search --kind multi dune --filter 'HasPoster'`,
	PreRunE: initializeApp,
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", "", "search type: movie, tv or multi (default from config)")
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// searchQuery builds the query from the arguments and --kind. Unknown kinds
// are passed through so validation reports them.
func searchQuery(args []string) browse.SearchQuery {
	raw := searchKind
	if raw == "" {
		raw = cfg.Browse.SearchKind
	}

	kind, err := tmdb.ParseKind(raw)
	if err != nil {
		kind = tmdb.Kind(strings.TrimSpace(raw))
	}

	return browse.SearchQuery{
		Text: strings.Join(args, " "),
		Kind: kind,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	q := searchQuery(args)

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	search := browse.NewSearchController(tmdbClient, logger)
	defer search.Close()

	logger.Info().Str("query", q.Text).Str("kind", string(q.Kind)).Msg("Searching")

	view, err := search.Search(commandContext(cmd), q)
	if err != nil {
		var verr *browse.ValidationError
		if errors.As(err, &verr) {
			return err
		}
		printer.Error("%s", view.Message)
		return fmt.Errorf("search failed: %w", err)
	}

	view.Results = filter.Select(f, view.Results, func(r browse.SearchResult) filter.Subject {
		return filter.Subject{Entity: r.Entity, Kind: r.Kind}
	})

	return output.NewConsoleFormatter(printer, formatOptions()).WriteSearch(view)
}
