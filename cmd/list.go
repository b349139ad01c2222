package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/filter"
	"github.com/s0up4200/cinescope/output"
	"github.com/s0up4200/cinescope/tmdb"
)

var (
	listCategory string
	listPages    int
	listPosters  bool
	listLibrary  bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [movie|tv]",
	Short: "List movies or TV shows in a category",
	Long: `List the titles of a TMDB category such as popular, top rated or upcoming.

Pages are fetched one after another until --pages pages have been loaded or
TMDB reports no further pages. A filter expression narrows the loaded titles
without changing which pages are fetched.`,
	Example: `  cinescope list
  cinescope list movie --category top_rated --pages 3
  cinescope list tv --category airing_today --filter 'VoteAverage >= 8'
  cinescope list --preset fresh --library`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runList,
}

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the categories available for movies and TV shows",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(categoriesCmd)

	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "category to list (default from config)")
	listCmd.Flags().IntVarP(&listPages, "pages", "n", 1, "number of pages to load")
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().BoolVar(&listPosters, "posters", false, "show poster URLs")
	listCmd.Flags().BoolVar(&listLibrary, "library", false, "show Radarr library status (movies only)")
}

func parseResourceArg(args []string) (browse.Resource, error) {
	kind := tmdb.KindMovie
	if len(args) > 0 {
		parsed, err := tmdb.ParseKind(args[0])
		if err != nil {
			return browse.Resource{}, err
		}
		kind = parsed
	}
	return browse.ResourceFor(kind)
}

func runList(cmd *cobra.Command, args []string) error {
	resource, err := parseResourceArg(args)
	if err != nil {
		return err
	}
	if listPages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}

	category := listCategory
	if category == "" {
		category = cfg.Browse.MovieCategory
		if resource.Kind == tmdb.KindTV {
			category = cfg.Browse.TVCategory
		}
	}

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	list := browse.NewEntityList(tmdbClient, resource, logger)
	defer list.Close()

	logger.Info().
		Str("kind", string(resource.Kind)).
		Str("category", category).
		Int("pages", listPages).
		Msg("Loading titles")

	if err := list.Load(ctx, category); err != nil {
		return fmt.Errorf("failed to load %s: %w", category, err)
	}
	for page := 2; page <= listPages; page++ {
		loaded, err := list.LoadMore(ctx)
		if err != nil {
			printer.Warning("Stopped after page %d: %v", page-1, err)
			break
		}
		if !loaded {
			break
		}
	}

	view := list.Snapshot()
	total := len(view.Items)
	view.Items = filter.Select(f, view.Items, entitySubject(resource.Kind))
	if f != nil {
		logger.Debug().Int("loaded", total).Int("matched", len(view.Items)).Msg("Filter applied")
	}

	opts := formatOptions()
	opts.ShowPosters = listPosters
	if listLibrary {
		opts.Annotations = libraryAnnotations(cmd, resource.Kind, view.Items)
	}

	return output.NewConsoleFormatter(printer, opts).WriteList(view)
}

// libraryAnnotations looks the movies up in Radarr. It returns nil when the
// library is unavailable so the LIBRARY column is left out.
func libraryAnnotations(cmd *cobra.Command, kind tmdb.Kind, entities []tmdb.Entity) map[int]string {
	if kind != tmdb.KindMovie {
		printer.Warning("Library status is only available for movies")
		return nil
	}
	checker := libraryChecker(logger)
	if checker == nil {
		printer.Warning("Radarr is not enabled or not reachable")
		return nil
	}

	ids := make([]int, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.ID)
	}

	statuses, err := checker.LookupMany(commandContext(cmd), ids)
	if err != nil {
		logger.Warn().Err(err).Msg("Library lookup interrupted")
	}

	notes := make(map[int]string, len(statuses))
	for id, status := range statuses {
		notes[id] = status.Label()
	}
	return notes
}

func runCategories(cmd *cobra.Command, args []string) error {
	if printer == nil {
		mode, err := output.ParseColorMode(colorFlag)
		if err != nil {
			return err
		}
		printer = output.NewPrinter(mode, true)
	}

	table := output.NewTable(printer.Out(), []string{"Kind", "Category", "Label", "Default"})
	for _, resource := range []browse.Resource{browse.MovieResource, browse.TVResource} {
		for _, cat := range resource.Categories {
			def := ""
			if cat.ID == resource.Default {
				def = "yes"
			}
			table.AddRow([]string{string(resource.Kind), cat.ID, cat.Label, def})
		}
	}
	return table.Render()
}
