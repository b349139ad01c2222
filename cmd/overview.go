package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/output"
	"github.com/s0up4200/cinescope/tmdb"
)

// maxOverviewConcurrency bounds the parallel category fetches
const maxOverviewConcurrency = 4

var overviewLimit int

// overviewCmd represents the overview command
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the first page of every movie and TV category",
	Long: `Fetch the first page of every movie and TV show category concurrently
and print the top titles of each.`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)

	overviewCmd.Flags().IntVarP(&overviewLimit, "limit", "l", 5, "titles to show per category (0 shows the whole page)")
}

type overviewSection struct {
	resource browse.Resource
	category browse.Category
	view     browse.ListView[tmdb.Entity]
	err      error
}

func overviewSections() []*overviewSection {
	var sections []*overviewSection
	for _, resource := range []browse.Resource{browse.MovieResource, browse.TVResource} {
		for _, cat := range resource.Categories {
			sections = append(sections, &overviewSection{resource: resource, category: cat})
		}
	}
	return sections
}

func runOverview(cmd *cobra.Command, args []string) error {
	sections := overviewSections()

	// Every section gets its own controller; failures are reported per section
	g, ctx := errgroup.WithContext(commandContext(cmd))
	g.SetLimit(maxOverviewConcurrency)

	for _, section := range sections {
		g.Go(func() error {
			list := browse.NewEntityList(tmdbClient, section.resource, logger)
			defer list.Close()

			section.err = list.Load(ctx, section.category.ID)
			section.view = list.Snapshot()
			if section.err != nil {
				logger.Warn().
					Err(section.err).
					Str("kind", string(section.resource.Kind)).
					Str("category", section.category.ID).
					Msg("Failed to load category")
			}
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	formatter := output.NewConsoleFormatter(printer, formatOptions())
	var failed int
	for _, section := range sections {
		if section.err != nil {
			failed++
			printer.Warning("%s · %s: %v", section.resource.Label, section.category.Label, section.err)
			continue
		}
		view := section.view
		if overviewLimit > 0 && len(view.Items) > overviewLimit {
			view.Items = view.Items[:overviewLimit]
		}
		if err := formatter.WriteList(view); err != nil {
			return err
		}
	}

	if failed == len(sections) {
		return fmt.Errorf("failed to load any category")
	}
	return nil
}
