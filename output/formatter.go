package output

import (
	"fmt"
	"strings"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/tmdb"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ImageBaseURL string
	PosterSize   string
	ShowPosters  bool
	// Annotations adds a LIBRARY column keyed by TMDB id
	Annotations map[int]string
}

// ConsoleFormatter renders entities, search results and details
type ConsoleFormatter struct {
	printer *Printer
	opts    FormatOptions
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(printer *Printer, opts FormatOptions) *ConsoleFormatter {
	return &ConsoleFormatter{printer: printer, opts: opts}
}

// WriteList renders a list snapshot as a table
func (f *ConsoleFormatter) WriteList(view browse.ListView[tmdb.Entity]) error {
	f.printer.Header(fmt.Sprintf("%s · %s (%d)", kindTitle(view.Kind), view.CategoryLabel, len(view.Items)))

	if len(view.Items) == 0 {
		f.printer.Print(EmptyList)
		return nil
	}

	table := NewTable(f.printer.Out(), f.headers(false))
	for i := range view.Items {
		table.AddRow(f.row(&view.Items[i], ""))
	}
	if err := table.Render(); err != nil {
		return err
	}

	if view.HasMore {
		f.printer.Print(f.printer.Dim(fmt.Sprintf("More available, next page %d", view.NextPage)))
	}
	return nil
}

// WriteSearch renders a search snapshot
func (f *ConsoleFormatter) WriteSearch(view browse.SearchView) error {
	if view.Message != "" {
		f.printer.Error("%s", view.Message)
		return nil
	}
	if len(view.Results) == 0 {
		f.printer.Print(SearchEmptyState(view.HasSearched))
		return nil
	}

	f.printer.Header(fmt.Sprintf("Results for %q (%d)", view.Query.Text, len(view.Results)))
	table := NewTable(f.printer.Out(), f.headers(true))
	for i := range view.Results {
		r := &view.Results[i]
		table.AddRow(f.row(&r.Entity, string(r.Kind)))
	}
	return table.Render()
}

func (f *ConsoleFormatter) headers(withKind bool) []string {
	headers := []string{"ID", "Title"}
	if withKind {
		headers = append(headers, "Kind")
	}
	headers = append(headers, "Popularity", "Date")
	if f.opts.ShowPosters {
		headers = append(headers, "Poster")
	}
	if f.opts.Annotations != nil {
		headers = append(headers, "Library")
	}
	return headers
}

func (f *ConsoleFormatter) row(e *tmdb.Entity, kind string) []string {
	row := []string{fmt.Sprintf("%d", e.ID), Truncate(e.DisplayName(), 48)}
	if kind != "" {
		row = append(row, kind)
	}
	row = append(row, Popularity(e), Date(e))
	if f.opts.ShowPosters {
		row = append(row, Poster(f.opts.ImageBaseURL, f.opts.PosterSize, e))
	}
	if f.opts.Annotations != nil {
		note, ok := f.opts.Annotations[e.ID]
		if !ok {
			note = Missing
		}
		row = append(row, note)
	}
	return row
}

// FormatDetail formats a detail record as a tree
func (f *ConsoleFormatter) FormatDetail(record *tmdb.DetailRecord) string {
	var sb strings.Builder

	title := record.DisplayName()
	if year := record.Year(); year > 0 {
		title = fmt.Sprintf("%s (%d)", title, year)
	}
	fmt.Fprintf(&sb, "\n%s\n", f.printer.Bold(title))
	if record.Tagline != "" {
		fmt.Fprintf(&sb, "%s\n", f.printer.Dim(record.Tagline))
	}
	sb.WriteString("\n")

	var lines [][2]string
	lines = append(lines, [2]string{"Kind", record.Kind.Label()})
	lines = append(lines, [2]string{"Released", Date(&record.Entity)})
	if genres := record.GenreNames(); len(genres) > 0 {
		lines = append(lines, [2]string{"Genres", strings.Join(genres, ", ")})
	}
	lines = append(lines, [2]string{"Rating", Rating(&record.Entity)})
	lines = append(lines, [2]string{"Popularity", Popularity(&record.Entity)})
	switch {
	case record.Runtime > 0:
		lines = append(lines, [2]string{"Runtime", Runtime(record.Runtime)})
	case record.NumberOfSeasons > 0:
		lines = append(lines, [2]string{"Seasons", fmt.Sprintf("%d (%d episodes)", record.NumberOfSeasons, record.NumberOfEpisodes)})
	}
	if record.Status != "" {
		lines = append(lines, [2]string{"Status", record.Status})
	}
	lines = append(lines, [2]string{"Poster", Poster(f.opts.ImageBaseURL, f.opts.PosterSize, &record.Entity)})
	if record.Homepage != "" {
		lines = append(lines, [2]string{"Homepage", record.Homepage})
	}
	if record.IMDbID != "" {
		lines = append(lines, [2]string{"IMDb", "https://www.imdb.com/title/" + record.IMDbID})
	}
	if note, ok := f.opts.Annotations[record.ID]; ok {
		lines = append(lines, [2]string{"Library", note})
	}

	for i, line := range lines {
		prefix := "├"
		if i == len(lines)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(&sb, "%s── %s: %s\n", prefix, line[0], line[1])
	}

	fmt.Fprintf(&sb, "\n%s\n", Overview(record.Overview))
	return sb.String()
}

func kindTitle(kind tmdb.Kind) string {
	switch kind {
	case tmdb.KindMovie:
		return browse.MovieResource.Label
	case tmdb.KindTV:
		return browse.TVResource.Label
	default:
		return kind.Label()
	}
}
