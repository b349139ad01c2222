package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/output"
	"github.com/s0up4200/cinescope/tmdb"
)

var searchKinds = []tmdb.Kind{tmdb.KindMovie, tmdb.KindTV, tmdb.KindMulti}

// searchScreen is the query form plus its results
type searchScreen struct {
	id    uuid.UUID
	ctrl  *browse.SearchController
	opts  *Options
	input textinput.Model
	kind  tmdb.Kind

	cursor int
	offset int
}

func newSearchScreen(opts *Options) *searchScreen {
	ti := textinput.New()
	ti.Placeholder = "Movie/TV show name"
	ti.CharLimit = 100
	ti.Width = 50
	ti.Focus()

	kind := opts.SearchKind
	if !kind.IsValid() {
		kind = tmdb.KindMovie
	}

	return &searchScreen{
		id:    uuid.New(),
		ctrl:  browse.NewSearchController(opts.API, opts.Logger),
		opts:  opts,
		input: ti,
		kind:  kind,
	}
}

// searchRows returns how many result cards fit into a body of the given height
func searchRows(height int) int {
	return max((height-7)/cardHeight, 1)
}

// typing reports whether keys go to the query input
func (s *searchScreen) typing() bool {
	return s.input.Focused()
}

func (s *searchScreen) cycleKind() {
	for i, k := range searchKinds {
		if k == s.kind {
			s.kind = searchKinds[(i+1)%len(searchKinds)]
			return
		}
	}
	s.kind = searchKinds[0]
}

func (s *searchScreen) update(ctx context.Context, msg tea.KeyMsg, rows int) tea.Cmd {
	if s.typing() {
		switch {
		case key.Matches(msg, keys.Open):
			return s.submit(ctx, browse.SearchQuery{Text: s.input.Value(), Kind: s.kind})
		case key.Matches(msg, keys.Kind):
			s.cycleKind()
			return nil
		case key.Matches(msg, keys.Back):
			s.input.Blur()
			return nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}

	view := s.ctrl.Snapshot()
	switch {
	case key.Matches(msg, keys.Focus):
		return s.input.Focus()

	case key.Matches(msg, keys.Kind):
		s.cycleKind()

	case key.Matches(msg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
		s.offset = scrollOffset(s.cursor, s.offset, rows, len(view.Results))

	case key.Matches(msg, keys.Down):
		if s.cursor < len(view.Results)-1 {
			s.cursor++
		}
		s.offset = scrollOffset(s.cursor, s.offset, rows, len(view.Results))

	case key.Matches(msg, keys.Retry):
		if view.State == browse.SearchFailed {
			return s.submit(ctx, view.Query)
		}

	case key.Matches(msg, keys.Open):
		if s.cursor < len(view.Results) {
			r := view.Results[s.cursor]
			return openDetail(r.Kind, r.ID, r.DisplayName())
		}
	}
	return nil
}

func (s *searchScreen) submit(ctx context.Context, q browse.SearchQuery) tea.Cmd {
	fetch, _ := s.ctrl.Submit(q)
	if fetch == nil {
		return nil
	}
	s.input.Blur()
	s.cursor = 0
	s.offset = 0
	return searchCmd(ctx, s.id, fetch)
}

func (s *searchScreen) resolve(outcome browse.SearchOutcome) {
	s.ctrl.Resolve(outcome)
}

func (s *searchScreen) close() {
	s.ctrl.Close()
}

func (s *searchScreen) view(width, rows int, spin string) string {
	view := s.ctrl.Snapshot()
	var b strings.Builder

	b.WriteString(inputStyle.Render(s.input.View()))
	b.WriteString("\n")
	b.WriteString(s.renderKinds())
	b.WriteString("\n")

	var problems []string
	for _, field := range []string{browse.FieldQuery, browse.FieldKind} {
		if msg := view.Validation.Field(field); msg != "" {
			problems = append(problems, msg)
		}
	}
	b.WriteString(errorStyle.Render(strings.Join(problems, " · ")))
	b.WriteString("\n\n")

	switch {
	case view.State == browse.SearchLoading:
		b.WriteString(spin + " Searching...")
		return b.String()
	case view.State == browse.SearchFailed:
		b.WriteString(errorStyle.Render(view.Message))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("press r to retry"))
		return b.String()
	case len(view.Results) == 0:
		b.WriteString(metaStyle.Render(output.SearchEmptyState(view.HasSearched)))
		return b.String()
	}

	end := min(s.offset+rows, len(view.Results))
	for i := s.offset; i < end; i++ {
		r := view.Results[i]
		b.WriteString(renderCard(&r.Entity, r.Kind.Label(), i == s.cursor, width, s.opts))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *searchScreen) renderKinds() string {
	parts := make([]string, 0, len(searchKinds))
	for _, k := range searchKinds {
		if k == s.kind {
			parts = append(parts, categoryStyle.Render("["+k.Label()+"]"))
			continue
		}
		parts = append(parts, metaStyle.Render(k.Label()))
	}
	return "Type: " + strings.Join(parts, " ")
}
