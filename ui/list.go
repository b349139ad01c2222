package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/output"
	"github.com/s0up4200/cinescope/tmdb"
)

const listErrorText = "Could not load titles."

// listScreen shows one categorized, paginated resource
type listScreen struct {
	id      uuid.UUID
	ctrl    *browse.ListController[tmdb.Entity]
	opts    *Options
	initial string
	started bool

	cursor int
	offset int
}

func newListScreen(resource browse.Resource, category string, opts *Options) *listScreen {
	return &listScreen{
		id:      uuid.New(),
		ctrl:    browse.NewEntityList(opts.API, resource, opts.Logger),
		opts:    opts,
		initial: category,
	}
}

// start loads the first page the first time the screen is shown
func (s *listScreen) start(ctx context.Context) tea.Cmd {
	if s.started {
		return nil
	}
	s.started = true

	if s.initial != "" {
		fetch, err := s.ctrl.SelectCategory(s.initial)
		if err == nil {
			return listCmd(ctx, s.id, fetch)
		}
		s.opts.Logger.Warn().Err(err).Str("category", s.initial).Msg("Falling back to default category")
	}
	return listCmd(ctx, s.id, s.ctrl.Start())
}

// listRows returns how many cards fit into a body of the given height
func listRows(height int) int {
	return max((height-3)/cardHeight, 1)
}

func (s *listScreen) update(ctx context.Context, msg tea.KeyMsg, rows int) tea.Cmd {
	view := s.ctrl.Snapshot()

	switch {
	case key.Matches(msg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
		s.offset = scrollOffset(s.cursor, s.offset, rows, len(view.Items))
		return nil

	case key.Matches(msg, keys.Down):
		if s.cursor < len(view.Items)-1 {
			s.cursor++
		}
		s.offset = scrollOffset(s.cursor, s.offset, rows, len(view.Items))
		return s.maybeLoadMore(ctx, rows)

	case key.Matches(msg, keys.NextCat):
		return s.selectCategory(ctx, 1)

	case key.Matches(msg, keys.PrevCat):
		return s.selectCategory(ctx, -1)

	case key.Matches(msg, keys.Retry):
		return s.retry(ctx, view)

	case key.Matches(msg, keys.Open):
		if s.cursor < len(view.Items) {
			e := view.Items[s.cursor]
			return openDetail(view.Kind, e.ID, e.DisplayName())
		}
	}
	return nil
}

func (s *listScreen) selectCategory(ctx context.Context, step int) tea.Cmd {
	next := s.ctrl.Resource().Next(s.ctrl.Category(), step)
	fetch, err := s.ctrl.SelectCategory(next.ID)
	if err != nil {
		s.opts.Logger.Error().Err(err).Str("category", next.ID).Msg("Failed to change category")
		return nil
	}
	s.started = true
	s.cursor = 0
	s.offset = 0
	return listCmd(ctx, s.id, fetch)
}

func (s *listScreen) retry(ctx context.Context, view browse.ListView[tmdb.Entity]) tea.Cmd {
	if view.State != browse.ListErrored {
		return nil
	}
	if len(view.Items) == 0 {
		fetch, err := s.ctrl.SelectCategory(view.Category)
		if err != nil {
			return nil
		}
		return listCmd(ctx, s.id, fetch)
	}
	fetch, ok := s.ctrl.RequestMore()
	if !ok {
		return nil
	}
	return listCmd(ctx, s.id, fetch)
}

// maybeLoadMore requests the next page when the cursor nears the end.
// Failed pages are only retried on request.
func (s *listScreen) maybeLoadMore(ctx context.Context, rows int) tea.Cmd {
	view := s.ctrl.Snapshot()
	if view.State != browse.ListLoaded || !shouldRequestMore(s.cursor, len(view.Items), rows) {
		return nil
	}
	fetch, ok := s.ctrl.RequestMore()
	if !ok {
		return nil
	}
	return listCmd(ctx, s.id, fetch)
}

func (s *listScreen) resolve(ctx context.Context, outcome browse.ListOutcome[tmdb.Entity], rows int) tea.Cmd {
	if next := s.ctrl.Resolve(outcome); next != nil {
		return listCmd(ctx, s.id, next)
	}
	return s.maybeLoadMore(ctx, rows)
}

func (s *listScreen) close() {
	s.ctrl.Close()
}

func (s *listScreen) view(width, rows int, spin string) string {
	view := s.ctrl.Snapshot()
	var b strings.Builder

	b.WriteString(s.renderCategories(view.Category))
	b.WriteString("\n\n")

	if len(view.Items) == 0 {
		switch view.State {
		case browse.ListIdle, browse.ListLoading:
			b.WriteString(spin + " Loading " + view.CategoryLabel + "...")
		case browse.ListErrored:
			b.WriteString(errorStyle.Render(listErrorText))
			b.WriteString("\n")
			b.WriteString(helpStyle.Render("press r to retry"))
		default:
			b.WriteString(metaStyle.Render(output.EmptyList))
		}
		return b.String()
	}

	end := min(s.offset+rows, len(view.Items))
	for i := s.offset; i < end; i++ {
		b.WriteString(renderCard(&view.Items[i], "", i == s.cursor, width, s.opts))
		b.WriteString("\n")
	}

	switch {
	case view.State == browse.ListLoading:
		b.WriteString(spin + " Loading more...")
	case view.State == browse.ListErrored:
		b.WriteString(errorStyle.Render(listErrorText) + " " + helpStyle.Render("press r to retry"))
	case !view.HasMore:
		b.WriteString(metaStyle.Render("End of list"))
	}
	return b.String()
}

func (s *listScreen) renderCategories(current string) string {
	resource := s.ctrl.Resource()
	parts := make([]string, 0, len(resource.Categories))
	for _, cat := range resource.Categories {
		if cat.ID == current {
			parts = append(parts, categoryStyle.Render("‹ "+cat.Label+" ›"))
			continue
		}
		parts = append(parts, metaStyle.Render(cat.Label))
	}
	return strings.Join(parts, "  ")
}
