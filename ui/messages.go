package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/library"
	"github.com/s0up4200/cinescope/tmdb"
)

// Every async result carries the id of the screen that asked for it.
// Results for screens that are gone are dropped by the app.

type listMsg struct {
	screen  uuid.UUID
	outcome browse.ListOutcome[tmdb.Entity]
}

type searchMsg struct {
	screen  uuid.UUID
	outcome browse.SearchOutcome
}

type detailMsg struct {
	screen  uuid.UUID
	outcome browse.DetailOutcome
}

type libraryMsg struct {
	screen uuid.UUID
	status library.Status
	err    error
}

// openDetailMsg asks the app to push a detail screen
type openDetailMsg struct {
	kind  tmdb.Kind
	id    int
	title string
}

func listCmd(ctx context.Context, screen uuid.UUID, fetch *browse.ListFetch[tmdb.Entity]) tea.Cmd {
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		return listMsg{screen: screen, outcome: fetch.Run(ctx)}
	}
}

func searchCmd(ctx context.Context, screen uuid.UUID, fetch *browse.SearchFetch) tea.Cmd {
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		return searchMsg{screen: screen, outcome: fetch.Run(ctx)}
	}
}

func detailCmd(ctx context.Context, screen uuid.UUID, fetch *browse.DetailFetch) tea.Cmd {
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		return detailMsg{screen: screen, outcome: fetch.Run(ctx)}
	}
}

func libraryCmd(ctx context.Context, screen uuid.UUID, checker library.Checker, tmdbID int) tea.Cmd {
	return func() tea.Msg {
		status, err := checker.Lookup(ctx, tmdbID)
		return libraryMsg{screen: screen, status: status, err: err}
	}
}

func openDetail(kind tmdb.Kind, id int, title string) tea.Cmd {
	return func() tea.Msg {
		return openDetailMsg{kind: kind, id: id, title: title}
	}
}
