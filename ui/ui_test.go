package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/library"
	"github.com/s0up4200/cinescope/output"
	"github.com/s0up4200/cinescope/tmdb"
)

// fakeAPI serves numbered titles and records every call
type fakeAPI struct {
	totalPages int
	listErr    error
	searchErr  error
	detailErr  error

	listCalls   []string
	searchCalls int
	detailCalls int
}

func (f *fakeAPI) FetchList(_ context.Context, kind tmdb.Kind, category string, page int) (*tmdb.ListPage, error) {
	f.listCalls = append(f.listCalls, string(kind)+"/"+category)
	if f.listErr != nil {
		return nil, f.listErr
	}
	results := make([]tmdb.Entity, 20)
	for i := range results {
		id := (page-1)*20 + i + 1
		results[i] = tmdb.Entity{ID: id, Title: "Title"}
	}
	return &tmdb.ListPage{Page: page, TotalPages: f.totalPages, Results: results}, nil
}

func (f *fakeAPI) FetchSearch(_ context.Context, kind tmdb.Kind, query string) (*tmdb.SearchPage, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &tmdb.SearchPage{
		Page:       1,
		TotalPages: 1,
		Results: []tmdb.Entity{
			{ID: 603, Title: "The Matrix"},
			{ID: 604, Title: "The Matrix Reloaded"},
		},
	}, nil
}

func (f *fakeAPI) FetchDetail(_ context.Context, kind tmdb.Kind, id int) (*tmdb.DetailRecord, error) {
	f.detailCalls++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return &tmdb.DetailRecord{
		Entity: tmdb.Entity{ID: id, Title: "Fight Club", ReleaseDate: "1999-10-15"},
		Kind:   kind,
	}, nil
}

type fakeChecker struct {
	status library.Status
}

func (f *fakeChecker) Lookup(_ context.Context, tmdbID int) (library.Status, error) {
	s := f.status
	s.TMDBID = tmdbID
	return s, nil
}

func (f *fakeChecker) LookupMany(ctx context.Context, tmdbIDs []int) (map[int]library.Status, error) {
	out := make(map[int]library.Status, len(tmdbIDs))
	for _, id := range tmdbIDs {
		out[id], _ = f.Lookup(ctx, id)
	}
	return out, nil
}

func newTestApp(t *testing.T, api *fakeAPI, checker library.Checker) *App {
	t.Helper()
	app, err := New(context.Background(), Options{
		API:     api,
		Library: checker,
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return app
}

// run executes cmd and feeds the app's own messages back until nothing is left.
// Timers and input housekeeping messages are dropped.
func run(app *App, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case listMsg, searchMsg, detailMsg, libraryMsg, openDetailMsg:
			_, c := app.Update(msg)
			queue = append(queue, c)
		case spinner.TickMsg, nil:
		}
	}
}

func press(app *App, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := app.Update(msg)
	return cmd
}

func TestShouldRequestMore(t *testing.T) {
	tests := []struct {
		name    string
		cursor  int
		total   int
		visible int
		want    bool
	}{
		{"empty list", 0, 0, 10, false},
		{"list shorter than viewport", 0, 5, 10, true},
		{"far from end", 0, 40, 10, false},
		{"just outside threshold", 33, 40, 10, false},
		{"at threshold", 34, 40, 10, true},
		{"last item", 39, 40, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldRequestMore(tt.cursor, tt.total, tt.visible))
		})
	}
}

func TestScrollOffset(t *testing.T) {
	assert.Equal(t, 0, scrollOffset(3, 0, 10, 40))
	assert.Equal(t, 1, scrollOffset(10, 0, 10, 40))
	assert.Equal(t, 5, scrollOffset(5, 8, 10, 40))
	assert.Equal(t, 0, scrollOffset(2, 0, 10, 3))
}

func TestInitialLoadAndScrollPagination(t *testing.T) {
	api := &fakeAPI{totalPages: 3}
	app := newTestApp(t, api, nil)

	run(app, app.Init())
	require.Equal(t, []string{"movie/popular"}, api.listCalls)
	assert.Len(t, app.movies.ctrl.Snapshot().Items, 20)
	assert.Contains(t, app.View(), "‹ Popular ›")
	assert.Contains(t, app.View(), output.NoImage)

	rows := listRows(app.bodyHeight())
	require.Equal(t, 16, rows)

	// 20 items with 16 visible: the next page is due once 8 or fewer remain
	for range 10 {
		run(app, press(app, "j"))
	}
	assert.Len(t, api.listCalls, 1)

	run(app, press(app, "j"))
	assert.Len(t, api.listCalls, 2)
	assert.Len(t, app.movies.ctrl.Snapshot().Items, 40)
	assert.Equal(t, 11, app.movies.cursor)
}

func TestLastPageStopsPagination(t *testing.T) {
	api := &fakeAPI{totalPages: 1}
	app := newTestApp(t, api, nil)
	run(app, app.Init())

	for range 25 {
		run(app, press(app, "j"))
	}
	assert.Len(t, api.listCalls, 1)
	assert.Equal(t, 19, app.movies.cursor)
	assert.Contains(t, app.View(), "End of list")
}

func TestCategoryChange(t *testing.T) {
	api := &fakeAPI{totalPages: 3}
	app := newTestApp(t, api, nil)
	run(app, app.Init())
	run(app, press(app, "j"))

	run(app, press(app, "c"))
	assert.Equal(t, []string{"movie/popular", "movie/top_rated"}, api.listCalls)
	assert.Equal(t, "top_rated", app.movies.ctrl.Category())
	assert.Equal(t, 0, app.movies.cursor)
	assert.Len(t, app.movies.ctrl.Snapshot().Items, 20)
}

func TestTVTabLoadsOnFirstVisit(t *testing.T) {
	api := &fakeAPI{totalPages: 1}
	app := newTestApp(t, api, nil)
	run(app, app.Init())

	run(app, press(app, "3"))
	assert.Equal(t, tabTV, app.active)
	assert.Equal(t, []string{"movie/popular", "tv/popular"}, api.listCalls)

	run(app, press(app, "1"))
	run(app, press(app, "3"))
	assert.Len(t, api.listCalls, 2)
}

func TestListFailureAndRetry(t *testing.T) {
	api := &fakeAPI{totalPages: 1, listErr: errors.New("boom")}
	app := newTestApp(t, api, nil)
	run(app, app.Init())

	assert.Equal(t, browse.ListErrored, app.movies.ctrl.State())
	assert.Contains(t, app.View(), listErrorText)

	api.listErr = nil
	run(app, press(app, "r"))
	assert.Equal(t, browse.ListLoaded, app.movies.ctrl.State())
	assert.Len(t, app.movies.ctrl.Snapshot().Items, 20)
	assert.Len(t, api.listCalls, 2)
}

func TestOpenDetailAndBack(t *testing.T) {
	api := &fakeAPI{totalPages: 1}
	app := newTestApp(t, api, nil)
	run(app, app.Init())

	run(app, press(app, "enter"))
	require.Len(t, app.stack, 1)
	assert.Equal(t, 1, api.detailCalls)

	view := app.View()
	assert.Contains(t, view, "Fight Club (1999)")
	assert.Contains(t, view, output.NoImage)
	assert.Contains(t, view, "› Title")

	run(app, press(app, "esc"))
	assert.Empty(t, app.stack)
	assert.Contains(t, app.View(), "‹ Popular ›")
}

func TestDetailFailureAndRetry(t *testing.T) {
	api := &fakeAPI{totalPages: 1, detailErr: &tmdb.APIError{StatusCode: 404, Message: "not found"}}
	app := newTestApp(t, api, nil)
	run(app, app.Init())

	run(app, press(app, "enter"))
	assert.Contains(t, app.View(), browse.MessageDetailNotFound)

	api.detailErr = nil
	run(app, press(app, "r"))
	assert.Equal(t, 2, api.detailCalls)
	assert.Contains(t, app.View(), "Fight Club")
}

func TestDetailShowsLibraryStatus(t *testing.T) {
	api := &fakeAPI{totalPages: 1}
	app := newTestApp(t, api, &fakeChecker{status: library.Status{InLibrary: true, HasFile: true}})
	run(app, app.Init())

	run(app, press(app, "enter"))
	assert.Contains(t, app.View(), "Library: In library")
}

func TestResultsForClosedScreensAreDropped(t *testing.T) {
	api := &fakeAPI{totalPages: 1}
	app := newTestApp(t, api, nil)
	run(app, app.Init())

	// the detail load is still outstanding when the screen is popped
	_, cmd := app.Update(openDetailMsg{kind: tmdb.KindMovie, id: 550, title: "Fight Club"})
	require.Len(t, app.stack, 1)
	closed := app.stack[0]

	run(app, press(app, "esc"))
	require.Empty(t, app.stack)

	run(app, cmd)
	assert.Equal(t, 1, api.detailCalls)
	assert.Empty(t, app.stack)
	assert.Equal(t, browse.DetailLoading, closed.ctrl.State())

	// results addressed to unknown screens change nothing
	before := app.movies.ctrl.Snapshot()
	app.Update(listMsg{screen: uuid.New()})
	app.Update(searchMsg{screen: uuid.New()})
	app.Update(detailMsg{screen: uuid.New()})
	assert.Equal(t, before, app.movies.ctrl.Snapshot())
}

func TestSearchValidation(t *testing.T) {
	api := &fakeAPI{totalPages: 1}
	app := newTestApp(t, api, nil)
	run(app, app.Init())

	run(app, press(app, "2"))
	require.Equal(t, tabSearch, app.active)
	assert.Contains(t, app.View(), output.SearchPrompt)

	run(app, press(app, "enter"))
	assert.Equal(t, 0, api.searchCalls)
	assert.Contains(t, app.View(), browse.MessageQueryRequired)

	app.search.input.SetValue("  Matrix ")
	run(app, press(app, "enter"))
	assert.Equal(t, 1, api.searchCalls)
	assert.False(t, app.search.typing())

	view := app.View()
	assert.Contains(t, view, "The Matrix Reloaded")
	assert.Contains(t, view, "[Movie] The Matrix")
	assert.NotContains(t, view, browse.MessageQueryRequired)

	// with the input blurred, global keys work again
	run(app, press(app, "j"))
	assert.Equal(t, 1, app.search.cursor)
	run(app, press(app, "enter"))
	require.Len(t, app.stack, 1)
	assert.Equal(t, 604, app.stack[0].entityID)
}

func TestSearchTypingCapturesKeys(t *testing.T) {
	api := &fakeAPI{totalPages: 1}
	app := newTestApp(t, api, nil)
	run(app, app.Init())
	run(app, press(app, "2"))

	// "q" and "1" are text while the query has focus
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.False(t, app.quitting)
	assert.Equal(t, tabSearch, app.active)

	run(app, press(app, "tab"))
	assert.Equal(t, tmdb.KindTV, app.search.kind)
	run(app, press(app, "tab"))
	assert.Equal(t, tmdb.KindMulti, app.search.kind)
	run(app, press(app, "tab"))
	assert.Equal(t, tmdb.KindMovie, app.search.kind)

	run(app, press(app, "esc"))
	assert.False(t, app.search.typing())
	run(app, press(app, "1"))
	assert.Equal(t, tabMovies, app.active)
}

func TestSearchFailureAndRetry(t *testing.T) {
	api := &fakeAPI{totalPages: 1, searchErr: errors.New("boom")}
	app := newTestApp(t, api, nil)
	run(app, app.Init())
	run(app, press(app, "2"))

	app.search.input.SetValue("Matrix")
	run(app, press(app, "enter"))
	assert.Contains(t, app.View(), browse.MessageSearchFailed)

	api.searchErr = nil
	run(app, press(app, "r"))
	assert.Equal(t, 2, api.searchCalls)
	assert.Contains(t, app.View(), "The Matrix")
}

func TestQuitClosesControllers(t *testing.T) {
	api := &fakeAPI{totalPages: 1}
	app := newTestApp(t, api, nil)
	run(app, app.Init())
	run(app, press(app, "enter"))
	detail := app.stack[0]

	cmd := press(app, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, app.movies.ctrl.Closed())
	assert.Empty(t, app.stack)
	assert.Equal(t, browse.DetailLoaded, detail.ctrl.State())
	assert.Empty(t, app.View())
}

func TestNewRequiresAPI(t *testing.T) {
	_, err := New(context.Background(), Options{Logger: zerolog.Nop()})
	assert.Error(t, err)
}
