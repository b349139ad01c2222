// Package ui implements the interactive terminal browser: Movies, Search and
// TV Shows tabs with a stack of detail screens on top.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/library"
	"github.com/s0up4200/cinescope/tmdb"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// header (tabs + blank) and footer (blank + help)
	chromeHeight = 4
)

type tab int

const (
	tabMovies tab = iota
	tabSearch
	tabTV
)

var tabNames = []string{"Movies", "Search", "TV Shows"}

// Options configures the browser
type Options struct {
	API     tmdb.API
	Library library.Checker

	MovieCategory string
	TVCategory    string
	SearchKind    tmdb.Kind

	ImageBaseURL string
	PosterSize   string

	Logger zerolog.Logger
}

// App is the root bubbletea model
type App struct {
	ctx  context.Context
	opts *Options

	movies *listScreen
	search *searchScreen
	tv     *listScreen
	stack  []*detailScreen
	active tab

	spinner  spinner.Model
	width    int
	height   int
	quitting bool
}

// New creates the browser model
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.API == nil {
		return nil, errors.New("ui: TMDB API is required")
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	o := &opts
	return &App{
		ctx:     ctx,
		opts:    o,
		movies:  newListScreen(browse.MovieResource, o.MovieCategory, o),
		search:  newSearchScreen(o),
		tv:      newListScreen(browse.TVResource, o.TVCategory, o),
		spinner: sp,
		width:   defaultWidth,
		height:  defaultHeight,
	}, nil
}

// Run starts the browser and blocks until the user quits or ctx is cancelled
func Run(ctx context.Context, opts Options) error {
	app, err := New(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running browser: %w", err)
	}
	return nil
}

// Init starts the spinner, the cursor blink and the first Movies page
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, textinput.Blink, a.movies.start(a.ctx))
}

func (a *App) bodyHeight() int {
	return max(a.height-chromeHeight, 1)
}

// Update routes messages to the screen they belong to
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, d := range a.stack {
			d.resize(a.contentWidth(), a.bodyHeight())
		}
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case listMsg:
		s := a.listByID(msg.screen)
		if s == nil {
			a.dropped("list", msg.screen)
			return a, nil
		}
		return a, s.resolve(a.ctx, msg.outcome, listRows(a.bodyHeight()))

	case searchMsg:
		if msg.screen != a.search.id {
			a.dropped("search", msg.screen)
			return a, nil
		}
		a.search.resolve(msg.outcome)
		return a, nil

	case detailMsg:
		d := a.detailByID(msg.screen)
		if d == nil {
			a.dropped("detail", msg.screen)
			return a, nil
		}
		d.resolve(msg.outcome)
		return a, nil

	case libraryMsg:
		if d := a.detailByID(msg.screen); d != nil {
			d.setLibrary(msg.status, msg.err)
		}
		return a, nil

	case openDetailMsg:
		return a, a.pushDetail(msg)
	}

	// cursor blink and other input housekeeping
	var cmd tea.Cmd
	a.search.input, cmd = a.search.input.Update(msg)
	return a, cmd
}

func (a *App) dropped(kind string, screen uuid.UUID) {
	a.opts.Logger.Debug().Str("message", kind).Str("screen", screen.String()).Msg("Dropping result for closed screen")
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.ForceQuit) {
		return a.quit()
	}

	if top := a.top(); top != nil {
		switch {
		case key.Matches(msg, keys.Back):
			a.popDetail()
			return nil
		case key.Matches(msg, keys.Quit):
			return a.quit()
		}
		return top.update(a.ctx, msg)
	}

	if a.active == tabSearch && a.search.typing() {
		return a.search.update(a.ctx, msg, searchRows(a.bodyHeight()))
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a.quit()
	case key.Matches(msg, keys.Movies):
		return a.switchTab(tabMovies)
	case key.Matches(msg, keys.Search):
		return a.switchTab(tabSearch)
	case key.Matches(msg, keys.TV):
		return a.switchTab(tabTV)
	}

	switch a.active {
	case tabMovies:
		return a.movies.update(a.ctx, msg, listRows(a.bodyHeight()))
	case tabTV:
		return a.tv.update(a.ctx, msg, listRows(a.bodyHeight()))
	default:
		return a.search.update(a.ctx, msg, searchRows(a.bodyHeight()))
	}
}

func (a *App) switchTab(t tab) tea.Cmd {
	a.active = t
	switch t {
	case tabMovies:
		return a.movies.start(a.ctx)
	case tabTV:
		return a.tv.start(a.ctx)
	}
	return nil
}

func (a *App) pushDetail(msg openDetailMsg) tea.Cmd {
	d := newDetailScreen(msg, a.opts, a.contentWidth(), a.bodyHeight())
	a.stack = append(a.stack, d)
	return d.open(a.ctx)
}

func (a *App) popDetail() {
	if len(a.stack) == 0 {
		return
	}
	top := a.stack[len(a.stack)-1]
	top.close()
	a.stack = a.stack[:len(a.stack)-1]
}

func (a *App) top() *detailScreen {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

func (a *App) quit() tea.Cmd {
	a.quitting = true
	for len(a.stack) > 0 {
		a.popDetail()
	}
	a.movies.close()
	a.tv.close()
	a.search.close()
	return tea.Quit
}

func (a *App) listByID(id uuid.UUID) *listScreen {
	switch id {
	case a.movies.id:
		return a.movies
	case a.tv.id:
		return a.tv
	}
	return nil
}

func (a *App) detailByID(id uuid.UUID) *detailScreen {
	for _, d := range a.stack {
		if d.id == id {
			return d
		}
	}
	return nil
}

func (a *App) contentWidth() int {
	return max(a.width-2, 20)
}

// View renders the active tab or the top detail screen
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")

	spin := a.spinner.View()
	width := a.contentWidth()
	switch {
	case a.top() != nil:
		b.WriteString(a.top().view(spin))
	case a.active == tabMovies:
		b.WriteString(a.movies.view(width, listRows(a.bodyHeight()), spin))
	case a.active == tabTV:
		b.WriteString(a.tv.view(width, listRows(a.bodyHeight()), spin))
	default:
		b.WriteString(a.search.view(width, searchRows(a.bodyHeight()), spin))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(a.helpText()))
	return appStyle.Render(b.String())
}

func (a *App) renderHeader() string {
	parts := make([]string, 0, len(tabNames)+1)
	parts = append(parts, titleStyle.Render("cinescope"))
	for i, name := range tabNames {
		if tab(i) == a.active {
			parts = append(parts, activeTabStyle.Render(name))
			continue
		}
		parts = append(parts, tabStyle.Render(name))
	}
	header := strings.Join(parts, " ")

	if top := a.top(); top != nil {
		header += metaStyle.Render(" › " + top.title)
	}
	return header
}

func (a *App) helpText() string {
	switch {
	case a.top() != nil:
		return "↑/↓ scroll • r retry • esc back • q quit"
	case a.active == tabSearch && a.search.typing():
		return "enter search • tab type • esc results"
	case a.active == tabSearch:
		return "↑/↓ move • enter details • / edit query • tab type • r retry • 1-3 tabs • q quit"
	default:
		return "↑/↓ move • ←/→ category • enter details • r retry • 1-3 tabs • q quit"
	}
}
