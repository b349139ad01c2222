package ui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/library"
	"github.com/s0up4200/cinescope/output"
	"github.com/s0up4200/cinescope/tmdb"
)

// detailScreen shows one movie or TV show
type detailScreen struct {
	id       uuid.UUID
	ctrl     *browse.DetailController
	opts     *Options
	kind     tmdb.Kind
	entityID int
	title    string

	viewport viewport.Model
	width    int
	library  string
}

func newDetailScreen(msg openDetailMsg, opts *Options, width, height int) *detailScreen {
	d := &detailScreen{
		id:       uuid.New(),
		ctrl:     browse.NewDetailController(opts.API, opts.Logger),
		opts:     opts,
		kind:     msg.kind,
		entityID: msg.id,
		title:    msg.title,
		viewport: viewport.New(width, height),
		width:    width,
	}
	return d
}

// open starts the detail load and, for movies, the library lookup
func (d *detailScreen) open(ctx context.Context) tea.Cmd {
	fetch, _ := d.ctrl.Load(d.kind, d.entityID)
	cmds := []tea.Cmd{detailCmd(ctx, d.id, fetch)}
	if d.opts.Library != nil && d.kind == tmdb.KindMovie {
		cmds = append(cmds, libraryCmd(ctx, d.id, d.opts.Library, d.entityID))
	}
	return tea.Batch(cmds...)
}

func (d *detailScreen) resize(width, height int) {
	d.width = width
	d.viewport.Width = width
	d.viewport.Height = height
	d.refresh()
}

func (d *detailScreen) update(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Retry) {
		fetch, ok := d.ctrl.Retry()
		if !ok {
			return nil
		}
		return detailCmd(ctx, d.id, fetch)
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

func (d *detailScreen) resolve(outcome browse.DetailOutcome) {
	d.ctrl.Resolve(outcome)
	d.refresh()
}

func (d *detailScreen) setLibrary(status library.Status, err error) {
	if err != nil {
		d.opts.Logger.Warn().Err(err).Int("tmdb_id", d.entityID).Msg("Library lookup failed")
		d.library = "unknown"
	} else {
		d.library = status.Label()
	}
	d.refresh()
}

func (d *detailScreen) refresh() {
	view := d.ctrl.Snapshot()
	if view.State != browse.DetailLoaded || view.Record == nil {
		return
	}

	opts := output.FormatOptions{
		ImageBaseURL: d.opts.ImageBaseURL,
		PosterSize:   d.opts.PosterSize,
		ShowPosters:  true,
	}
	if d.library != "" {
		opts.Annotations = map[int]string{view.Record.ID: d.library}
	}

	printer := output.NewPrinterWithWriters(io.Discard, io.Discard, false)
	content := output.NewConsoleFormatter(printer, opts).FormatDetail(view.Record)
	content = strings.TrimLeft(content, "\n")
	if d.width > 0 {
		content = lipgloss.NewStyle().Width(d.width).Render(content)
	}
	d.viewport.SetContent(content)
}

func (d *detailScreen) close() {
	d.ctrl.Close()
}

func (d *detailScreen) view(spin string) string {
	view := d.ctrl.Snapshot()
	switch view.State {
	case browse.DetailLoaded:
		return d.viewport.View()
	case browse.DetailFailed:
		return errorStyle.Render(view.Message) + "\n" + helpStyle.Render("press r to retry · esc to go back")
	default:
		return spin + " Loading details..."
	}
}
