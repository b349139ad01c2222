package browse

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinescope/tmdb"
)

// DetailSource retrieves single records
type DetailSource interface {
	FetchDetail(ctx context.Context, kind tmdb.Kind, id int) (*tmdb.DetailRecord, error)
}

// DetailFetch describes a detail load decided by a DetailController
type DetailFetch struct {
	Kind tmdb.Kind
	ID   int

	seq    uint64
	source DetailSource
}

// Run performs the fetch
func (f *DetailFetch) Run(ctx context.Context) DetailOutcome {
	record, err := f.source.FetchDetail(ctx, f.Kind, f.ID)
	return DetailOutcome{Fetch: f, Record: record, Err: err}
}

// DetailOutcome is the completed result of a DetailFetch
type DetailOutcome struct {
	Fetch  *DetailFetch
	Record *tmdb.DetailRecord
	Err    error
}

// DetailView is a read-only snapshot of a detail controller
type DetailView struct {
	Kind    tmdb.Kind
	ID      int
	State   DetailState
	Record  *tmdb.DetailRecord
	Message string
	Err     error
}

// DetailController loads one movie or TV show
type DetailController struct {
	source DetailSource
	logger zerolog.Logger

	kind    tmdb.Kind
	id      int
	state   DetailState
	record  *tmdb.DetailRecord
	message string
	err     error

	seq      uint64
	inflight *DetailFetch
	closed   bool
}

// NewDetailController creates a detail controller
func NewDetailController(source DetailSource, logger zerolog.Logger) *DetailController {
	return &DetailController{
		source: source,
		logger: logger.With().Str("component", "detail").Logger(),
	}
}

// State returns the current state
func (c *DetailController) State() DetailState {
	return c.state
}

// Load starts loading (kind, id). It is a no-op while a load is in flight or after Close.
func (c *DetailController) Load(kind tmdb.Kind, id int) (*DetailFetch, bool) {
	if c.closed || c.state == DetailLoading {
		return nil, false
	}

	c.kind = kind
	c.id = id
	c.state = DetailLoading
	c.record = nil
	c.message = ""
	c.err = nil
	c.seq++

	fetch := &DetailFetch{Kind: kind, ID: id, seq: c.seq, source: c.source}
	c.inflight = fetch
	return fetch, true
}

// Retry reloads the last requested record after a failure
func (c *DetailController) Retry() (*DetailFetch, bool) {
	if c.state != DetailFailed {
		return nil, false
	}
	return c.Load(c.kind, c.id)
}

// Resolve applies a completed load. Outcomes other than the in-flight one are ignored.
func (c *DetailController) Resolve(outcome DetailOutcome) {
	if c.closed || outcome.Fetch == nil || outcome.Fetch != c.inflight || outcome.Fetch.seq != c.seq {
		return
	}
	c.inflight = nil

	if outcome.Err == nil && outcome.Record == nil {
		outcome.Err = fmt.Errorf("%w: empty detail record", tmdb.ErrMalformedPayload)
	}

	if outcome.Err != nil {
		c.state = DetailFailed
		c.err = outcome.Err
		c.message = MessageDetailFailed
		if tmdb.IsNotFound(outcome.Err) {
			c.message = MessageDetailNotFound
		}
		c.logger.Warn().
			Err(outcome.Err).
			Str("kind", string(outcome.Fetch.Kind)).
			Int("id", outcome.Fetch.ID).
			Msg("Failed to load details")
		return
	}

	c.record = outcome.Record
	c.state = DetailLoaded
}

// Fetch synchronously loads (kind, id)
func (c *DetailController) Fetch(ctx context.Context, kind tmdb.Kind, id int) (DetailView, error) {
	fetch, ok := c.Load(kind, id)
	if !ok {
		if c.closed {
			return c.Snapshot(), ErrClosed
		}
		return c.Snapshot(), nil
	}
	outcome := fetch.Run(ctx)
	c.Resolve(outcome)
	return c.Snapshot(), c.err
}

// Snapshot returns the controller state for rendering
func (c *DetailController) Snapshot() DetailView {
	return DetailView{
		Kind:    c.kind,
		ID:      c.id,
		State:   c.state,
		Record:  c.record,
		Message: c.message,
		Err:     c.err,
	}
}

// Close tears the controller down; later outcomes are ignored
func (c *DetailController) Close() {
	c.closed = true
	c.inflight = nil
}
