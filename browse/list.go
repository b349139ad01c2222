package browse

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinescope/tmdb"
)

// Page is one page of entities from a page source
type Page[E any] struct {
	Number     int
	TotalPages int
	Items      []E

	// Received is the number of records the service returned before any were
	// dropped. Zero means len(Items).
	Received int
}

func (p Page[E]) received() int {
	return max(p.Received, len(p.Items))
}

// PageSource fetches one page of a category
type PageSource[E any] interface {
	FetchPage(ctx context.Context, category string, page int) (Page[E], error)
}

// PageSourceFunc adapts a function to PageSource
type PageSourceFunc[E any] func(ctx context.Context, category string, page int) (Page[E], error)

// FetchPage implements PageSource
func (f PageSourceFunc[E]) FetchPage(ctx context.Context, category string, page int) (Page[E], error) {
	return f(ctx, category, page)
}

// EntityPages returns a PageSource backed by the TMDB list endpoints of kind
func EntityPages(api tmdb.API, kind tmdb.Kind) PageSource[tmdb.Entity] {
	return PageSourceFunc[tmdb.Entity](func(ctx context.Context, category string, page int) (Page[tmdb.Entity], error) {
		lp, err := api.FetchList(ctx, kind, category, page)
		if err != nil {
			return Page[tmdb.Entity]{}, err
		}
		return Page[tmdb.Entity]{
			Number:     lp.Page,
			TotalPages: lp.TotalPages,
			Items:      lp.Results,
			Received:   lp.Received,
		}, nil
	})
}

// ListFetch describes a page fetch decided by a ListController.
// Run it off the event loop and hand the outcome back to Resolve.
type ListFetch[E any] struct {
	Category string
	Page     int
	Reset    bool

	seq    uint64
	source PageSource[E]
}

// Run performs the fetch
func (f *ListFetch[E]) Run(ctx context.Context) ListOutcome[E] {
	page, err := f.source.FetchPage(ctx, f.Category, f.Page)
	return ListOutcome[E]{Fetch: f, Page: page, Err: err}
}

// ListOutcome is the completed result of a ListFetch
type ListOutcome[E any] struct {
	Fetch *ListFetch[E]
	Page  Page[E]
	Err   error
}

// ListView is a read-only snapshot of a list controller
type ListView[E any] struct {
	Kind          tmdb.Kind
	Category      string
	CategoryLabel string
	Items         []E
	State         ListState
	Err           error
	Failure       tmdb.Failure
	HasMore       bool
	NextPage      int
}

// ListController drives a paginated, categorized list. It is not safe for
// concurrent use; every method is expected to run on the caller's event loop.
type ListController[E any] struct {
	resource Resource
	source   PageSource[E]
	logger   zerolog.Logger

	category string
	items    []E
	cursor   int
	hasMore  bool
	state    ListState
	err      error

	seq      uint64
	inflight *ListFetch[E]
	pending  *ListFetch[E]
	closed   bool
}

// NewListController creates a controller for resource starting at its default category
func NewListController[E any](resource Resource, source PageSource[E], logger zerolog.Logger) *ListController[E] {
	return &ListController[E]{
		resource: resource,
		source:   source,
		logger:   logger.With().Str("component", "list").Str("resource", string(resource.Kind)).Logger(),
		category: resource.Default,
		cursor:   1,
		hasMore:  true,
	}
}

// NewEntityList creates a list controller for TMDB movies or TV shows
func NewEntityList(api tmdb.API, resource Resource, logger zerolog.Logger) *ListController[tmdb.Entity] {
	return NewListController(resource, EntityPages(api, resource.Kind), logger)
}

// Resource returns the resource the controller lists
func (c *ListController[E]) Resource() Resource {
	return c.resource
}

// Category returns the selected category id
func (c *ListController[E]) Category() string {
	return c.category
}

// State returns the current state
func (c *ListController[E]) State() ListState {
	return c.state
}

// SelectCategory discards the loaded pages and starts a reset fetch for category.
// When a fetch is already in flight it is superseded and the reset fetch is
// handed out by Resolve once that fetch completes, so the returned fetch may be nil.
func (c *ListController[E]) SelectCategory(category string) (*ListFetch[E], error) {
	if c.closed {
		return nil, ErrClosed
	}
	cat, ok := c.resource.Lookup(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q for %s", ErrUnknownCategory, category, c.resource.Kind)
	}

	c.category = cat.ID
	c.items = nil
	c.cursor = 1
	c.hasMore = true
	c.err = nil
	c.seq++

	fetch := c.newFetch(true)

	if c.inflight != nil {
		c.logger.Debug().
			Str("category", cat.ID).
			Msg("Superseding in-flight fetch")
		c.pending = fetch
		c.state = ListLoading
		return nil, nil
	}

	c.state = ListLoading
	c.inflight = fetch
	return fetch, nil
}

// Start performs the reset fetch for the current category
func (c *ListController[E]) Start() *ListFetch[E] {
	fetch, err := c.SelectCategory(c.category)
	if err != nil {
		return nil
	}
	return fetch
}

// RequestMore starts the next page fetch. It is a no-op while loading, when no
// further pages remain, before the first load, or after Close.
func (c *ListController[E]) RequestMore() (*ListFetch[E], bool) {
	if c.closed || c.state == ListIdle || c.state == ListLoading || !c.hasMore {
		return nil, false
	}

	c.state = ListLoading
	c.err = nil
	fetch := c.newFetch(false)
	c.inflight = fetch
	return fetch, true
}

func (c *ListController[E]) newFetch(reset bool) *ListFetch[E] {
	return &ListFetch[E]{
		Category: c.category,
		Page:     c.cursor,
		Reset:    reset,
		seq:      c.seq,
		source:   c.source,
	}
}

// Resolve applies a completed fetch. Outcomes of superseded fetches are
// discarded; if a reset fetch was deferred behind one, it is returned.
func (c *ListController[E]) Resolve(outcome ListOutcome[E]) *ListFetch[E] {
	if c.closed || outcome.Fetch == nil || outcome.Fetch != c.inflight {
		return nil
	}
	c.inflight = nil

	if outcome.Fetch.seq != c.seq {
		c.logger.Debug().
			Str("category", outcome.Fetch.Category).
			Int("page", outcome.Fetch.Page).
			Msg("Discarding stale page")
		if next := c.pending; next != nil {
			c.pending = nil
			c.inflight = next
			return next
		}
		return nil
	}

	fetch := outcome.Fetch
	if outcome.Err != nil {
		c.state = ListErrored
		c.err = outcome.Err
		if fetch.Reset {
			c.items = nil
		}
		c.logger.Warn().
			Err(outcome.Err).
			Str("category", fetch.Category).
			Int("page", fetch.Page).
			Msg("Failed to load page")
		return nil
	}

	page := outcome.Page
	if fetch.Reset {
		c.items = append([]E(nil), page.Items...)
	} else {
		c.items = append(c.items, page.Items...)
	}

	number := page.Number
	if number == 0 {
		number = fetch.Page
	}
	switch {
	case page.received() == 0:
		c.hasMore = false
	case number >= page.TotalPages:
		c.cursor = number + 1
		c.hasMore = false
	default:
		c.cursor = number + 1
	}
	c.state = ListLoaded

	c.logger.Debug().
		Str("category", fetch.Category).
		Int("page", number).
		Int("total_pages", page.TotalPages).
		Int("items", len(c.items)).
		Bool("has_more", c.hasMore).
		Msg("Applied page")

	return nil
}

// Await runs fetch and resolves it, following any deferred fetch, and returns
// the error of the last applied outcome.
func (c *ListController[E]) Await(ctx context.Context, fetch *ListFetch[E]) error {
	var err error
	for fetch != nil {
		outcome := fetch.Run(ctx)
		err = outcome.Err
		fetch = c.Resolve(outcome)
	}
	return err
}

// Load selects category and synchronously loads its first page
func (c *ListController[E]) Load(ctx context.Context, category string) error {
	fetch, err := c.SelectCategory(category)
	if err != nil {
		return err
	}
	return c.Await(ctx, fetch)
}

// LoadMore synchronously loads the next page. It reports whether a fetch was made.
func (c *ListController[E]) LoadMore(ctx context.Context) (bool, error) {
	fetch, ok := c.RequestMore()
	if !ok {
		return false, nil
	}
	return true, c.Await(ctx, fetch)
}

// Snapshot returns a copy of the controller state for rendering
func (c *ListController[E]) Snapshot() ListView[E] {
	label := c.category
	if cat, ok := c.resource.Lookup(c.category); ok {
		label = cat.Label
	}
	return ListView[E]{
		Kind:          c.resource.Kind,
		Category:      c.category,
		CategoryLabel: label,
		Items:         append([]E(nil), c.items...),
		State:         c.state,
		Err:           c.err,
		Failure:       tmdb.Classify(c.err),
		HasMore:       c.hasMore,
		NextPage:      c.cursor,
	}
}

// Close tears the controller down; later outcomes are ignored
func (c *ListController[E]) Close() {
	c.closed = true
	c.inflight = nil
	c.pending = nil
}

// Closed reports whether Close was called
func (c *ListController[E]) Closed() bool {
	return c.closed
}
