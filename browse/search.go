package browse

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinescope/tmdb"
)

// Validation field names
const (
	FieldQuery = "query"
	FieldKind  = "kind"
)

// mediaTypePerson marks people in multi search results
const mediaTypePerson = "person"

// SearchSource runs title searches
type SearchSource interface {
	FetchSearch(ctx context.Context, kind tmdb.Kind, query string) (*tmdb.SearchPage, error)
}

// SearchQuery is the user's search input
type SearchQuery struct {
	Text string
	Kind tmdb.Kind
}

// ValidationResult holds one message per invalid field
type ValidationResult struct {
	Errors map[string]string
}

// Valid reports whether no field failed validation
func (v ValidationResult) Valid() bool {
	return len(v.Errors) == 0
}

// Field returns the message for field, or an empty string
func (v ValidationResult) Field(field string) string {
	return v.Errors[field]
}

// SearchResult is an entity tagged with the kind used to open its details
type SearchResult struct {
	tmdb.Entity
	Kind tmdb.Kind
}

// SearchFetch describes a search decided by a SearchController
type SearchFetch struct {
	Query SearchQuery

	seq    uint64
	source SearchSource
}

// Run performs the search
func (f *SearchFetch) Run(ctx context.Context) SearchOutcome {
	page, err := f.source.FetchSearch(ctx, f.Query.Kind, f.Query.Text)
	return SearchOutcome{Fetch: f, Page: page, Err: err}
}

// SearchOutcome is the completed result of a SearchFetch
type SearchOutcome struct {
	Fetch *SearchFetch
	Page  *tmdb.SearchPage
	Err   error
}

// SearchView is a read-only snapshot of a search controller
type SearchView struct {
	Query       SearchQuery
	State       SearchState
	Results     []SearchResult
	HasSearched bool
	Message     string
	Err         error
	Validation  ValidationResult
}

// SearchController drives a single-shot title search
type SearchController struct {
	source SearchSource
	logger zerolog.Logger

	query       SearchQuery
	state       SearchState
	results     []SearchResult
	hasSearched bool
	message     string
	err         error
	validation  ValidationResult

	seq      uint64
	inflight *SearchFetch
	closed   bool
}

// NewSearchController creates a search controller
func NewSearchController(source SearchSource, logger zerolog.Logger) *SearchController {
	return &SearchController{
		source: source,
		logger: logger.With().Str("component", "search").Logger(),
	}
}

// Validate checks every field of q
func Validate(q SearchQuery) ValidationResult {
	errs := make(map[string]string)
	if strings.TrimSpace(q.Text) == "" {
		errs[FieldQuery] = MessageQueryRequired
	}
	switch {
	case q.Kind == "":
		errs[FieldKind] = MessageKindRequired
	case !q.Kind.IsValid():
		errs[FieldKind] = MessageKindInvalid
	}
	return ValidationResult{Errors: errs}
}

// State returns the current state
func (c *SearchController) State() SearchState {
	return c.state
}

// Submit validates q and, when valid, starts a search. It is a no-op while a
// search is in flight or after Close.
func (c *SearchController) Submit(q SearchQuery) (*SearchFetch, ValidationResult) {
	if c.closed || c.state == SearchLoading {
		return nil, ValidationResult{}
	}

	result := Validate(q)
	c.validation = result
	if !result.Valid() {
		c.state = SearchNotSearched
		c.results = nil
		c.hasSearched = false
		c.message = ""
		c.err = nil
		c.logger.Debug().Interface("errors", result.Errors).Msg("Search rejected")
		return nil, result
	}

	q.Text = strings.TrimSpace(q.Text)
	c.query = q
	c.state = SearchLoading
	c.hasSearched = true
	c.message = ""
	c.err = nil
	c.seq++

	fetch := &SearchFetch{Query: q, seq: c.seq, source: c.source}
	c.inflight = fetch
	return fetch, result
}

// Resolve applies a completed search. Outcomes other than the in-flight one are ignored.
func (c *SearchController) Resolve(outcome SearchOutcome) {
	if c.closed || outcome.Fetch == nil || outcome.Fetch != c.inflight || outcome.Fetch.seq != c.seq {
		return
	}
	c.inflight = nil

	if outcome.Err != nil {
		c.state = SearchFailed
		c.results = nil
		c.message = MessageSearchFailed
		c.err = outcome.Err
		c.logger.Warn().
			Err(outcome.Err).
			Str("query", outcome.Fetch.Query.Text).
			Msg("Search failed")
		return
	}

	var entities []tmdb.Entity
	if outcome.Page != nil {
		entities = outcome.Page.Results
	}
	c.results = tagResults(entities, outcome.Fetch.Query.Kind)
	c.state = SearchSearched

	c.logger.Debug().
		Str("query", outcome.Fetch.Query.Text).
		Str("kind", string(outcome.Fetch.Query.Kind)).
		Int("results", len(c.results)).
		Msg("Search completed")
}

// tagResults resolves the navigation kind of every result: the result's
// media_type when present, otherwise the query kind. People are excluded on
// purpose since there is no person detail to navigate to.
func tagResults(entities []tmdb.Entity, queryKind tmdb.Kind) []SearchResult {
	results := make([]SearchResult, 0, len(entities))
	for _, e := range entities {
		if e.MediaType == mediaTypePerson {
			continue
		}
		kind := queryKind
		if e.MediaType != "" {
			kind = tmdb.Kind(e.MediaType)
		}
		results = append(results, SearchResult{Entity: e, Kind: kind})
	}
	return results
}

// Search synchronously validates and runs q
func (c *SearchController) Search(ctx context.Context, q SearchQuery) (SearchView, error) {
	fetch, result := c.Submit(q)
	if fetch == nil {
		if !result.Valid() {
			return c.Snapshot(), &ValidationError{Result: result}
		}
		return c.Snapshot(), nil
	}
	outcome := fetch.Run(ctx)
	c.Resolve(outcome)
	return c.Snapshot(), outcome.Err
}

// Snapshot returns a copy of the controller state for rendering
func (c *SearchController) Snapshot() SearchView {
	errs := make(map[string]string, len(c.validation.Errors))
	for k, v := range c.validation.Errors {
		errs[k] = v
	}
	return SearchView{
		Query:       c.query,
		State:       c.state,
		Results:     append([]SearchResult(nil), c.results...),
		HasSearched: c.hasSearched,
		Message:     c.message,
		Err:         c.err,
		Validation:  ValidationResult{Errors: errs},
	}
}

// Close tears the controller down; later outcomes are ignored
func (c *SearchController) Close() {
	c.closed = true
	c.inflight = nil
}
