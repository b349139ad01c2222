package browse

import (
	"context"

	"github.com/s0up4200/cinescope/tmdb"
)

// fakeAPI implements tmdb.API with per-operation hooks and call counters
type fakeAPI struct {
	list   func(kind tmdb.Kind, category string, page int) (*tmdb.ListPage, error)
	search func(kind tmdb.Kind, query string) (*tmdb.SearchPage, error)
	detail func(kind tmdb.Kind, id int) (*tmdb.DetailRecord, error)

	listCalls   int
	searchCalls int
	detailCalls int
}

var _ tmdb.API = (*fakeAPI)(nil)

func (f *fakeAPI) FetchList(_ context.Context, kind tmdb.Kind, category string, page int) (*tmdb.ListPage, error) {
	f.listCalls++
	return f.list(kind, category, page)
}

func (f *fakeAPI) FetchSearch(_ context.Context, kind tmdb.Kind, query string) (*tmdb.SearchPage, error) {
	f.searchCalls++
	return f.search(kind, query)
}

func (f *fakeAPI) FetchDetail(_ context.Context, kind tmdb.Kind, id int) (*tmdb.DetailRecord, error) {
	f.detailCalls++
	return f.detail(kind, id)
}

func popularity(v float64) *float64 {
	return &v
}
