package tmdb

import (
	"context"
)

// API defines the TMDB operations the browsing controllers depend on
type API interface {
	// FetchList retrieves one page of a categorized list
	FetchList(ctx context.Context, resource Kind, category string, page int) (*ListPage, error)

	// FetchSearch runs a single title search
	FetchSearch(ctx context.Context, kind Kind, query string) (*SearchPage, error)

	// FetchDetail retrieves a single record by kind and id
	FetchDetail(ctx context.Context, kind Kind, id int) (*DetailRecord, error)
}

var _ API = (*Client)(nil)
