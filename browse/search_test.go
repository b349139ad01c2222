package browse

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinescope/tmdb"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		query SearchQuery
		want  map[string]string
	}{
		{
			name:  "valid",
			query: SearchQuery{Text: "Alien", Kind: tmdb.KindMovie},
			want:  map[string]string{},
		},
		{
			name:  "whitespace query",
			query: SearchQuery{Text: "   \t", Kind: tmdb.KindTV},
			want:  map[string]string{FieldQuery: MessageQueryRequired},
		},
		{
			name:  "missing kind",
			query: SearchQuery{Text: "Alien"},
			want:  map[string]string{FieldKind: MessageKindRequired},
		},
		{
			name:  "all fields checked",
			query: SearchQuery{Text: "", Kind: "person"},
			want: map[string]string{
				FieldQuery: MessageQueryRequired,
				FieldKind:  MessageKindInvalid,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.query)
			assert.Equal(t, tt.want, result.Errors)
			assert.Equal(t, len(tt.want) == 0, result.Valid())
		})
	}
}

func TestSearchInvalidMakesNoCall(t *testing.T) {
	api := &fakeAPI{}
	search := NewSearchController(api, zerolog.Nop())

	fetch, result := search.Submit(SearchQuery{Text: "  ", Kind: tmdb.KindMovie})
	assert.Nil(t, fetch)
	assert.Equal(t, MessageQueryRequired, result.Field(FieldQuery))
	assert.Equal(t, SearchNotSearched, search.State())
	assert.Equal(t, 0, api.searchCalls)

	view, err := search.Search(context.Background(), SearchQuery{Kind: tmdb.KindMovie})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), MessageQueryRequired)
	assert.False(t, view.HasSearched)
	assert.Equal(t, 0, api.searchCalls)
}

func TestSearchZeroResults(t *testing.T) {
	api := &fakeAPI{
		search: func(kind tmdb.Kind, query string) (*tmdb.SearchPage, error) {
			return &tmdb.SearchPage{Page: 1}, nil
		},
	}
	search := NewSearchController(api, zerolog.Nop())

	view, err := search.Search(context.Background(), SearchQuery{Text: "zzzz", Kind: tmdb.KindTV})
	require.NoError(t, err)
	assert.True(t, view.HasSearched)
	assert.Equal(t, SearchSearched, view.State)
	assert.Empty(t, view.Results)
	assert.Empty(t, view.Message)
	assert.NoError(t, view.Err)
}

func TestSearchMultiTagsKindsAndExcludesPeople(t *testing.T) {
	api := &fakeAPI{
		search: func(kind tmdb.Kind, query string) (*tmdb.SearchPage, error) {
			assert.Equal(t, tmdb.KindMulti, kind)
			assert.Equal(t, "Matrix", query)
			return &tmdb.SearchPage{Results: []tmdb.Entity{
				{ID: 603, Title: "The Matrix", MediaType: "movie", Popularity: popularity(80)},
				{ID: 6384, Name: "Keanu Reeves", MediaType: "person"},
				{ID: 9999, Title: "The Matrix Untagged"},
				{ID: 1, Name: "Matrix Show", MediaType: "tv"},
			}}, nil
		},
	}
	search := NewSearchController(api, zerolog.Nop())

	view, err := search.Search(context.Background(), SearchQuery{Text: " Matrix ", Kind: tmdb.KindMulti})
	require.NoError(t, err)
	require.Len(t, view.Results, 3)
	assert.Equal(t, tmdb.KindMovie, view.Results[0].Kind)
	assert.Equal(t, tmdb.KindMulti, view.Results[1].Kind)
	assert.Equal(t, 9999, view.Results[1].ID)
	assert.Equal(t, tmdb.KindTV, view.Results[2].Kind)
	for _, r := range view.Results {
		assert.NotEqual(t, 6384, r.ID, "people are not navigable")
	}
}

func TestSearchFailureClearsResults(t *testing.T) {
	calls := 0
	api := &fakeAPI{
		search: func(kind tmdb.Kind, query string) (*tmdb.SearchPage, error) {
			calls++
			if calls == 1 {
				return &tmdb.SearchPage{Results: []tmdb.Entity{{ID: 1, Title: "Alien"}}}, nil
			}
			return nil, &tmdb.APIError{StatusCode: 500}
		},
	}
	search := NewSearchController(api, zerolog.Nop())

	view, err := search.Search(context.Background(), SearchQuery{Text: "Alien", Kind: tmdb.KindMovie})
	require.NoError(t, err)
	require.Len(t, view.Results, 1)

	view, err = search.Search(context.Background(), SearchQuery{Text: "Aliens", Kind: tmdb.KindMovie})
	require.Error(t, err)
	assert.Equal(t, SearchFailed, view.State)
	assert.Empty(t, view.Results)
	assert.Equal(t, MessageSearchFailed, view.Message)
	assert.True(t, view.HasSearched)
}

func TestSearchResubmitOverwritesError(t *testing.T) {
	fail := true
	api := &fakeAPI{
		search: func(kind tmdb.Kind, query string) (*tmdb.SearchPage, error) {
			if fail {
				return nil, errors.New("down")
			}
			return &tmdb.SearchPage{Results: []tmdb.Entity{{ID: 2, Title: "Heat"}}}, nil
		},
	}
	search := NewSearchController(api, zerolog.Nop())

	_, err := search.Search(context.Background(), SearchQuery{Text: "Heat", Kind: tmdb.KindMovie})
	require.Error(t, err)

	fail = false
	view, err := search.Search(context.Background(), SearchQuery{Text: "Heat", Kind: tmdb.KindMovie})
	require.NoError(t, err)
	assert.Empty(t, view.Message)
	assert.NoError(t, view.Err)
	assert.Len(t, view.Results, 1)
}

func TestSearchSubmitWhileLoadingIsNoop(t *testing.T) {
	api := &fakeAPI{
		search: func(kind tmdb.Kind, query string) (*tmdb.SearchPage, error) {
			return &tmdb.SearchPage{}, nil
		},
	}
	search := NewSearchController(api, zerolog.Nop())

	fetch, _ := search.Submit(SearchQuery{Text: "Up", Kind: tmdb.KindMovie})
	require.NotNil(t, fetch)

	again, result := search.Submit(SearchQuery{Text: "Down", Kind: tmdb.KindMovie})
	assert.Nil(t, again)
	assert.True(t, result.Valid())

	search.Resolve(fetch.Run(context.Background()))
	assert.Equal(t, 1, api.searchCalls)
	assert.Equal(t, "Up", search.Snapshot().Query.Text)
}

func TestSearchCloseDropsOutcome(t *testing.T) {
	api := &fakeAPI{
		search: func(kind tmdb.Kind, query string) (*tmdb.SearchPage, error) {
			return &tmdb.SearchPage{Results: []tmdb.Entity{{ID: 1}}}, nil
		},
	}
	search := NewSearchController(api, zerolog.Nop())

	fetch, _ := search.Submit(SearchQuery{Text: "Up", Kind: tmdb.KindMovie})
	search.Close()
	search.Resolve(fetch.Run(context.Background()))

	view := search.Snapshot()
	assert.Equal(t, SearchLoading, view.State)
	assert.Empty(t, view.Results)
}
