package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/tmdb"
)

func pop(v float64) *float64 {
	return &v
}

func newTestFormatter(opts FormatOptions) (*ConsoleFormatter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	printer := NewPrinterWithWriters(&out, &errOut, false)
	return NewConsoleFormatter(printer, opts), &out, &errOut
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ColorMode
		wantErr bool
	}{
		{"", ColorAuto, false},
		{"auto", ColorAuto, false},
		{"always", ColorAlways, false},
		{"never", ColorNever, false},
		{"sometimes", ColorAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveColors(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("NO_COLOR", "1")
	assert.True(t, ResolveColors(ColorAlways, false, &buf))
	assert.False(t, ResolveColors(ColorAuto, true, &buf))
	assert.False(t, ResolveColors(ColorNever, true, &buf))
}

func TestResolveColorsNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, ResolveColors(ColorAuto, true, &buf))
	assert.False(t, IsTerminal(&buf))
}

func TestPlaceholders(t *testing.T) {
	bare := tmdb.Entity{ID: 1}
	full := tmdb.Entity{
		ID:          2,
		Title:       "Heat",
		Popularity:  pop(41.234),
		ReleaseDate: "1995-12-15",
		PosterPath:  "/heat.jpg",
		VoteAverage: 7.9,
		VoteCount:   7000,
	}

	assert.Equal(t, Missing, Popularity(&bare))
	assert.Equal(t, Missing, Date(&bare))
	assert.Equal(t, NoImage, Poster("", "", &bare))
	assert.Equal(t, Missing, Rating(&bare))
	assert.Equal(t, NoOverview, Overview("  "))

	assert.Equal(t, "41.2", Popularity(&full))
	assert.Equal(t, "1995-12-15", Date(&full))
	assert.Equal(t, "https://image.tmdb.org/t/p/w185/heat.jpg", Poster("", tmdb.SizeW185, &full))
	assert.Equal(t, "7.9/10 (7000 votes)", Rating(&full))
}

func TestRuntimeAndTruncate(t *testing.T) {
	assert.Equal(t, Missing, Runtime(0))
	assert.Equal(t, "45m", Runtime(45))
	assert.Equal(t, "2h 19m", Runtime(139))

	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
}

func TestSearchEmptyState(t *testing.T) {
	assert.Equal(t, SearchPrompt, SearchEmptyState(false))
	assert.Equal(t, NoResults, SearchEmptyState(true))
}

func TestWriteList(t *testing.T) {
	f, out, _ := newTestFormatter(FormatOptions{ShowPosters: true, PosterSize: tmdb.SizeW200})

	view := browse.ListView[tmdb.Entity]{
		Kind:          tmdb.KindMovie,
		CategoryLabel: "Top Rated",
		Items: []tmdb.Entity{
			{ID: 238, Title: "The Godfather", Popularity: pop(120.5), ReleaseDate: "1972-03-14", PosterPath: "/gf.jpg"},
			{ID: 424},
		},
		HasMore:  true,
		NextPage: 2,
	}
	require.NoError(t, f.WriteList(view))

	text := out.String()
	assert.Contains(t, text, "Movies · Top Rated (2)")
	assert.Contains(t, text, "The Godfather")
	assert.Contains(t, text, "120.5")
	assert.Contains(t, text, "https://image.tmdb.org/t/p/w200/gf.jpg")
	assert.Contains(t, text, tmdb.UntitledLabel)
	assert.Contains(t, text, NoImage)
	assert.Contains(t, text, "next page 2")
}

func TestWriteEmptyList(t *testing.T) {
	f, out, _ := newTestFormatter(FormatOptions{})
	require.NoError(t, f.WriteList(browse.ListView[tmdb.Entity]{Kind: tmdb.KindTV, CategoryLabel: "Popular"}))
	assert.Contains(t, out.String(), EmptyList)
}

func TestWriteSearch(t *testing.T) {
	t.Run("not searched", func(t *testing.T) {
		f, out, _ := newTestFormatter(FormatOptions{})
		require.NoError(t, f.WriteSearch(browse.SearchView{}))
		assert.Contains(t, out.String(), SearchPrompt)
	})

	t.Run("no results", func(t *testing.T) {
		f, out, _ := newTestFormatter(FormatOptions{})
		require.NoError(t, f.WriteSearch(browse.SearchView{HasSearched: true}))
		assert.Contains(t, out.String(), NoResults)
	})

	t.Run("failed", func(t *testing.T) {
		f, _, errOut := newTestFormatter(FormatOptions{})
		require.NoError(t, f.WriteSearch(browse.SearchView{HasSearched: true, Message: browse.MessageSearchFailed}))
		assert.Contains(t, errOut.String(), browse.MessageSearchFailed)
	})

	t.Run("results with library column", func(t *testing.T) {
		f, out, _ := newTestFormatter(FormatOptions{Annotations: map[int]string{603: "In library"}})
		view := browse.SearchView{
			Query:       browse.SearchQuery{Text: "Matrix", Kind: tmdb.KindMulti},
			HasSearched: true,
			Results: []browse.SearchResult{
				{Entity: tmdb.Entity{ID: 603, Title: "The Matrix"}, Kind: tmdb.KindMovie},
				{Entity: tmdb.Entity{ID: 9, Name: "Matrix"}, Kind: tmdb.KindMulti},
			},
		}
		require.NoError(t, f.WriteSearch(view))

		text := out.String()
		assert.Contains(t, text, `Results for "Matrix" (2)`)
		assert.Contains(t, text, "In library")
		assert.Contains(t, text, "multi")
	})
}

func TestFormatDetail(t *testing.T) {
	f, _, _ := newTestFormatter(FormatOptions{PosterSize: tmdb.SizeW500})

	record := &tmdb.DetailRecord{
		Entity:  tmdb.Entity{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15"},
		Kind:    tmdb.KindMovie,
		Genres:  []tmdb.Genre{{ID: 18, Name: "Drama"}},
		Runtime: 139,
	}
	text := f.FormatDetail(record)

	assert.Contains(t, text, "Fight Club (1999)")
	assert.Contains(t, text, "├── Genres: Drama")
	assert.Contains(t, text, "Runtime: 2h 19m")
	assert.Contains(t, text, "╰── Poster: "+NoImage)
	assert.Contains(t, text, NoOverview)
}

func TestFormatDetailTV(t *testing.T) {
	f, _, _ := newTestFormatter(FormatOptions{Annotations: map[int]string{}})

	record := &tmdb.DetailRecord{
		Entity:           tmdb.Entity{ID: 1399, Name: "Game of Thrones", Overview: "Seven noble families fight for control.", PosterPath: "/got.jpg"},
		Kind:             tmdb.KindTV,
		NumberOfSeasons:  8,
		NumberOfEpisodes: 73,
		Status:           "Ended",
	}
	text := f.FormatDetail(record)

	assert.Contains(t, text, "Game of Thrones\n")
	assert.Contains(t, text, "Released: -")
	assert.Contains(t, text, "Seasons: 8 (73 episodes)")
	assert.Contains(t, text, "Status: Ended")
	assert.Contains(t, text, "/w185/got.jpg")
	assert.Contains(t, text, "Seven noble families")
	assert.NotContains(t, text, "Library:")
}
