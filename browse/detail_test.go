package browse

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinescope/tmdb"
)

func TestDetailLoad(t *testing.T) {
	api := &fakeAPI{
		detail: func(kind tmdb.Kind, id int) (*tmdb.DetailRecord, error) {
			return &tmdb.DetailRecord{
				Entity: tmdb.Entity{ID: id, Title: "Fight Club"},
				Kind:   kind,
			}, nil
		},
	}
	detail := NewDetailController(api, zerolog.Nop())
	assert.Equal(t, DetailUnloaded, detail.State())

	view, err := detail.Fetch(context.Background(), tmdb.KindMovie, 550)
	require.NoError(t, err)
	assert.Equal(t, DetailLoaded, view.State)
	require.NotNil(t, view.Record)
	assert.False(t, view.Record.HasPoster())
	assert.Empty(t, view.Message)
}

func TestDetailLoadWhileLoadingIsNoop(t *testing.T) {
	api := &fakeAPI{
		detail: func(kind tmdb.Kind, id int) (*tmdb.DetailRecord, error) {
			return &tmdb.DetailRecord{Entity: tmdb.Entity{ID: id}}, nil
		},
	}
	detail := NewDetailController(api, zerolog.Nop())

	fetch, ok := detail.Load(tmdb.KindTV, 1399)
	require.True(t, ok)
	_, ok = detail.Load(tmdb.KindTV, 1399)
	assert.False(t, ok)

	detail.Resolve(fetch.Run(context.Background()))
	assert.Equal(t, 1, api.detailCalls)
	assert.Equal(t, DetailLoaded, detail.State())
}

func TestDetailFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", &tmdb.APIError{StatusCode: 404}, MessageDetailNotFound},
		{"server error", &tmdb.APIError{StatusCode: 502}, MessageDetailFailed},
		{"network", &tmdb.RequestError{Endpoint: "/movie/1", Err: context.DeadlineExceeded}, MessageDetailFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				detail: func(kind tmdb.Kind, id int) (*tmdb.DetailRecord, error) {
					return nil, tt.err
				},
			}
			detail := NewDetailController(api, zerolog.Nop())

			view, err := detail.Fetch(context.Background(), tmdb.KindMovie, 1)
			require.Error(t, err)
			assert.Equal(t, DetailFailed, view.State)
			assert.Equal(t, tt.want, view.Message)
			assert.Nil(t, view.Record)
		})
	}
}

func TestDetailRetry(t *testing.T) {
	calls := 0
	api := &fakeAPI{
		detail: func(kind tmdb.Kind, id int) (*tmdb.DetailRecord, error) {
			calls++
			if calls == 1 {
				return nil, &tmdb.APIError{StatusCode: 503}
			}
			return &tmdb.DetailRecord{Entity: tmdb.Entity{ID: id, Name: "Severance"}}, nil
		},
	}
	detail := NewDetailController(api, zerolog.Nop())

	_, ok := detail.Retry()
	assert.False(t, ok, "nothing to retry before a failure")

	_, err := detail.Fetch(context.Background(), tmdb.KindTV, 95396)
	require.Error(t, err)

	fetch, ok := detail.Retry()
	require.True(t, ok)
	assert.Equal(t, 95396, fetch.ID)
	assert.Equal(t, tmdb.KindTV, fetch.Kind)

	detail.Resolve(fetch.Run(context.Background()))
	view := detail.Snapshot()
	assert.Equal(t, DetailLoaded, view.State)
	assert.Equal(t, "Severance", view.Record.DisplayName())
}

func TestDetailCloseDropsOutcome(t *testing.T) {
	api := &fakeAPI{
		detail: func(kind tmdb.Kind, id int) (*tmdb.DetailRecord, error) {
			return &tmdb.DetailRecord{Entity: tmdb.Entity{ID: id}}, nil
		},
	}
	detail := NewDetailController(api, zerolog.Nop())

	fetch, ok := detail.Load(tmdb.KindMovie, 550)
	require.True(t, ok)
	detail.Close()
	detail.Resolve(fetch.Run(context.Background()))

	assert.Equal(t, DetailLoading, detail.State())
	assert.Nil(t, detail.Snapshot().Record)

	_, err := detail.Fetch(context.Background(), tmdb.KindMovie, 550)
	assert.ErrorIs(t, err, ErrClosed)
}
