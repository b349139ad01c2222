package library

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// MaxConcurrency limits parallel Radarr lookups
const MaxConcurrency = 8

// LookupMany looks up several TMDB ids concurrently. Failed lookups are
// logged and left out of the result; only context cancellation is returned.
func (c *Client) LookupMany(ctx context.Context, tmdbIDs []int) (map[int]Status, error) {
	results := make(map[int]Status, len(tmdbIDs))
	if len(tmdbIDs) == 0 {
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrency)

	var mu sync.Mutex
	seen := make(map[int]bool, len(tmdbIDs))

	for _, id := range tmdbIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			status, err := c.Lookup(ctx, id)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Int("tmdb_id", id).
					Msg("Failed to look up movie")
				return nil
			}

			mu.Lock()
			results[id] = status
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
