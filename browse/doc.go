// Package browse holds the controllers behind every cinescope screen.
//
// Each controller is a small state machine owned by one screen. Intents
// (select a category, submit a search, open a title) return a fetch
// descriptor; the caller runs the fetch wherever it likes and hands the
// outcome back through Resolve on the same goroutine that owns the
// controller. Outcomes of superseded fetches, or of controllers that were
// closed, are discarded.
//
//	list := browse.NewEntityList(client, browse.MovieResource, logger)
//	if err := list.Load(ctx, "top_rated"); err != nil {
//		return err
//	}
//	for _, e := range list.Snapshot().Items {
//		fmt.Println(e.DisplayName())
//	}
package browse
