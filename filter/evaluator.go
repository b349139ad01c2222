package filter

// Select returns the items whose subject matches f, in their original order.
// A nil filter matches everything.
func Select[T any](f Filter, items []T, subject func(T) Subject) []T {
	if f == nil {
		return items
	}

	matches := make([]T, 0, len(items))
	for _, item := range items {
		if f.Evaluate(subject(item)) {
			matches = append(matches, item)
		}
	}
	return matches
}
