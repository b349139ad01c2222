package browse

// ListState is the state of a list controller
type ListState int

const (
	ListIdle ListState = iota
	ListLoading
	ListLoaded
	ListErrored
)

func (s ListState) String() string {
	switch s {
	case ListIdle:
		return "idle"
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// SearchState is the state of a search controller
type SearchState int

const (
	SearchNotSearched SearchState = iota
	SearchLoading
	SearchSearched
	SearchFailed
)

func (s SearchState) String() string {
	switch s {
	case SearchNotSearched:
		return "not searched"
	case SearchLoading:
		return "loading"
	case SearchSearched:
		return "searched"
	case SearchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DetailState is the state of a detail controller
type DetailState int

const (
	DetailUnloaded DetailState = iota
	DetailLoading
	DetailLoaded
	DetailFailed
)

func (s DetailState) String() string {
	switch s {
	case DetailUnloaded:
		return "unloaded"
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	case DetailFailed:
		return "failed"
	default:
		return "unknown"
	}
}
