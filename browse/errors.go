package browse

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownCategory indicates a category the resource does not offer
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownResource indicates a kind that has no lists
	ErrUnknownResource = errors.New("unknown resource")
	// ErrClosed indicates the controller was torn down
	ErrClosed = errors.New("controller closed")
)

// User-facing messages
const (
	MessageSearchFailed   = "Something went wrong. Please try again."
	MessageDetailFailed   = "Could not load details."
	MessageDetailNotFound = "Title not found."
	MessageQueryRequired  = "Movie/TV show name is required"
	MessageKindRequired   = "Search type is required"
	MessageKindInvalid    = "Search type must be one of movie, tv, multi"
)

// ValidationError reports invalid search input
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, field := range []string{FieldQuery, FieldKind} {
		if msg := e.Result.Field(field); msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return "invalid search: " + strings.Join(msgs, "; ")
}
