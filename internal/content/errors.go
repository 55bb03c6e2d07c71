package content

import "errors"

var (
	// ErrNotFound is returned when a single-row operation matched nothing.
	ErrNotFound = errors.New("content not found")
	// ErrIncompleteRequest is returned by Build when a required facet is
	// missing. It signals a caller bug, not a runtime data error.
	ErrIncompleteRequest = errors.New("request is missing a required facet")
)
