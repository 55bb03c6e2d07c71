package types

import "errors"

// ErrInvalidKind is returned when a kind label does not map to a known Kind.
var ErrInvalidKind = errors.New("invalid content kind")
