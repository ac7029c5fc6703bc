package markerindex

import "github.com/cockroachdb/errors"

var (
	// ErrUnknownID is returned when an operation names a marker that is not in the index.
	ErrUnknownID    = errors.New("unknown marker id")
	// ErrDuplicateID is returned when a marker id is inserted twice.
	ErrDuplicateID  = errors.New("duplicate marker id")
	// ErrInvalidRange is returned for negative positions or extents, for ranges with
	// start > end and for positions past MaxPosition.
	ErrInvalidRange = errors.New("invalid range")
)
