package service

import "errors"

var (
	// ErrStructuralViolation marks an incoming record the screen refused to
	// apply: it would break a tree invariant (unknown parent, non-folder
	// parent, cycle, action on a reserved root) or does not decode. The
	// record is skipped and reported, never applied.
	ErrStructuralViolation = errors.New("record violates tree structure")

	// ErrRootImmutable is returned for any local attempt to delete, retitle
	// or reparent one of the reserved bookmark roots.
	ErrRootImmutable = errors.New("reserved bookmark roots cannot be modified")

	// ErrUnknownCollection is returned when a caller names a collection
	// outside the closed set.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrInvalidPayload is returned when a payload document does not decode
	// into the collection's record type.
	ErrInvalidPayload = errors.New("invalid record payload")

	// ErrInvalidGUID is returned when a caller-supplied identifier is not a
	// well-formed 12-character record GUID.
	ErrInvalidGUID = errors.New("invalid record guid")

	// errUnmergeable is the mergers' internal signal that a field conflict
	// has no policy resolution; the reconciler answers it by forking the
	// local version under a new GUID so neither side is dropped.
	errUnmergeable = errors.New("field conflict has no merge policy")
)
