package linear

import "errors"

var (
	// ErrDuplicateKey is returned by Insert when an equal payload is already stored. The table is not modified.
	ErrDuplicateKey = errors.New("linear: duplicate key")
	// ErrNotFound is returned by Search and Delete when no equal payload is stored.
	ErrNotFound = errors.New("linear: not found")
	// ErrOutOfRange is returned by At for a position outside [0, Cap()).
	ErrOutOfRange = errors.New("linear: position out of range")
	// ErrOutOfMemory is returned when the slot array could not be allocated.
	ErrOutOfMemory = errors.New("linear: out of memory")
	// ErrDestroyed is returned by operations on a table after Destroy.
	ErrDestroyed = errors.New("linear: table destroyed")
	// ErrNilPayload is returned by Insert for a nil interface payload.
	ErrNilPayload = errors.New("linear: nil payload")
)
