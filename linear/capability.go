package linear

import (
	"bytes"
	"cmp"
	"strings"

	"github.com/alecthomas/unsafeslice"
)

// Capability tells the table how to treat caller-owned payloads of type T.
//
// Bytes returns the byte representation fed to the hash function. It must be stable for the payload lifetime in the
// table, and payloads comparing equal must have equal byte representations.
//
// Compare returns zero when a and b are equal, a negative number when a sorts before b, and a positive one otherwise.
type Capability[T any] interface {
	Bytes(v T) []byte
	Compare(a, b T) int
}

// Funcs adapts a pair of plain functions to Capability.
type Funcs[T any] struct {
	BytesFunc   func(v T) []byte
	CompareFunc func(a, b T) int
}

func (f Funcs[T]) Bytes(v T) []byte { return f.BytesFunc(v) }
func (f Funcs[T]) Compare(a, b T) int { return f.CompareFunc(a, b) }

// Strings is the capability for string payloads, compared lexicographically.
type Strings struct{}

func (Strings) Bytes(v string) []byte {
	// Read-only view, the table never writes to it
	return unsafeslice.ByteSliceFromString(v)
}

func (Strings) Compare(a, b string) int { return strings.Compare(a, b) }

// Bytes is the capability for byte slice payloads. The table keeps the slice itself, so the caller must not modify
// it while it is stored.
type Bytes struct{}

func (Bytes) Bytes(v []byte) []byte { return v }
func (Bytes) Compare(a, b []byte) int { return bytes.Compare(a, b) }

// Uint64s is the capability for uint64 payloads. They are hashed by their in-memory representation.
type Uint64s struct{}

func (Uint64s) Bytes(v uint64) []byte {
	return unsafeslice.ByteSliceFromUint64Slice([]uint64{v})
}

func (Uint64s) Compare(a, b uint64) int { return cmp.Compare(a, b) }
