// Package linear implements an open-addressing hash table with linear probing over caller-owned payloads.
//
// The table stores payloads of any type T directly in a contiguous slot array. How a payload is hashed and compared is
// described by a Capability bound on construction. The table never owns payloads: it hands them back on Delete and
// passes the remaining ones to a caller-supplied destructor on Destroy.
//
// Removed payloads leave tombstones, so that probe chains running through them stay intact. Inserts reuse tombstones,
// and every rehash drops them. The table grows by doubling its capacity once the occupied slots together with
// tombstones reach the load factor; every payload is then re-homed under the new capacity.
//
// Table is not safe for concurrent use.
package linear

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/bdragon300/linear-hash/hasher"
)

// NewDefault creates a new hash table with default parameters: load factor 2/3 and FNV-1a hash function.
func NewDefault[T any](capacity int, c Capability[T]) (*Table[T], error) {
	return New(capacity, c)
}

// New creates a new hash table with given initial capacity, which must be positive. The load factor set by
// WithLoadFactor must be in range (0,1).
//
// Returns ErrOutOfMemory if the slot array could not be allocated.
func New[T any](capacity int, c Capability[T], opts ...Option) (*Table[T], error) {
	if capacity <= 0 {
		panic(fmt.Errorf("capacity must be positive"))
	}
	if c == nil {
		panic(fmt.Errorf("capability must not be nil"))
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !(cfg.loadFactor > 0 && cfg.loadFactor < 1) {
		panic(fmt.Errorf("load factor must be in range (0, 1)"))
	}
	if cfg.hasher == nil {
		panic(fmt.Errorf("hasher must not be nil"))
	}

	slots, err := allocSlots[T](capacity, cfg.maxCapacity)
	if err != nil {
		return nil, err
	}
	return &Table[T]{
		slots:       slots,
		capability:  c,
		hasher:      cfg.hasher,
		loadFactor:  cfg.loadFactor,
		maxCapacity: cfg.maxCapacity,
		logger:      cfg.logger,
	}, nil
}

// Table is an open-addressing hash table with linear probing.
type Table[T any] struct {
	slots       []slot[T] // nil after Destroy
	count       int       // occupied slots
	deleted     int       // tombstones
	capability  Capability[T]
	hasher      hasher.Func
	loadFactor  float64
	maxCapacity int
	logger      logr.Logger
}

// SlotRef is a snapshot of a single slot.
type SlotRef[T any] struct {
	Position int
	State    State
	Hash     uint64 // full hash of the payload, valid for occupied slots
	Home     int    // Hash mod Cap(), valid for occupied slots
	Payload  T
}

// Insert adds v to the table. If an equal payload is already stored, it returns ErrDuplicateKey and leaves the table
// untouched.
//
// When the table becomes loaded enough, Insert grows it before returning. If the growth fails, v stays inserted and
// the returned error wraps ErrOutOfMemory.
func (t *Table[T]) Insert(v T) error {
	if t == nil || t.slots == nil {
		return ErrDestroyed
	}
	if any(v) == nil {
		return ErrNilPayload
	}
	return insert(t, t.hasher(t.capability.Bytes(v)), v)
}

// Search returns the slot holding a payload equal to v, or ErrNotFound. A nil interface payload is never stored, so
// searching for one returns ErrNilPayload.
func (t *Table[T]) Search(v T) (SlotRef[T], error) {
	if t == nil || t.slots == nil {
		return SlotRef[T]{}, ErrDestroyed
	}
	if any(v) == nil {
		return SlotRef[T]{}, ErrNilPayload
	}
	idx := lookup(t, t.hasher(t.capability.Bytes(v)), v)
	if idx < 0 {
		return SlotRef[T]{}, ErrNotFound
	}
	return t.ref(idx), nil
}

// Delete removes a payload equal to v and returns the stored one, so the caller can release it. Returns ErrNotFound
// if there is no such payload, and ErrNilPayload for a nil interface payload. The capacity never shrinks.
func (t *Table[T]) Delete(v T) (T, error) {
	var zero T
	if t == nil || t.slots == nil {
		return zero, ErrDestroyed
	}
	if any(v) == nil {
		return zero, ErrNilPayload
	}
	idx := lookup(t, t.hasher(t.capability.Bytes(v)), v)
	if idx < 0 {
		return zero, ErrNotFound
	}
	return remove(t, idx), nil
}

// At returns the slot at position pos regardless of its state. Returns ErrOutOfRange if pos is not in [0, Cap()).
func (t *Table[T]) At(pos int) (SlotRef[T], error) {
	if t == nil || t.slots == nil {
		return SlotRef[T]{}, ErrDestroyed
	}
	if pos < 0 || pos >= len(t.slots) {
		return SlotRef[T]{}, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, pos, len(t.slots))
	}
	return t.ref(pos), nil
}

// Range calls f for every stored payload in slot order, until f returns false. Deleting payloads from f is allowed,
// inserting is not: a resize in the middle of Range makes it skip or repeat payloads.
func (t *Table[T]) Range(f func(v T) bool) {
	if t == nil {
		return
	}
	slots := t.slots
	for i := range slots {
		if slots[i].state == Occupied && !f(slots[i].payload) {
			return
		}
	}
}

// Destroy calls fn for every stored payload and releases the slot array. fn may be nil. Calling Destroy again, or on
// a nil table, does nothing.
func (t *Table[T]) Destroy(fn func(v T)) {
	if t == nil || t.slots == nil {
		return
	}
	if fn != nil {
		for i := range t.slots {
			if t.slots[i].state == Occupied {
				fn(t.slots[i].payload)
			}
		}
	}
	t.slots = nil
	t.count = 0
	t.deleted = 0
}

// Len returns the number of payloads in the hash table.
func (t *Table[T]) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// Cap returns the number of slots in the hash table.
func (t *Table[T]) Cap() int {
	if t == nil {
		return 0
	}
	return len(t.slots)
}

// Tombstones returns the number of slots left by deleted payloads and not reused yet.
func (t *Table[T]) Tombstones() int {
	if t == nil {
		return 0
	}
	return t.deleted
}

// LoadFactor returns the load factor threshold the table was created with.
func (t *Table[T]) LoadFactor() float64 {
	if t == nil {
		return 0
	}
	return t.loadFactor
}

func (t *Table[T]) ref(idx int) SlotRef[T] {
	s := &t.slots[idx]
	return SlotRef[T]{
		Position: idx,
		State:    s.state,
		Hash:     s.hash,
		Home:     s.home,
		Payload:  s.payload,
	}
}
