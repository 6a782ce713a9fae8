package linear

import (
	"fmt"
	"math"
)

// State is the occupancy state of a slot.
type State uint8

const (
	Empty State = iota
	Occupied
	// Deleted marks a tombstone: a slot whose payload was removed. Lookups walk through it, inserts may reuse it.
	Deleted
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Occupied:
		return "occupied"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

type slot[T any] struct {
	state   State
	hash    uint64
	home    int // hash mod capacity under the current capacity
	payload T
}

func newSlot[T any](hsh uint64, home int, v T) slot[T] {
	return slot[T]{
		state:   Occupied,
		hash:    hsh,
		home:    home,
		payload: v,
	}
}

func home(hsh uint64, capacity int) int {
	return int(hsh % uint64(capacity))
}

// allocSlots makes a slot array of n slots. A non-positive n means the requested size overflowed int.
func allocSlots[T any](n, limit int) (slots []slot[T], err error) {
	if n <= 0 || n > limit {
		return nil, fmt.Errorf("%w: %d slots requested, limit is %d", ErrOutOfMemory, n, limit)
	}
	defer func() {
		if r := recover(); r != nil {
			slots, err = nil, fmt.Errorf("%w: %v", ErrOutOfMemory, r)
		}
	}()
	return make([]slot[T], n), nil
}

// lookup returns the position of a slot holding a payload equal to v, or -1 if there is none.
func lookup[T any](table *Table[T], hsh uint64, v T) int {
	capacity := len(table.slots)
	start := home(hsh, capacity)

	// Linear circular probing, the chain ends on the first empty slot
	for j := 0; j < capacity; j++ {
		idx := (start + j) % capacity
		s := &table.slots[idx]
		switch s.state {
		case Empty:
			return -1
		case Occupied:
			if s.hash == hsh && table.capability.Compare(s.payload, v) == 0 {
				return idx
			}
		}
	}

	return -1
}

// probe walks the whole probe chain of v. It returns the position of an equal payload and true if there is one.
// Otherwise, it returns the first free slot on the chain, either a tombstone or the empty slot that ends the chain,
// and false. The position is -1 if the table has no free slots at all.
func probe[T any](table *Table[T], hsh uint64, v T) (int, bool) {
	capacity := len(table.slots)
	start := home(hsh, capacity)
	free := -1

	for j := 0; j < capacity; j++ {
		idx := (start + j) % capacity
		s := &table.slots[idx]
		switch s.state {
		case Empty:
			if free < 0 {
				free = idx
			}
			return free, false
		case Deleted:
			if free < 0 {
				free = idx
			}
		case Occupied:
			if s.hash == hsh && table.capability.Compare(s.payload, v) == 0 {
				return idx, true
			}
		}
	}

	return free, false
}

func insert[T any](table *Table[T], hsh uint64, v T) error {
	idx, dup := probe(table, hsh, v)
	if dup {
		return ErrDuplicateKey
	}
	if idx < 0 {
		// Every slot is occupied, this is possible only if an earlier growth has failed
		if err := rehash(table, nextCapacity(len(table.slots), table.count+1, table.loadFactor)); err != nil {
			return err
		}
		idx, _ = probe(table, hsh, v)
	}

	if table.slots[idx].state == Deleted {
		table.deleted--
	}
	table.slots[idx] = newSlot(hsh, home(hsh, len(table.slots)), v)
	table.count++

	if overloaded(table) {
		if err := rehash(table, resizeTarget(table)); err != nil {
			return fmt.Errorf("payload inserted, but resize failed: %w", err)
		}
	}
	return nil
}

func remove[T any](table *Table[T], idx int) T {
	v := table.slots[idx].payload
	table.slots[idx] = slot[T]{state: Deleted}
	table.count--
	table.deleted++
	return v
}

// overloaded reports whether the used slots, tombstones included, have reached the load factor.
func overloaded[T any](table *Table[T]) bool {
	return float64(table.count+table.deleted) >= table.loadFactor*float64(len(table.slots))
}

// resizeTarget picks the capacity for an overloaded table. The table is compacted in place only if tombstones make up
// most of the used slots, otherwise it doubles at least once. Either way the next rehash is at least loadFactor*cap/2
// inserts away.
func resizeTarget[T any](table *Table[T]) int {
	capacity := len(table.slots)
	if float64(table.count) < table.loadFactor*float64(capacity)/2 {
		return capacity
	}
	if capacity > math.MaxInt/2 {
		return -1
	}
	return nextCapacity(capacity*2, table.count, table.loadFactor)
}

// nextCapacity doubles capacity until n payloads fit under the load factor. It returns capacity itself if they already
// fit, and -1 on int overflow.
func nextCapacity(capacity, n int, loadFactor float64) int {
	c := capacity
	for float64(n) >= loadFactor*float64(c) {
		if c > math.MaxInt/2 {
			return -1
		}
		c *= 2
	}
	return c
}

// rehash moves all occupied slots to a new slot array of given capacity, recomputing their home positions.
// Tombstones are dropped. The table is left intact if the new array could not be allocated.
func rehash[T any](table *Table[T], capacity int) error {
	slots, err := allocSlots[T](capacity, table.maxCapacity)
	if err != nil {
		return err
	}

	for i := range table.slots {
		s := &table.slots[i]
		if s.state != Occupied {
			continue
		}
		h := home(s.hash, capacity)
		for j := 0; j < capacity; j++ {
			idx := (h + j) % capacity
			if slots[idx].state == Empty {
				slots[idx] = newSlot(s.hash, h, s.payload)
				break
			}
		}
	}

	if capacity == len(table.slots) {
		table.logger.V(1).Info("compacting table", "capacity", capacity, "count", table.count, "tombstones", table.deleted)
	} else {
		table.logger.V(1).Info(
			"resizing table",
			"oldCapacity", len(table.slots), "newCapacity", capacity, "count", table.count, "tombstones", table.deleted,
		)
	}

	table.slots = slots
	table.deleted = 0
	return nil
}
