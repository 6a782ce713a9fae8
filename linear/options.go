package linear

import (
	"math"

	"github.com/go-logr/logr"

	"github.com/bdragon300/linear-hash/hasher"
)

const (
	// DefaultLoadFactor is the occupancy ratio at which the table grows.
	DefaultLoadFactor = 2.0 / 3.0
	// DefaultMaxCapacity bounds the slot array length. Growth beyond it fails with ErrOutOfMemory.
	DefaultMaxCapacity = math.MaxInt32
)

type config struct {
	loadFactor  float64
	hasher      hasher.Func
	logger      logr.Logger
	maxCapacity int
}

func defaultConfig() config {
	return config{
		loadFactor:  DefaultLoadFactor,
		hasher:      hasher.FNV1a,
		logger:      logr.Discard(),
		maxCapacity: DefaultMaxCapacity,
	}
}

// Option configures a Table on construction.
type Option func(*config)

// WithLoadFactor sets the load factor threshold, must be in range (0, 1).
func WithLoadFactor(f float64) Option {
	return func(c *config) {
		c.loadFactor = f
	}
}

// WithHasher replaces the FNV-1a hash function.
func WithHasher(h hasher.Func) Option {
	return func(c *config) {
		c.hasher = h
	}
}

// WithLogger sets a logger for resize events. They are logged at V(1).
func WithLogger(l logr.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMaxCapacity limits how large the slot array may grow. Insert reports ErrOutOfMemory once a resize would
// exceed it.
func WithMaxCapacity(n int) Option {
	return func(c *config) {
		c.maxCapacity = n
	}
}
