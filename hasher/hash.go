// Package hasher contains 64-bit non-cryptographic hash functions over byte slices. FNV1a is the default one used by
// the tables in this module, the rest are drop-in alternatives with the same signature.
package hasher

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/minio/highwayhash"
	"github.com/shivakar/metrohash"
	"github.com/twmb/murmur3"
)

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211

	// HighwayKeySize is the key length required by Highway.
	HighwayKeySize = 32
)

// ErrUnknownHash is returned by ByName for a name it does not recognize.
var ErrUnknownHash = errors.New("hasher: unknown hash function")

// Func hashes a byte sequence into a 64-bit value. It must be deterministic: equal sequences hash equal.
type Func func(b []byte) uint64

// FNV1a computes a 64-bit FNV-1a hash of b.
func FNV1a(b []byte) uint64 {
	h := uint64(fnvOffset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	return h
}

// Murmur3 computes the 64-bit MurmurHash3 of b.
func Murmur3(b []byte) uint64 {
	return murmur3.Sum64(b)
}

// Metro computes the 64-bit MetroHash of b.
func Metro(b []byte) uint64 {
	h := metrohash.NewMetroHash64()
	h.Write(b)
	return h.Sum64()
}

// XXHash computes the 64-bit xxHash of b.
func XXHash(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// Highway returns a keyed HighwayHash function. Use it when keys come from an untrusted source and collision flooding
// is a concern. The key must be HighwayKeySize bytes long.
func Highway(key []byte) (Func, error) {
	if _, err := highwayhash.New64(key); err != nil {
		return nil, fmt.Errorf("hasher: highway key: %w", err)
	}
	k := append([]byte(nil), key...)
	return func(b []byte) uint64 {
		return highwayhash.Sum64(b, k)
	}, nil
}

// Salted returns a function that hashes salt followed by b with f.
func Salted(f Func, salt []byte) Func {
	s := append([]byte(nil), salt...)
	return func(b []byte) uint64 {
		buf := make([]byte, 0, len(s)+len(b))
		buf = append(buf, s...)
		return f(append(buf, b...))
	}
}

// ByName returns a hash function by its name: fnv1a, murmur3, metro or xxhash. The keyed highway function needs a key,
// so it is built with a zero key here; call Highway directly to supply a secret one.
func ByName(name string) (Func, error) {
	switch name {
	case "fnv1a", "fnv":
		return FNV1a, nil
	case "murmur3":
		return Murmur3, nil
	case "metro":
		return Metro, nil
	case "xxhash":
		return XXHash, nil
	case "highway":
		return Highway(make([]byte, HighwayKeySize))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}
}
