package hashcons

import (
	"bytes"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher supplies the structural hash and structural equality of the
// consed value type. The table imposes no normalization of its own: two
// values are "the same" exactly when Equal says so, and Hash must be
// deterministic and consistent with Equal (Equal(a, b) implies
// Hash(a) == Hash(b)). Hash collisions are tolerated; Equal decides.
type Hasher[T any] interface {
	Hash(T) uint64
	Equal(a, b T) bool
}

// Strings is a Hasher for string values.
type Strings struct{}

func (Strings) Hash(s string) uint64 { return xxhash.Sum64String(s) }

func (Strings) Equal(a, b string) bool { return a == b }

// Bytes is a Hasher for byte slices. The slice must not be modified
// after consing.
type Bytes struct{}

func (Bytes) Hash(p []byte) uint64 { return xxhash.Sum64(p) }

func (Bytes) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

// Comparable returns a Hasher for any comparable type, backed by the
// runtime's maphash with a fresh seed.
//
// This is the recursion enabler: a struct whose sub-expressions are
// Hc fields is itself comparable, == over it compares children by
// identity, and maphash hashes those handles by identity too. Deep
// structural equality of a composite value thereby reduces to one
// shallow comparison of canonical children.
func Comparable[T comparable]() Hasher[T] {
	return comparableHasher[T]{seed: maphash.MakeSeed()}
}

type comparableHasher[T comparable] struct {
	seed maphash.Seed
}

func (h comparableHasher[T]) Hash(v T) uint64 { return maphash.Comparable(h.seed, v) }

func (comparableHasher[T]) Equal(a, b T) bool { return a == b }
