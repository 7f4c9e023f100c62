package hashcons

import (
	"fmt"
	"sync/atomic"
)

// Hc is a reference-counted handle to a consed value. Handles are
// comparable: two handles are == exactly when they reference the same
// entry. By the consing invariant that holds exactly when their
// underlying values are structurally equal, so the comparison is
// constant time and never falls back to deep equality.
//
// Every handle obtained from Table.Hashcons or Clone owns one unit of
// its entry's reference count and must be given back with exactly one
// Release call. The zero Hc owns nothing; using it panics.
type Hc[T any] struct {
	entry *entry[T]
	table *Table[T]
}

// Value returns the consed value. The value must be treated as
// immutable; reads through it take no lock.
func (h Hc[T]) Value() T {
	return h.live().value
}

// Clone produces a second handle to the same entry, incrementing its
// reference count. No table lookup is performed, and no lock is taken.
func (h Hc[T]) Clone() Hc[T] {
	e := h.live()
	if n := e.refs.incr(); n <= 1 {
		panic(fmt.Errorf("hashcons: clone of dead entry %#x: %d", e.sig, n))
	}
	return h
}

// Release returns this handle's unit of the reference count. Under
// eager cleanup, dropping the last handle removes the entry from the
// table as part of this call; under lazy cleanup the entry lingers
// until Table.Cleanup. Releasing a handle twice corrupts the count and
// is reported as a fatal invariant violation.
func (h Hc[T]) Release() {
	h.table.release(h.live())
}

// Sum64 returns the entry's cached structural signature. It lets a
// parent value's Hasher fold in a consed child without rehashing the
// child's whole subtree.
func (h Hc[T]) Sum64() uint64 {
	return h.live().sig
}

// Refs reports the entry's current live-handle count. Diagnostic only:
// under shared access the value may be stale by the time it is read.
func (h Hc[T]) Refs() int64 {
	return h.live().refs.load()
}

// IsZero reports whether h is the zero handle. Useful for Composite
// implementations whose optional child slots may be unset.
func (h Hc[T]) IsZero() bool {
	return h.entry == nil
}

// String formats the underlying value.
func (h Hc[T]) String() string {
	return fmt.Sprintf("%v", h.live().value)
}

func (h Hc[T]) live() *entry[T] {
	if h.entry == nil {
		panic("use of zero hash-cons handle")
	}
	return h.entry
}

// refCount is the per-entry live-handle counter. It is atomic in both
// concurrency modes so that Clone and lazy-mode Release stay lock-free.
type refCount struct {
	n atomic.Int64
}

func (c *refCount) init(n int64) { c.n.Store(n) }

func (c *refCount) incr() int64 { return c.n.Add(1) }

func (c *refCount) decr() int64 { return c.n.Add(-1) }

func (c *refCount) load() int64 { return c.n.Load() }
