package hashcons

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// entry is the canonical stored representation of one distinct value:
// the value itself (immutable after creation), its cached structural
// signature, and the number of live handles referencing it.
type entry[T any] struct {
	value T
	sig   uint64
	refs  refCount
}

// Table owns the canonical storage of consed values. Entries live in
// buckets keyed by their structural signature; a bucket holds more than
// one entry only when distinct values collide on the signature.
//
// A Table must be created with New. The mode pair chosen at construction
// is fixed for its lifetime; a SingleOwner table must never be touched
// from more than one goroutine at a time.
type Table[T any] struct {
	hasher Hasher[T]
	conf   Config

	mu      locker
	buckets map[uint64][]*entry[T]
	size    int

	id     string
	logger *zap.Logger
}

// New returns an empty table that canonicalizes values of type T under
// the structural hash and equality supplied by hasher.
func New[T any](hasher Hasher[T], conf Config) *Table[T] {
	if hasher == nil {
		panic("hasher must not be nil")
	}
	logger := conf.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Table[T]{
		hasher:  hasher,
		conf:    conf,
		mu:      conf.locker(),
		buckets: make(map[uint64][]*entry[T]),
		id:      uuid.New().String(),
		logger:  logger,
	}
}

// Hashcons returns the canonical handle for value, deduplicating against
// every value consed before. If a structurally equal entry is live, its
// count is incremented and a handle to it returned; if a zero-count
// tombstone exists (lazy mode), it is revived with its identity intact;
// otherwise a fresh entry is inserted with count one.
//
// The whole find-or-insert runs as one critical section, so two
// goroutines consing equal values concurrently can never each create an
// entry.
//
// Sub-components of value, if any, must themselves already be consed
// handles; that is what keeps the hasher's work shallow. Hashcons
// consumes the value: if T implements Composite, the handle units
// embedded in it pass to the table, and when value turns out to be a
// duplicate its embedded units are released on the spot.
func (t *Table[T]) Hashcons(value T) Hc[T] {
	sig := t.hasher.Hash(value)

	h, dupe := t.findOrInsert(value, sig)
	if dupe {
		// The stored twin already owns units for its own children.
		releaseChildren(value)
	}
	return h
}

func (t *Table[T]) findOrInsert(value T, sig uint64) (Hc[T], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.buckets[sig] {
		if !t.hasher.Equal(e.value, value) {
			continue
		}
		switch n := e.refs.incr(); {
		case n == 1:
			// Revived a tombstone. Under eager cleanup a zero-count
			// entry must not be reachable at all.
			if t.conf.Cleanup == Eager {
				panic(fmt.Errorf("hashcons: dead entry %#x reachable under eager cleanup", sig))
			}
			t.logger.Debug("revived entry",
				zap.String("table", t.id),
				zap.Uint64("signature", sig),
			)
		case n < 1:
			panic(fmt.Errorf("hashcons: reference count underflow on entry %#x: %d", sig, n))
		}
		return Hc[T]{entry: e, table: t}, true
	}

	e := &entry[T]{value: value, sig: sig}
	e.refs.init(1)
	t.buckets[sig] = append(t.buckets[sig], e)
	t.size++
	t.logger.Debug("interned entry",
		zap.String("table", t.id),
		zap.Uint64("signature", sig),
		zap.Int("entries", t.size),
	)
	return Hc[T]{entry: e, table: t}, false
}

// Len reports the number of entries currently stored, zero-count
// tombstones included. It is a diagnostic, not a control input.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Cleanup removes every entry whose reference count is zero. Each sweep
// holds exclusive access for its whole duration, so no concurrent
// Hashcons can revive an entry mid-removal. Removing a composite entry
// releases its children, which may create fresh tombstones; Cleanup
// therefore re-sweeps until nothing is left to remove, and on return
// Len reflects only live entries. Under eager cleanup the table never
// holds tombstones and the call is vacuous.
func (t *Table[T]) Cleanup() {
	for {
		dead := t.sweepOnce()
		if len(dead) == 0 {
			return
		}
		for _, v := range dead {
			releaseChildren(v)
		}
	}
}

func (t *Table[T]) sweepOnce() []T {
	t.mu.Lock()
	defer t.mu.Unlock()

	var dead []T
	for sig, bucket := range t.buckets {
		kept := bucket[:0]
		for _, e := range bucket {
			if e.refs.load() == 0 {
				dead = append(dead, e.value)
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(t.buckets, sig)
		} else {
			t.buckets[sig] = kept
		}
	}
	t.size -= len(dead)
	if len(dead) > 0 {
		t.logger.Debug("swept table",
			zap.String("table", t.id),
			zap.Int("removed", len(dead)),
			zap.Int("entries", t.size),
		)
	}
	return dead
}

// release gives back one unit of e's reference count. Reached only via
// Hc.Release. Under lazy cleanup the counter alone changes and the
// entry lingers as a tombstone; under eager cleanup the
// decrement-to-zero and the removal happen in one critical section,
// and the removed entry's children are released once the lock is gone.
func (t *Table[T]) release(e *entry[T]) {
	if t.conf.Cleanup == Lazy {
		if n := e.refs.decr(); n < 0 {
			panic(fmt.Errorf("hashcons: reference count underflow on entry %#x: %d", e.sig, n))
		}
		return
	}

	if removed := t.decrAndMaybeRemove(e); removed {
		releaseChildren(e.value)
	}
}

func (t *Table[T]) decrAndMaybeRemove(e *entry[T]) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := e.refs.decr()
	switch {
	case n < 0:
		panic(fmt.Errorf("hashcons: reference count underflow on entry %#x: %d", e.sig, n))
	case n > 0:
		return false
	}

	t.removeLocked(e)
	t.logger.Debug("removed entry",
		zap.String("table", t.id),
		zap.Uint64("signature", e.sig),
		zap.Int("entries", t.size),
	)
	return true
}

// removeLocked unlinks e from its bucket. Caller holds the write lock.
func (t *Table[T]) removeLocked(dead *entry[T]) {
	bucket := t.buckets[dead.sig]
	kept := bucket[:0]
	for _, e := range bucket {
		if e != dead {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(bucket) {
		panic(fmt.Errorf("hashcons: entry %#x vanished before removal", dead.sig))
	}
	if len(kept) == 0 {
		delete(t.buckets, dead.sig)
	} else {
		t.buckets[dead.sig] = kept
	}
	t.size--
}
