package hashcons

import (
	"sync"

	"go.uber.org/zap"
)

// ConcurrencyMode selects the locking discipline of a table. It is fixed
// for the table's lifetime.
type ConcurrencyMode int

const (
	// SingleOwner confines the table and all of its handles to one
	// logical owner. No operation takes a lock.
	SingleOwner ConcurrencyMode = iota

	// Shared allows the table and its handles to cross goroutines. All
	// table mutations run under a read/write mutex; reads through an
	// already-issued handle stay lock-free.
	Shared
)

// CleanupMode selects when a dead entry leaves the table.
type CleanupMode int

const (
	// Eager removes an entry the instant its reference count reaches
	// zero, inside the releasing operation itself.
	Eager CleanupMode = iota

	// Lazy leaves zero-count entries in place until an explicit Cleanup
	// call sweeps them. Until then a re-cons of the same value revives
	// the existing entry, preserving its identity.
	Lazy
)

// Config carries the construction-time options of a table. The zero
// value means single-owner access with eager reclamation and no logging.
type Config struct {
	Concurrency ConcurrencyMode
	Cleanup     CleanupMode

	// Logger receives debug-level insert/revive/remove/sweep events.
	// Nil disables logging.
	Logger *zap.Logger
}

// NewConfig builds a Config for the given mode pair.
func NewConfig(cm ConcurrencyMode, clm CleanupMode) Config {
	return Config{Concurrency: cm, Cleanup: clm}
}

// locker abstracts the two concurrency modes: Shared tables carry a
// real sync.RWMutex, SingleOwner tables a no-op stand-in.
type locker interface {
	sync.Locker
	RLock()
	RUnlock()
}

type nopLocker struct{}

func (nopLocker) Lock()    {}
func (nopLocker) Unlock()  {}
func (nopLocker) RLock()   {}
func (nopLocker) RUnlock() {}

func (c Config) locker() locker {
	switch c.Concurrency {
	case SingleOwner:
		return nopLocker{}
	case Shared:
		return &sync.RWMutex{}
	default:
		panic("exhaustive match")
	}
}
