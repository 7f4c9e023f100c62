// Package hashcons provides hash consing: a table that guarantees at most
// one canonical in-memory representative per distinct value, and reclaims
// that representative once no caller holds a handle to it.
//
// Hash consing is not just a deduplication cache.
// It is a tool that *forces the developer to ask*:
//
//	→ "Is this value really immutable?"
//	→ "Can deep equality be replaced by identity?"
//
// Callers build recursive, highly repetitive structures (expression
// trees, symbolic formulas, automata states) whose sub-components are
// themselves consed handles. Because every child is already canonical,
// shallow equality over child handles *is* deep structural equality, and
// memory usage is proportional to the number of distinct sub-structures,
// not their occurrence count.
//
// Features:
//   - Table[T]: find-or-insert keyed by the value's structural signature.
//   - Hc[T]: a comparable, reference-counted handle; == is identity
//     comparison and never falls back to deep equality.
//   - Eager or lazy reclamation, selected per table at construction.
//   - Single-owner or shared (multi-goroutine) locking discipline.
//
// Go has no deterministic destructors, so ownership is explicit: every
// handle obtained from Hashcons or Clone must be given back with exactly
// one Release call. Releasing twice, or using the zero Hc, is a fatal
// misuse and panics.
//
// WARNING: Do not mutate a value after consing it. Sharing is only safe
// because consed values are immutable.
package hashcons
