package hashcons

// Releasable is the one capability of a handle that a composite value
// can expose without naming its own concrete type.
type Releasable interface {
	Release()
}

// Composite is implemented by value types that embed consed handles as
// sub-components. Implementing it hands the lifecycle of those embedded
// handle units to the table:
//
//   - Hashcons consumes them: when the consed value turns out to be a
//     duplicate of a stored entry, the duplicate's children are released
//     immediately (the stored twin already owns units for its own
//     children).
//   - Removing an entry, eagerly on last release or during a sweep,
//     releases the stored value's children, so a sub-expression lives
//     exactly as long as something still reaches it.
//
// Children must return only non-zero handles; the cascade runs with no
// table lock held, so a child's release may in turn remove the child's
// entry without deadlocking.
//
// Value types without embedded handles simply do not implement
// Composite, and the table never touches their sub-structure.
type Composite interface {
	Children() []Releasable
}

func releaseChildren(v any) {
	c, ok := v.(Composite)
	if !ok {
		return
	}
	for _, child := range c.Children() {
		child.Release()
	}
}
