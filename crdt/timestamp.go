package crdt

// Structs

// Timestamp is satisfied by every totally-ordered
// type that can tell whether it happened strictly
// before another instance of itself and whether it
// is equal to it. time.Time fulfills it as is.
type Timestamp[T any] interface {
	Before(other T) bool
	Equal(other T) bool
}

// Logical is a scalar logical clock value, e.g.
// a Lamport counter kept by the replicating layer.
type Logical uint64

// Functions

// Before returns true if l is strictly smaller than other.
func (l Logical) Before(other Logical) bool {
	return l < other
}

// Equal returns true if l and other denote the same instant.
func (l Logical) Equal(other Logical) bool {
	return l == other
}

// isBeforeWithBias returns true if first happened before
// second or, in case both are equal, if bias favors the
// operation carrying second.
func isBeforeWithBias[T Timestamp[T]](first T, second T, bias bool) bool {
	return first.Before(second) || (bias && first.Equal(second))
}
