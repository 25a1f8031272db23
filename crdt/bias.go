package crdt

// Structs

// Bias decides which operation wins if two of them
// carry exactly the same timestamp.
type Bias struct {

	// Remove favors a removal over an add or update
	// of the same instant when looking up a key.
	Remove bool

	// Update favors an update over the add it
	// competes with when applying the update.
	Update bool
}

// Functions

// DefaultBias lets removals win against adds and
// updates win against adds on equal timestamps.
func DefaultBias() Bias {

	return Bias{
		Remove: true,
		Update: true,
	}
}
