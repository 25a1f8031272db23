package crdt

// Structs

// TimestampedValue is an immutable observation of
// a value at one point in time. A newer observation
// supersedes it, it is never changed in place.
type TimestampedValue[V any, T Timestamp[T]] struct {
	value     V
	timestamp T
}

// Functions

// NewTimestampedValue wraps value observed at timestamp.
func NewTimestampedValue[V any, T Timestamp[T]](value V, timestamp T) TimestampedValue[V, T] {

	return TimestampedValue[V, T]{
		value:     value,
		timestamp: timestamp,
	}
}

// Value returns the wrapped payload.
func (tv TimestampedValue[V, T]) Value() V {
	return tv.value
}

// Timestamp returns the instant the payload was observed at.
func (tv TimestampedValue[V, T]) Timestamp() T {
	return tv.timestamp
}

// IsBefore returns true if this observation was made
// strictly earlier than other.
func (tv TimestampedValue[V, T]) IsBefore(other TimestampedValue[V, T]) bool {
	return tv.timestamp.Before(other.timestamp)
}

// IsBeforeTimestamp returns true if this observation
// was made strictly earlier than timestamp.
func (tv TimestampedValue[V, T]) IsBeforeTimestamp(timestamp T) bool {
	return tv.timestamp.Before(timestamp)
}
