package replica

import (
	"github.com/numbleroot/lwwdict/crdt"
	uuid "github.com/satori/go.uuid"
)

// Structs

// Service defines the interface a replica of
// the LWW dictionary exposes to the layer that
// orchestrates replication.
type Service[K comparable, V any, T crdt.Timestamp[T]] interface {

	// Name identifies this replica among its peers.
	Name() string

	// Add inserts value at key if key is absent or
	// its current entry is strictly older than ts.
	Add(key K, value V, ts T) bool

	// Update replaces the value of an existing,
	// visible key observed before ts.
	Update(key K, value V, ts T) bool

	// Remove records a tombstone for key at ts.
	Remove(key K, ts T) bool

	// Lookup returns the visible value at key.
	Lookup(key K) (V, bool)

	// Elements returns a snapshot of all visible
	// key-value pairs.
	Elements() map[K]V

	// Len returns the number of visible keys.
	Len() int

	// Snapshot returns a deep copy of the full
	// replica state, tombstones included, ready
	// to be handed to another replica.
	Snapshot() *crdt.Dict[K, V, T]

	// Merge folds the state of another replica
	// into this one.
	Merge(other *crdt.Dict[K, V, T]) error
}

type service[K comparable, V any, T crdt.Timestamp[T]] struct {
	name string
	dict *crdt.Dict[K, V, T]
}

// Functions

// NewService returns a replica named name that stores
// its state in dict. An empty name is replaced by a
// random UUID.
func NewService[K comparable, V any, T crdt.Timestamp[T]](name string, dict *crdt.Dict[K, V, T]) Service[K, V, T] {

	if name == "" {
		name = uuid.NewV4().String()
	}

	return &service[K, V, T]{
		name: name,
		dict: dict,
	}
}

func (s *service[K, V, T]) Name() string {
	return s.name
}

func (s *service[K, V, T]) Add(key K, value V, ts T) bool {
	return s.dict.Add(key, value, ts)
}

func (s *service[K, V, T]) Update(key K, value V, ts T) bool {
	return s.dict.Update(key, value, ts)
}

func (s *service[K, V, T]) Remove(key K, ts T) bool {
	return s.dict.Remove(key, ts)
}

func (s *service[K, V, T]) Lookup(key K) (V, bool) {
	return s.dict.Lookup(key)
}

func (s *service[K, V, T]) Elements() map[K]V {
	return s.dict.Materialize()
}

func (s *service[K, V, T]) Len() int {
	return s.dict.Len()
}

func (s *service[K, V, T]) Snapshot() *crdt.Dict[K, V, T] {
	return s.dict.Clone()
}

func (s *service[K, V, T]) Merge(other *crdt.Dict[K, V, T]) error {
	return s.dict.Merge(other)
}
