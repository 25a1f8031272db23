package crdt

import (
	"sync"

	"github.com/pkg/errors"
)

// Variables

// ErrBiasMismatch is returned by Merge if both
// dictionaries resolve ties differently. Their
// views would never converge.
var ErrBiasMismatch = errors.New("cannot merge LWW dictionaries configured with different biases")

// Structs

// Dictionary is the contract a replicated LWW
// dictionary offers to the layer orchestrating
// replication between nodes.
type Dictionary[K comparable, V any, T Timestamp[T]] interface {
	Add(key K, value V, timestamp T) bool
	Update(key K, value V, timestamp T) bool
	Remove(key K, timestamp T) bool
	Lookup(key K) (V, bool)
	Materialize() map[K]V
	Len() int
	Merge(other *Dict[K, V, T]) error
}

// Dict is a state-based last-writer-wins element
// dictionary. The add-set holds the latest accepted
// add or update per key, the remove-set the latest
// tombstone per key. Tombstones are kept forever.
type Dict[K comparable, V any, T Timestamp[T]] struct {
	lock    *sync.RWMutex
	bias    Bias
	adds    map[K]TimestampedValue[V, T]
	removes map[K]T
	live    int
}

var _ Dictionary[string, string, Logical] = (*Dict[string, string, Logical])(nil)

// Functions

// InitDict returns an empty initialized LWW
// dictionary resolving ties according to bias.
func InitDict[K comparable, V any, T Timestamp[T]](bias Bias) *Dict[K, V, T] {

	return &Dict[K, V, T]{
		lock:    new(sync.RWMutex),
		bias:    bias,
		adds:    make(map[K]TimestampedValue[V, T]),
		removes: make(map[K]T),
	}
}

// InitDictFrom returns a LWW dictionary seeded with
// all elements, each one added at timestamp.
func InitDictFrom[K comparable, V any, T Timestamp[T]](elements map[K]V, timestamp T, bias Bias) *Dict[K, V, T] {

	d := InitDict[K, V, T](bias)

	for key, value := range elements {
		d.adds[key] = NewTimestampedValue(value, timestamp)
	}
	d.live = len(d.adds)

	return d
}

// Bias returns the tie-breaking policy of d.
func (d *Dict[K, V, T]) Bias() Bias {
	return d.bias
}

// Add inserts value at key if the key has never been
// added before or its current entry is strictly older
// than timestamp. Equal timestamps keep the existing
// entry. Returns whether the add was accepted.
func (d *Dict[K, V, T]) Add(key K, value V, timestamp T) bool {

	d.lock.Lock()
	defer d.lock.Unlock()

	if cur, found := d.adds[key]; found && !cur.IsBeforeTimestamp(timestamp) {
		return false
	}

	visible := d.isVisible(key)
	d.adds[key] = NewTimestampedValue(value, timestamp)
	d.recount(key, visible)

	return true
}

// Update replaces the value at an existing, visible
// key if its entry happened before timestamp, taking
// the update bias into account on equal timestamps.
// Updates never revive a removed key.
func (d *Dict[K, V, T]) Update(key K, value V, timestamp T) bool {

	d.lock.Lock()
	defer d.lock.Unlock()

	cur, found := d.adds[key]
	if !found {
		return false
	}

	if !isBeforeWithBias(cur.Timestamp(), timestamp, d.bias.Update) {
		return false
	}

	// Check tombstone only after timestamp dominance
	// was established so updates cannot cancel removes.
	if d.isRemoved(key) {
		return false
	}

	d.adds[key] = NewTimestampedValue(value, timestamp)

	return true
}

// Remove records a tombstone for key at timestamp unless
// a tombstone of the same or a later instant exists. The
// key does not need to have been added before.
func (d *Dict[K, V, T]) Remove(key K, timestamp T) bool {

	d.lock.Lock()
	defer d.lock.Unlock()

	if cur, found := d.removes[key]; found && !cur.Before(timestamp) {
		return false
	}

	visible := d.isVisible(key)
	d.removes[key] = timestamp
	d.recount(key, visible)

	return true
}

// Lookup returns the value stored at key and true
// if key is visible, the zero value and false otherwise.
func (d *Dict[K, V, T]) Lookup(key K) (V, bool) {

	d.lock.RLock()
	defer d.lock.RUnlock()

	cur, found := d.adds[key]
	if !found || d.isRemoved(key) {
		var zero V
		return zero, false
	}

	return cur.Value(), true
}

// Len returns the number of visible keys
// without building the materialized view.
func (d *Dict[K, V, T]) Len() int {

	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.live
}

// Materialize returns a snapshot of all visible
// key-value pairs. Later changes to d are not
// reflected in the returned map.
func (d *Dict[K, V, T]) Materialize() map[K]V {

	d.lock.RLock()
	defer d.lock.RUnlock()

	elements := make(map[K]V, len(d.adds))

	for key, cur := range d.adds {

		if !d.isRemoved(key) {
			elements[key] = cur.Value()
		}
	}

	return elements
}

// Merge folds add-set and remove-set of other into d.
// Per key, the later timestamp wins. On equal timestamps
// the entry already present in d is kept.
func (d *Dict[K, V, T]) Merge(other *Dict[K, V, T]) error {

	if other == nil || other == d {
		return nil
	}

	if other.bias != d.bias {
		return ErrBiasMismatch
	}

	// Copy other's state first so that we never hold
	// both locks at once.
	otherState := other.Clone()

	d.lock.Lock()
	defer d.lock.Unlock()

	for key, otherValue := range otherState.adds {

		if cur, found := d.adds[key]; !found || cur.IsBefore(otherValue) {
			visible := d.isVisible(key)
			d.adds[key] = otherValue
			d.recount(key, visible)
		}
	}

	for key, otherTime := range otherState.removes {

		if cur, found := d.removes[key]; !found || cur.Before(otherTime) {
			visible := d.isVisible(key)
			d.removes[key] = otherTime
			d.recount(key, visible)
		}
	}

	return nil
}

// Clone returns a deep copy of d's add-set
// and remove-set with the same bias.
func (d *Dict[K, V, T]) Clone() *Dict[K, V, T] {

	d.lock.RLock()
	defer d.lock.RUnlock()

	c := InitDict[K, V, T](d.bias)

	for key, cur := range d.adds {
		c.adds[key] = cur
	}

	for key, cur := range d.removes {
		c.removes[key] = cur
	}
	c.live = d.live

	return c
}

// isVisible returns true if key sits in the add-set
// and is not hidden by a tombstone.
func (d *Dict[K, V, T]) isVisible(key K) bool {

	_, found := d.adds[key]

	return found && !d.isRemoved(key)
}

// recount adjusts the live counter after key
// changed from being visible or not to its
// current state.
func (d *Dict[K, V, T]) recount(key K, wasVisible bool) {

	visible := d.isVisible(key)

	switch {
	case wasVisible && !visible:
		d.live--
	case !wasVisible && visible:
		d.live++
	}
}

// isRemoved decides whether key is hidden by a
// tombstone. Callers need to hold at least the
// read lock of d.
func (d *Dict[K, V, T]) isRemoved(key K) bool {

	removedAt, removed := d.removes[key]

	cur, found := d.adds[key]
	if !found {
		return removed
	}

	return removed && isBeforeWithBias(cur.Timestamp(), removedAt, d.bias.Remove)
}
