package replica_test

import (
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/numbleroot/lwwdict/crdt"
	"github.com/numbleroot/lwwdict/replica"
	"github.com/stretchr/testify/assert"
)

// Functions

func newReplica(name string) replica.Service[string, string, crdt.Logical] {
	return replica.NewService(name, crdt.InitDict[string, string, crdt.Logical](crdt.DefaultBias()))
}

// TestNewService checks naming of fresh replicas.
func TestNewService(t *testing.T) {

	s := newReplica("replica-1")
	assert.Equal(t, "replica-1", s.Name())

	// Unnamed replicas receive a random UUID.
	first := newReplica("")
	second := newReplica("")
	assert.Len(t, first.Name(), 36)
	assert.NotEqual(t, first.Name(), second.Name())
}

// TestServiceOperations runs the dictionary operations
// through a decorated replica.
func TestServiceOperations(t *testing.T) {

	s := replica.NewLoggingService(newReplica("replica-1"), log.NewNopLogger())

	assert.True(t, s.Add("k", "v", 1))
	assert.False(t, s.Add("k", "tie", 1))
	assert.True(t, s.Update("k", "v2", 1))
	assert.False(t, s.Update("missing", "v", 1))

	value, found := s.Lookup("k")
	assert.True(t, found)
	assert.Equal(t, "v2", value)

	assert.True(t, s.Remove("k", 1))
	assert.False(t, s.Remove("k", 1))

	_, found = s.Lookup("k")
	assert.False(t, found)
	assert.Empty(t, s.Elements())
	assert.Equal(t, 0, s.Len())
}

// TestSnapshotIsolation checks that snapshots
// carry tombstones and are not shared.
func TestSnapshotIsolation(t *testing.T) {

	s := newReplica("replica-1")
	s.Add("a", "a", 1)
	s.Remove("b", 5)

	snapshot := s.Snapshot()
	snapshot.Add("c", "c", 1)
	assert.Equal(t, map[string]string{"a": "a"}, s.Elements())

	// Tombstone of b travels with the snapshot.
	other := newReplica("replica-2")
	other.Add("b", "b", 3)
	assert.Nil(t, other.Merge(s.Snapshot()))
	assert.Equal(t, map[string]string{"a": "a"}, other.Elements())
}

// TestConverge checks that a full anti-entropy
// round makes all replicas agree.
func TestConverge(t *testing.T) {

	first := newReplica("replica-1")
	second := newReplica("replica-2")
	third := newReplica("replica-3")

	first.Add("a", "a", 10)
	first.Remove("c", 9)
	second.Add("b", "b", 10)
	second.Remove("c", 12)
	third.Add("c", "c", 11)
	third.Update("c", "c2", 13)

	services := []replica.Service[string, string, crdt.Logical]{first, second, third}

	err := replica.Converge(services)
	assert.Nilf(t, err, "expected nil error for Converge() but received: %v", err)

	exp := map[string]string{"a": "a", "b": "b", "c": "c2"}
	for _, s := range services {
		assert.Equalf(t, exp, s.Elements(), "replica '%s' has unexpected view", s.Name())
	}

	// Empty and single replica sets converge trivially.
	assert.Nil(t, replica.Converge([]replica.Service[string, string, crdt.Logical]{}))
	assert.Nil(t, replica.Converge(services[:1]))
}

// TestConvergeDiverged checks that exact ties with
// different payloads are reported.
func TestConvergeDiverged(t *testing.T) {

	first := newReplica("replica-1")
	second := newReplica("replica-2")
	first.Add("k", "mine", 4)
	second.Add("k", "theirs", 4)

	err := replica.Converge([]replica.Service[string, string, crdt.Logical]{first, second})
	assert.ErrorIs(t, err, replica.ErrDiverged)
}

// TestConvergeBiasMismatch checks that a replica
// configured differently aborts the round.
func TestConvergeBiasMismatch(t *testing.T) {

	first := newReplica("replica-1")
	second := replica.NewService("replica-2", crdt.InitDict[string, string, crdt.Logical](crdt.Bias{}))

	err := replica.Converge([]replica.Service[string, string, crdt.Logical]{first, second})
	assert.ErrorIs(t, err, crdt.ErrBiasMismatch)
}
