package replica_test

import (
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/numbleroot/lwwdict/crdt"
	"github.com/numbleroot/lwwdict/replica"
	"github.com/stretchr/testify/assert"
)

// Structs

type recordingLogger struct {
	lines []map[string]interface{}
}

// Functions

func (l *recordingLogger) Log(keyvals ...interface{}) error {

	line := make(map[string]interface{})

	for i := 0; i+1 < len(keyvals); i += 2 {
		line[keyvals[i].(string)] = keyvals[i+1]
	}

	l.lines = append(l.lines, line)

	return nil
}

// TestLoggingService checks levels and fields
// the logging decorator emits.
func TestLoggingService(t *testing.T) {

	logger := &recordingLogger{}
	s := replica.NewLoggingService(newReplica("replica-1"), log.Logger(logger))

	s.Add("k", "v", 2)
	s.Add("k", "stale", 1)

	assert.Len(t, logger.lines, 2)

	accepted := logger.lines[0]
	assert.Equal(t, level.DebugValue(), accepted["level"])
	assert.Equal(t, "replica-1", accepted["replica"])
	assert.Equal(t, "ADD", accepted["method"])
	assert.Equal(t, "k", accepted["key"])
	assert.Equal(t, crdt.Logical(2), accepted["ts"])
	assert.Equal(t, "operation accepted", accepted["msg"])

	// Losing against a newer entry is a regular outcome.
	rejected := logger.lines[1]
	assert.Equal(t, level.DebugValue(), rejected["level"])
	assert.Equal(t, "operation rejected, timestamp not dominant", rejected["msg"])

	// Failing merges are logged as errors.
	other := crdt.InitDict[string, string, crdt.Logical](crdt.Bias{})
	err := s.Merge(other)
	assert.ErrorIs(t, err, crdt.ErrBiasMismatch)

	failed := logger.lines[len(logger.lines)-1]
	assert.Equal(t, level.ErrorValue(), failed["level"])
	assert.Equal(t, crdt.ErrBiasMismatch, failed["err"])
}
