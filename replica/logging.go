package replica

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/numbleroot/lwwdict/crdt"
)

// Structs

type loggingService[K comparable, V any, T crdt.Timestamp[T]] struct {
	logger  log.Logger
	service Service[K, V, T]
}

// Functions

// NewLoggingService wraps a provided existing
// service with the provided logger.
func NewLoggingService[K comparable, V any, T crdt.Timestamp[T]](s Service[K, V, T], logger log.Logger) Service[K, V, T] {

	return &loggingService[K, V, T]{
		logger:  log.With(logger, "replica", s.Name()),
		service: s,
	}
}

func (s *loggingService[K, V, T]) Name() string {
	return s.service.Name()
}

// logResult emits a debug line per operation. Rejections
// are regular outcomes of last-writer-wins resolution.
func (s *loggingService[K, V, T]) logResult(logger log.Logger, ok bool) {

	if !ok {
		level.Debug(logger).Log("msg", "operation rejected, timestamp not dominant")
	} else {
		level.Debug(logger).Log("msg", "operation accepted")
	}
}

// Add wraps this service's Add method
// with added logging capabilities.
func (s *loggingService[K, V, T]) Add(key K, value V, ts T) bool {

	ok := s.service.Add(key, value, ts)

	logger := log.With(s.logger,
		"method", "ADD",
		"key", key,
		"value", value,
		"ts", ts,
	)

	s.logResult(logger, ok)

	return ok
}

// Update wraps this service's Update method
// with added logging capabilities.
func (s *loggingService[K, V, T]) Update(key K, value V, ts T) bool {

	ok := s.service.Update(key, value, ts)

	logger := log.With(s.logger,
		"method", "UPDATE",
		"key", key,
		"value", value,
		"ts", ts,
	)

	s.logResult(logger, ok)

	return ok
}

// Remove wraps this service's Remove method
// with added logging capabilities.
func (s *loggingService[K, V, T]) Remove(key K, ts T) bool {

	ok := s.service.Remove(key, ts)

	logger := log.With(s.logger,
		"method", "REMOVE",
		"key", key,
		"ts", ts,
	)

	s.logResult(logger, ok)

	return ok
}

func (s *loggingService[K, V, T]) Lookup(key K) (V, bool) {
	return s.service.Lookup(key)
}

func (s *loggingService[K, V, T]) Elements() map[K]V {
	return s.service.Elements()
}

func (s *loggingService[K, V, T]) Len() int {
	return s.service.Len()
}

func (s *loggingService[K, V, T]) Snapshot() *crdt.Dict[K, V, T] {
	return s.service.Snapshot()
}

// Merge wraps this service's Merge method
// with added logging capabilities.
func (s *loggingService[K, V, T]) Merge(other *crdt.Dict[K, V, T]) error {

	err := s.service.Merge(other)
	if err != nil {
		level.Error(s.logger).Log(
			"msg", "failed to merge replica state",
			"err", err,
		)
	} else {
		level.Debug(s.logger).Log("method", "MERGE", "msg", "merged replica state")
	}

	return err
}
