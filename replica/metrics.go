package replica

import (
	"github.com/go-kit/kit/metrics"
	"github.com/numbleroot/lwwdict/crdt"
)

// Structs

type metricsService[K comparable, V any, T crdt.Timestamp[T]] struct {
	service  Service[K, V, T]
	ops      metrics.Counter
	merges   metrics.Counter
	liveKeys metrics.Gauge
}

// Functions

// NewMetricsService counts operations by method and
// result, merges by result and tracks the number of
// visible keys. All metrics need to accept the label
// "replica", ops additionally "method" and "result",
// merges "result".
func NewMetricsService[K comparable, V any, T crdt.Timestamp[T]](s Service[K, V, T], ops metrics.Counter, merges metrics.Counter, liveKeys metrics.Gauge) Service[K, V, T] {

	return &metricsService[K, V, T]{
		service:  s,
		ops:      ops.With("replica", s.Name()),
		merges:   merges.With("replica", s.Name()),
		liveKeys: liveKeys.With("replica", s.Name()),
	}
}

func (s *metricsService[K, V, T]) Name() string {
	return s.service.Name()
}

// observe counts one operation and refreshes
// the gauge of visible keys after changes.
func (s *metricsService[K, V, T]) observe(method string, ok bool) {

	s.ops.With("method", method, "result", result(ok)).Add(1)

	if ok {
		s.liveKeys.Set(float64(s.service.Len()))
	}
}

func (s *metricsService[K, V, T]) Add(key K, value V, ts T) bool {

	ok := s.service.Add(key, value, ts)
	s.observe("add", ok)

	return ok
}

func (s *metricsService[K, V, T]) Update(key K, value V, ts T) bool {

	ok := s.service.Update(key, value, ts)
	s.observe("update", ok)

	return ok
}

func (s *metricsService[K, V, T]) Remove(key K, ts T) bool {

	ok := s.service.Remove(key, ts)
	s.observe("remove", ok)

	return ok
}

func (s *metricsService[K, V, T]) Lookup(key K) (V, bool) {
	return s.service.Lookup(key)
}

func (s *metricsService[K, V, T]) Elements() map[K]V {
	return s.service.Elements()
}

func (s *metricsService[K, V, T]) Len() int {
	return s.service.Len()
}

func (s *metricsService[K, V, T]) Snapshot() *crdt.Dict[K, V, T] {
	return s.service.Snapshot()
}

func (s *metricsService[K, V, T]) Merge(other *crdt.Dict[K, V, T]) error {

	err := s.service.Merge(other)

	s.merges.With("result", result(err == nil)).Add(1)

	if err == nil {
		s.liveKeys.Set(float64(s.service.Len()))
	}

	return err
}

// result maps acceptance to a label value.
func result(ok bool) string {

	if ok {
		return "accepted"
	}

	return "rejected"
}
