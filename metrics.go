package main

import (
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Structs

// Metrics bundles all metrics exposed by lwwdict.
type Metrics struct {
	Replica *ReplicaMetrics
}

// ReplicaMetrics are shared by all replicas of a
// process and told apart by the label "replica".
type ReplicaMetrics struct {
	Operations metrics.Counter
	Merges     metrics.Counter
	LiveKeys   metrics.Gauge
}

// Functions

// NewMetrics returns Prometheus backed metrics if
// addr is set and no-op metrics otherwise.
func NewMetrics(addr string) *Metrics {

	m := &Metrics{}

	if addr == "" {
		m.Replica = &ReplicaMetrics{
			Operations: discard.NewCounter(),
			Merges:     discard.NewCounter(),
			LiveKeys:   discard.NewGauge(),
		}
	} else {
		m.Replica = &ReplicaMetrics{
			Operations: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "lwwdict",
				Subsystem: "replica",
				Name:      "operations_total",
				Help:      "Number of add, update and remove operations by result",
			}, []string{"replica", "method", "result"}),
			Merges: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "lwwdict",
				Subsystem: "replica",
				Name:      "merges_total",
				Help:      "Number of merges of other replicas' state by result",
			}, []string{"replica", "result"}),
			LiveKeys: prometheus.NewGaugeFrom(prom.GaugeOpts{
				Namespace: "lwwdict",
				Subsystem: "replica",
				Name:      "live_keys",
				Help:      "Number of keys currently visible",
			}, []string{"replica"}),
		}
	}

	return m
}

func runPromHTTP(logger log.Logger, addr string) {

	if addr == "" {
		level.Debug(logger).Log("msg", "prometheus addr is empty, not exposing prometheus metrics")
		return
	}

	http.Handle("/metrics", promhttp.Handler())

	level.Info(logger).Log("msg", "prometheus handler listening", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		level.Warn(logger).Log("msg", "failed to serve prometheus metrics", "err", err)
	}
}
