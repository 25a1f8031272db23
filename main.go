package main

import (
	"flag"
	"os"
	"sort"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/numbleroot/lwwdict/config"
	"github.com/numbleroot/lwwdict/crdt"
	"github.com/numbleroot/lwwdict/replica"
)

// Structs

// Replica is the dictionary instantiation the
// harness runs: string keys and values ordered
// by scripted logical timestamps.
type Replica = replica.Service[string, string, crdt.Logical]

// Functions

// initLogger initializes a JSON gokit-logger set
// to the according log level supplied via cli flag.
func initLogger(loglevel string) log.Logger {

	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger,
		"ts", log.DefaultTimestampUTC,
		"caller", log.DefaultCaller,
	)

	switch strings.ToLower(loglevel) {
	case "info":
		logger = level.NewFilter(logger, level.AllowInfo())
	case "warn":
		logger = level.NewFilter(logger, level.AllowWarn())
	case "error":
		logger = level.NewFilter(logger, level.AllowError())
	default:
		logger = level.NewFilter(logger, level.AllowDebug())
	}

	return logger
}

// replicaConfs returns all configured replicas
// ordered by their name in the config file.
func replicaConfs(conf *config.Config) []config.Replica {

	names := make([]string, 0, len(conf.Replicas))
	for name := range conf.Replicas {
		names = append(names, name)
	}
	sort.Strings(names)

	confs := make([]config.Replica, 0, len(names))

	for _, name := range names {

		replicaConf := conf.Replicas[name]
		if replicaConf.Name == "" {
			replicaConf.Name = name
		}

		confs = append(confs, replicaConf)
	}

	return confs
}

// initReplica creates one dictionary replica seeded
// as configured and decorated with logging and metrics.
func initReplica(logger log.Logger, replicaConf config.Replica, bias crdt.Bias, m *Metrics) Replica {

	dict := crdt.InitDictFrom(replicaConf.Seed, crdt.Logical(replicaConf.SeedTimestamp), bias)

	var r Replica
	r = replica.NewService(replicaConf.Name, dict)
	r = replica.NewLoggingService(r, logger)
	r = replica.NewMetricsService(r, m.Replica.Operations, m.Replica.Merges, m.Replica.LiveKeys)

	return r
}

// runScript applies all scripted operations
// to r in the order they were configured.
func runScript(r Replica, ops []config.Op) {

	for _, op := range ops {

		ts := crdt.Logical(op.Timestamp)

		switch op.Kind {
		case "add":
			r.Add(op.Key, op.Value, ts)
		case "update":
			r.Update(op.Key, op.Value, ts)
		case "remove":
			r.Remove(op.Key, ts)
		}
	}
}

// run builds all replicas, plays their scripts and
// merges them until every replica agrees.
func run(logger log.Logger, conf *config.Config, m *Metrics) ([]Replica, error) {

	confs := replicaConfs(conf)
	replicas := make([]Replica, 0, len(confs))

	for _, replicaConf := range confs {

		r := initReplica(logger, replicaConf, conf.Bias, m)
		runScript(r, replicaConf.Ops)

		replicas = append(replicas, r)
	}

	err := replica.Converge(replicas)

	return replicas, err
}

func main() {

	// Parse command-line flags.
	configFlag := flag.String("config", "config.toml", "Provide path to configuration file in TOML syntax.")
	envFlag := flag.String("env", ".env", "Provide path to an optional .env file overriding log level and metrics address.")
	loglevelFlag := flag.String("loglevel", "debug", "This flag sets the default logging level.")
	serveFlag := flag.Bool("serve", false, "Keep exposing Prometheus metrics after all replicas converged.")
	flag.Parse()

	// Values from the environment win over flags.
	env, envErr := config.LoadEnv(*envFlag)
	if envErr == nil && env.LogLevel != "" {
		*loglevelFlag = env.LogLevel
	}

	logger := initLogger(*loglevelFlag)

	if envErr != nil {
		level.Error(logger).Log(
			"msg", "failed to load the environment", "err", envErr,
		)
		os.Exit(1)
	}

	// Read configuration from file.
	conf, err := config.LoadConfig(*configFlag)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to load the config", "err", err,
		)
		os.Exit(1)
	}

	env.Apply(conf)

	m := NewMetrics(conf.PrometheusAddr)

	promDone := make(chan struct{})
	go func() {
		runPromHTTP(logger, conf.PrometheusAddr)
		close(promDone)
	}()

	replicas, err := run(logger, conf, m)

	for _, r := range replicas {
		level.Info(logger).Log(
			"msg", "materialized view",
			"replica", r.Name(),
			"elements", r.Elements(),
		)
	}

	if err != nil {
		level.Error(logger).Log(
			"msg", "replicas failed to converge",
			"err", err,
		)
		os.Exit(2)
	}

	level.Info(logger).Log("msg", "all replicas converged", "replicas", len(replicas))

	if *serveFlag {
		<-promDone
	}
}
