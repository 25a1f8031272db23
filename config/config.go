package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/numbleroot/lwwdict/crdt"
	"github.com/pkg/errors"
)

// Structs

// Config holds all information parsed from
// supplied config file.
type Config struct {
	PrometheusAddr string
	Bias           crdt.Bias
	Replicas       map[string]Replica
}

// Replica describes one in-process replica of the
// dictionary: its optional seed and the script of
// operations applied to it before replicas merge.
type Replica struct {
	Name          string
	Seed          map[string]string
	SeedTimestamp uint64
	Ops           []Op
}

// Op is one scripted add, update or remove
// carrying its externally assigned timestamp.
type Op struct {
	Kind      string
	Key       string
	Value     string
	Timestamp uint64
}

// Functions

// LoadConfig takes in the path to the main config
// file of lwwdict in TOML syntax and places the values
// from the file in the corresponding struct.
func LoadConfig(configFile string) (*Config, error) {

	// Ties favor removes and updates unless
	// the config file says otherwise.
	conf := &Config{
		Bias: crdt.DefaultBias(),
	}

	// Parse values from TOML file into struct.
	_, err := toml.DecodeFile(configFile, conf)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read in TOML config file at '%s'", configFile)
	}

	if len(conf.Replicas) == 0 {
		return nil, fmt.Errorf("config file at '%s' does not define any replica", configFile)
	}

	for name, replica := range conf.Replicas {

		// The table name identifies a replica
		// if no explicit name was given.
		if replica.Name == "" {
			replica.Name = name
		}

		for i, op := range replica.Ops {

			op.Kind = strings.ToLower(op.Kind)

			if err := op.validate(); err != nil {
				return nil, errors.Wrapf(err, "invalid operation %d of replica '%s'", i, replica.Name)
			}

			replica.Ops[i] = op
		}

		// Assign replica config back to main config.
		conf.Replicas[name] = replica
	}

	return conf, nil
}

// validate checks that op is one of the supported
// dictionary operations and names a key.
func (op Op) validate() error {

	switch op.Kind {
	case "add", "update", "remove":
	default:
		return fmt.Errorf("unsupported operation kind '%s', need one of add, update, remove", op.Kind)
	}

	if op.Key == "" {
		return fmt.Errorf("operation '%s' is missing a key", op.Kind)
	}

	return nil
}
