package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Structs

// Env holds information specific to the
// system where lwwdict is run. This enables
// host adaptions without needing to maintain
// two different config files.
type Env struct {
	LogLevel       string
	PrometheusAddr string
}

// Functions

// LoadEnv reads in all values defined in envFile
// and takes variables already present in the
// process environment into account as well. A
// missing envFile leaves only the latter.
func LoadEnv(envFile string) (*Env, error) {

	// Load environment file. Existing variables
	// are not overwritten by godotenv.
	err := godotenv.Load(envFile)
	if err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrapf(err, "failed to read in .env file at '%s'", envFile)
	}

	return &Env{
		LogLevel:       os.Getenv("LWWDICT_LOGLEVEL"),
		PrometheusAddr: os.Getenv("LWWDICT_PROMETHEUS_ADDR"),
	}, nil
}

// Apply overrides all fields of conf for which
// env carries a non-empty value.
func (env *Env) Apply(conf *Config) {

	if env.PrometheusAddr != "" {
		conf.PrometheusAddr = env.PrometheusAddr
	}
}
