// Package config assembles invocation settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	envTarget      = "SINKWATCH_TARGET"
	envDumpCommand = "SINKWATCH_DUMP_COMMAND"
	envFormat      = "SINKWATCH_FORMAT"
	envVerbosity   = "SINKWATCH_VERBOSITY"
)

// Output formats.
const (
	FormatGenmon = "genmon"
	FormatPlain  = "plain"
)

// Config holds one invocation's settings. Flags override environment values;
// the environment in turn may be seeded from a .env file.
type Config struct {
	// Target is the device name substring to audit.
	Target string
	// DumpCommand is the executable producing the graph dump.
	DumpCommand string
	// Format selects the output rendering, genmon or plain.
	Format string
	// Verbosity is the log detail level.
	Verbosity int
}

// FromEnv reads settings from the environment, loading a .env file from the
// working directory first if one exists.
func FromEnv() Config {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg := Config{
		Target:      os.Getenv(envTarget),
		DumpCommand: os.Getenv(envDumpCommand),
		Format:      os.Getenv(envFormat),
	}
	if v, err := strconv.Atoi(os.Getenv(envVerbosity)); err == nil {
		cfg.Verbosity = v
	}
	return cfg
}

// Validate checks the settings a run cannot proceed without.
func (c *Config) Validate() error {
	if c.Target == "" {
		return fmt.Errorf("target device name is required")
	}
	switch c.Format {
	case FormatGenmon, FormatPlain:
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	return nil
}
