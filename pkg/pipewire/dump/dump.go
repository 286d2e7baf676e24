// Package dump acquires PipeWire graph snapshots by running the pw-dump
// command and parsing its JSON output.
package dump

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-logr/logr"

	"github.com/sinkwatch/agent/pkg/pipewire"
)

const defaultCommand = "pw-dump"

// Config controls how the dump command is invoked.
type Config struct {
	// Command is the executable to run, defaulting to "pw-dump". Tests point
	// this at fixture scripts.
	Command string
	// Args are passed to the command verbatim.
	Args []string
}

// Dumper is a one-shot snapshot source. It performs no caching: every
// Collect call runs the command again.
type Dumper struct {
	logger  logr.Logger
	command string
	args    []string
}

// New creates a Dumper with the given configuration.
func New(logger logr.Logger, config Config) *Dumper {
	command := config.Command
	if command == "" {
		command = defaultCommand
	}
	return &Dumper{
		logger:  logger.WithName("dump"),
		command: command,
		args:    config.Args,
	}
}

// Collect runs the dump command and parses its output into a snapshot.
// Cancellation and timeouts are governed entirely by ctx.
func (d *Dumper) Collect(ctx context.Context) (pipewire.GraphSnapshot, error) {
	d.logger.V(1).Info("running graph dump", "command", d.command)

	out, err := exec.CommandContext(ctx, d.command, d.args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("failed to run %s: %w: %s",
				d.command, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("failed to run %s: %w", d.command, err)
	}

	snapshot, err := pipewire.ParseDump(out)
	if err != nil {
		return nil, err
	}

	d.logger.V(1).Info("parsed graph dump", "objects", len(snapshot))
	return snapshot, nil
}
