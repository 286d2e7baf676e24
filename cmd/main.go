package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sinkwatch/agent/internal/audit"
	"github.com/sinkwatch/agent/internal/config"
	"github.com/sinkwatch/agent/internal/genmon"
	"github.com/sinkwatch/agent/pkg/pipewire/dump"
)

var (
	// CLI options
	dumpCommand string
	format      string
	timeout     time.Duration
	verbosity   int
)

func init() {
	flag.StringVar(&dumpCommand, "dump-command", "",
		"Executable that produces the PipeWire graph dump. Defaults to pw-dump.")
	flag.StringVar(&format, "format", "",
		"Output format: genmon or plain. Defaults to genmon.")
	flag.DurationVar(&timeout, "timeout", 5*time.Second,
		"Time budget for acquiring the graph snapshot.")
	flag.IntVar(&verbosity, "v", 1,
		"Log verbosity. 0 silences the per-step narration on stderr.")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <device_name>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	cfg := config.FromEnv()
	// Explicitly set flags win over the environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dump-command":
			cfg.DumpCommand = dumpCommand
		case "format":
			cfg.Format = format
		case "v":
			cfg.Verbosity = verbosity
		}
	})
	if cfg.Format == "" {
		cfg.Format = config.FormatGenmon
	}
	if cfg.Verbosity == 0 {
		cfg.Verbosity = verbosity
	}
	if flag.NArg() > 0 {
		cfg.Target = flag.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		usage()
		os.Exit(1)
	}

	logger := newLogger(cfg.Verbosity)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	source := dump.New(logger, dump.Config{Command: cfg.DumpCommand})
	result := audit.NewAuditor(logger).Audit(ctx, source, cfg.Target)

	switch cfg.Format {
	case config.FormatPlain:
		fmt.Println(genmon.RenderPlain(result))
	default:
		fmt.Println(genmon.Render(result))
	}
}

// newLogger builds a stderr console logger. Verbosity maps to logr V-levels,
// so the audit narration (logged at V(1)) shows at the default verbosity.
func newLogger(verbosity int) logr.Logger {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	z, err := zcfg.Build()
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(z)
}
