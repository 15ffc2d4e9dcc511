// Command cip-device is a reference CIP device simulator.
//
// This command brings a complete object stack up from a device profile:
//   - CLI argument parsing
//   - YAML device profile (built-in default when none is given)
//   - Persistence of settable attribute values
//   - Protocol capture to a CBOR log file
//   - Interactive shell or a hex request pipe on stdin/stdout
//
// Usage:
//
//	cip-device [flags]
//
// Flags:
//
//	-profile string       Device profile (YAML); built-in default if empty
//	-state string         State file for settable attribute values
//	-protocol-log string  Write protocol events to this file (CBOR)
//	-log-level string     Log level: debug, info, warn, error (default "info");
//	                      debug also traces every protocol event
//	-interactive          Start the interactive shell (default true)
//
// Examples:
//
//	# Start with the built-in profile and the interactive shell
//	cip-device
//
//	# Serve hex encoded requests from stdin, one per line
//	echo "0e 03 20 01 24 01 30 07" | cip-device -interactive=false
//
//	# Custom profile with persistence and protocol capture
//	cip-device -profile adapter.yaml -state /var/lib/cip/state.json -protocol-log session.clog
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cip-stack/cip-go/cmd/cip-device/interactive"
	"github.com/cip-stack/cip-go/pkg/interaction"
	"github.com/cip-stack/cip-go/pkg/log"
	"github.com/cip-stack/cip-go/pkg/persistence"
	"github.com/cip-stack/cip-go/pkg/profile"
	"github.com/cip-stack/cip-go/pkg/stack"
)

//go:embed default.yaml
var defaultProfile []byte

// Config holds the device configuration.
type Config struct {
	ProfileFile     string
	StateFile       string
	ProtocolLogFile string
	LogLevel        string
	Interactive     bool
}

var config Config

func init() {
	flag.StringVar(&config.ProfileFile, "profile", "", "Device profile (YAML); built-in default if empty")
	flag.StringVar(&config.StateFile, "state", "", "State file for settable attribute values")
	flag.StringVar(&config.ProtocolLogFile, "protocol-log", "", "Write protocol events to this file (CBOR)")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&config.Interactive, "interactive", true, "Start the interactive shell")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cip-device: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	level, err := parseLevel(config.LogLevel)
	if err != nil {
		return err
	}

	prof, err := loadProfile(config.ProfileFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The shell owns the terminal, so logs go through its writer.
	var shell *interactive.Shell
	logOut := io.Writer(os.Stderr)
	if config.Interactive {
		shell, err = interactive.New()
		if err != nil {
			return err
		}
		logOut = shell.Stderr()
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	var sinks []log.Logger
	if config.ProtocolLogFile != "" {
		fileLogger, err := log.NewFileLogger(config.ProtocolLogFile)
		if err != nil {
			return fmt.Errorf("open protocol log: %w", err)
		}
		defer func() {
			if err := fileLogger.Close(); err != nil {
				logger.Warn("close protocol log", "error", err)
			}
			logger.Info("protocol log closed", "file", config.ProtocolLogFile, "events", fileLogger.Count())
		}()
		sinks = append(sinks, fileLogger)
		logger.Info("protocol logging enabled", "file", config.ProtocolLogFile)
	}
	// The server already reports handler failures through slog; the
	// event trace is only added for debugging.
	if level <= slog.LevelDebug {
		sinks = append(sinks, log.NewSlogAdapter(logger))
	}
	protocolLogger := log.NewMultiLogger(sinks...)

	st := stack.New(stack.Config{
		Logger:           logger,
		ProtocolLogger:   protocolLogger,
		ReplyBufferSize:  prof.Stack.ReplyBufferSize,
		ConnectionIDSeed: prof.Stack.ConnectionIDSeed,
		Application:      prof,
	})
	if err := st.Init(ctx); err != nil {
		return err
	}
	defer func() {
		if err := st.Shutdown(context.Background()); err != nil {
			logger.Warn("shutdown", "error", err)
		}
	}()

	var recorder *persistence.Recorder
	if config.StateFile != "" {
		recorder = persistence.NewRecorder(persistence.NewStateStore(config.StateFile), st.Registry(), logger)
		if _, err := recorder.Restore(); err != nil {
			return fmt.Errorf("restore state: %w", err)
		}
		st.Registry().SetObserver(recorder)
	}

	logger.Info("device running",
		"profile", profileName(prof),
		"classes", len(st.Registry().Classes()),
		"conn_id", st.Server().ConnectionID())

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Info("received signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if shell != nil {
		shell.Attach(interactive.Config{
			Registry: st.Registry(),
			Client:   interaction.NewClient(st.Server()),
			Server:   st.Server(),
			Recorder: recorder,
		})
		shell.Run(ctx, cancel)
		return nil
	}
	return servePipe(ctx, st.Server(), os.Stdin, os.Stdout)
}

func loadProfile(path string) (*profile.Profile, error) {
	if path == "" {
		return profile.Parse(defaultProfile)
	}
	return profile.Load(path)
}

func profileName(p *profile.Profile) string {
	if p.Name == "" {
		return config.ProfileFile
	}
	return p.Name
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", s)
	}
}
