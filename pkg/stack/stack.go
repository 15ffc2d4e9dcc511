package stack

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cip-stack/cip-go/pkg/interaction"
	"github.com/cip-stack/cip-go/pkg/log"
	"github.com/cip-stack/cip-go/pkg/model"
	"github.com/cip-stack/cip-go/pkg/wire"
)

// Stack errors.
var (
	ErrAlreadyStarted = errors.New("stack already started")
	ErrNotStarted     = errors.New("stack not started")
)

// State represents the stack state.
type State uint8

const (
	// StateIdle - stack created but not initialized.
	StateIdle State = iota

	// StateInitializing - Init is running.
	StateInitializing

	// StateRunning - all objects are registered and requests are served.
	StateRunning

	// StateShuttingDown - Shutdown is running.
	StateShuttingDown

	// StateStopped - all classes have been deleted.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateInitializing:
		return "INITIALIZING"
	case StateRunning:
		return "RUNNING"
	case StateShuttingDown:
		return "SHUTTING_DOWN"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Config configures a Stack. Every collaborator is optional; nil ones are
// skipped.
type Config struct {
	// Logger receives operational logs. Nil discards them.
	Logger *slog.Logger

	// ProtocolLogger receives message and state events. Nil disables capture.
	ProtocolLogger log.Logger

	// ReplyBufferSize bounds reply payloads. Zero uses the router default.
	ReplyBufferSize int

	// ConnectionIDSeed is passed to the connection manager. Zero derives a
	// random seed.
	ConnectionIDSeed uint32

	Encapsulation     Encapsulation
	Identity          ObjectInitializer
	TCPIP             TCPIPInterface
	EthernetLink      ObjectInitializer
	ConnectionManager ConnectionManager
	Assembly          Assembly
	Application       ObjectInitializer
}

// Stack is the composition root. It brings the object model up and down
// in dependency order.
type Stack struct {
	mu sync.Mutex

	config         Config
	logger         *slog.Logger
	protocolLogger log.Logger
	sessionID      string

	state    State
	registry *model.Registry
	server   *interaction.Server
}

// New creates a stack in StateIdle.
func New(cfg Config) *Stack {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	protocolLogger := cfg.ProtocolLogger
	if protocolLogger == nil {
		protocolLogger = log.NoopLogger{}
	}
	return &Stack{
		config:         cfg,
		logger:         logger,
		protocolLogger: protocolLogger,
		sessionID:      uuid.NewString(),
	}
}

// State returns the current state.
func (s *Stack) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Registry returns the registry, or nil before Init.
func (s *Stack) Registry() *model.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry
}

// Server returns the message router, or nil before Init.
func (s *Stack) Server() *interaction.Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.server
}

type initStep struct {
	name string
	run  func(ctx context.Context) error
}

// Init initializes the encapsulation layer, the message router and then
// every object. The first failing step aborts Init: an encapsulation
// layer that is already up is shut down, the registry is dropped and the
// stack returns to StateIdle, so it may be initialized again.
func (s *Stack) Init(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle && s.state != StateStopped {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.setState(StateInitializing, "")
	s.mu.Unlock()

	cfg := s.config
	encapUp := false
	steps := []initStep{
		{"encapsulation", func(ctx context.Context) error {
			if cfg.Encapsulation == nil {
				return nil
			}
			if err := cfg.Encapsulation.Init(ctx); err != nil {
				return err
			}
			encapUp = true
			return nil
		}},
		{"message router", s.initMessageRouter},
		{"identity", s.objectStep(cfg.Identity)},
		{"tcp/ip interface", s.objectStep(cfg.TCPIP)},
		{"ethernet link", s.objectStep(cfg.EthernetLink)},
		{"connection manager", func(ctx context.Context) error {
			if cfg.ConnectionManager == nil {
				return nil
			}
			return cfg.ConnectionManager.Init(ctx, s.registry, s.connectionIDSeed())
		}},
		{"assembly", func(ctx context.Context) error {
			if cfg.Assembly == nil {
				return nil
			}
			if err := cfg.Assembly.Init(ctx, s.registry); err != nil {
				return err
			}
			s.registry.SetAssemblyHook(model.AssemblyHookFunc(cfg.Assembly.BeforeAssemblyDataSend))
			return nil
		}},
		{"application", s.objectStep(cfg.Application)},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return s.abortInit(ctx, step.name, err, encapUp)
		}
		start := time.Now()
		if err := step.run(ctx); err != nil {
			return s.abortInit(ctx, step.name, err, encapUp)
		}
		s.logger.Debug("stack init step done", "step", step.name, "duration", time.Since(start))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.registry.Classes() {
		s.logClass(c, "", "created")
	}
	s.setState(StateRunning, "")
	s.logger.Info("stack running", "classes", len(s.registry.Classes()))
	return nil
}

// objectStep adapts an optional object initializer to an init step.
func (s *Stack) objectStep(obj interface {
	Init(ctx context.Context, registry *model.Registry) error
}) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if obj == nil {
			return nil
		}
		return obj.Init(ctx, s.registry)
	}
}

func (s *Stack) initMessageRouter(context.Context) error {
	registry := model.NewRegistry(s.logger)
	if _, err := registry.CreateClass(model.ClassSpec{
		ID:        wire.ClassMessageRouter,
		Name:      "MessageRouter",
		Revision:  1,
		Instances: 1,
	}); err != nil {
		return err
	}
	server := interaction.NewServer(registry, interaction.ServerConfig{
		Logger:          s.logger,
		ProtocolLogger:  s.protocolLogger,
		ConnectionID:    s.sessionID,
		ReplyBufferSize: s.config.ReplyBufferSize,
	})

	s.mu.Lock()
	s.registry = registry
	s.server = server
	s.mu.Unlock()
	return nil
}

func (s *Stack) connectionIDSeed() uint32 {
	if s.config.ConnectionIDSeed != 0 {
		return s.config.ConnectionIDSeed
	}
	id := uuid.New()
	return binary.LittleEndian.Uint32(id[:4])
}

func (s *Stack) abortInit(ctx context.Context, step string, err error, encapUp bool) error {
	err = fmt.Errorf("init %s: %w", step, err)
	if encapUp {
		// a canceled Init still releases the session layer
		if serr := s.config.Encapsulation.Shutdown(context.WithoutCancel(ctx)); serr != nil {
			s.logger.Warn("encapsulation shutdown after failed init", "error", serr)
			err = errors.Join(err, fmt.Errorf("shutdown encapsulation: %w", serr))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registry != nil {
		s.registry.DeleteAllClasses()
	}
	s.registry = nil
	s.server = nil
	s.setState(StateIdle, step+" failed")
	s.logger.Error("stack init failed", "step", step, "error", err)
	return err
}

// Shutdown closes all connections, shuts the encapsulation layer, the
// assembly and TCP/IP interface objects down and deletes every class.
// Collaborator errors are logged and joined; the registry is deleted
// regardless.
func (s *Stack) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.setState(StateShuttingDown, "")
	s.mu.Unlock()

	cfg := s.config
	var errs []error
	shut := func(name string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			s.logger.Warn("stack shutdown step failed", "step", name, "error", err)
			errs = append(errs, fmt.Errorf("shutdown %s: %w", name, err))
		}
	}

	if cfg.ConnectionManager != nil {
		cfg.ConnectionManager.CloseAllConnections(ctx)
	}
	if cfg.Encapsulation != nil {
		shut("encapsulation", cfg.Encapsulation.Shutdown)
	}
	if cfg.Assembly != nil {
		shut("assembly", cfg.Assembly.Shutdown)
	}
	if cfg.TCPIP != nil {
		shut("tcp/ip interface", cfg.TCPIP.Shutdown)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.registry.Classes() {
		s.logClass(c, "created", "deleted")
	}
	s.registry.DeleteAllClasses()
	s.setState(StateStopped, "")
	s.logger.Info("stack stopped")
	return errors.Join(errs...)
}

// setState must be called with s.mu held.
func (s *Stack) setState(next State, reason string) {
	prev := s.state
	s.state = next
	s.logger.Debug("stack state", "from", prev, "to", next)
	s.protocolLogger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.sessionID,
		Layer:        log.LayerObject,
		Category:     log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityStack,
			OldState: prev.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	})
}

func (s *Stack) logClass(c *model.Class, from, to string) {
	s.protocolLogger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.sessionID,
		Layer:        log.LayerObject,
		Category:     log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityClass,
			OldState: from,
			NewState: to,
			Reason:   fmt.Sprintf("0x%02X %s", c.ID(), c.Name()),
		},
	})
}
