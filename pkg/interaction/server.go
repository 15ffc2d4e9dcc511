package interaction

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cip-stack/cip-go/pkg/log"
	"github.com/cip-stack/cip-go/pkg/model"
	"github.com/cip-stack/cip-go/pkg/wire"
)

// DefaultReplyBufferSize bounds the payload of a single reply.
const DefaultReplyBufferSize = 504

// ServerConfig configures a Server.
type ServerConfig struct {
	// Logger receives operational logs. Nil discards them.
	Logger *slog.Logger

	// ProtocolLogger receives request and reply events. Nil disables capture.
	ProtocolLogger log.Logger

	// ConnectionID tags protocol events. Empty generates a UUID.
	ConnectionID string

	// RemoteAddr is recorded on protocol events when set.
	RemoteAddr string

	// ReplyBufferSize bounds the reply payload. Zero uses DefaultReplyBufferSize.
	ReplyBufferSize int
}

// Server is the message router. It decodes explicit requests, dispatches
// them to the registry and encodes the replies. Dispatches are serialized.
type Server struct {
	mu sync.Mutex

	registry       *model.Registry
	logger         *slog.Logger
	protocolLogger log.Logger
	connID         string
	remoteAddr     string
	replySize      int
}

// NewServer creates a message router for the registry.
func NewServer(registry *model.Registry, cfg ServerConfig) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.ProtocolLogger == nil {
		cfg.ProtocolLogger = log.NoopLogger{}
	}
	if cfg.ConnectionID == "" {
		cfg.ConnectionID = uuid.NewString()
	}
	if cfg.ReplyBufferSize <= 0 {
		cfg.ReplyBufferSize = DefaultReplyBufferSize
	}
	return &Server{
		registry:       registry,
		logger:         cfg.Logger,
		protocolLogger: cfg.ProtocolLogger,
		connID:         cfg.ConnectionID,
		remoteAddr:     cfg.RemoteAddr,
		replySize:      cfg.ReplyBufferSize,
	}
}

// ConnectionID returns the ID used to tag protocol events.
func (s *Server) ConnectionID() string {
	return s.connID
}

// Registry returns the registry requests are dispatched to.
func (s *Server) Registry() *model.Registry {
	return s.registry
}

// HandleMessage processes one encoded request and returns the encoded
// reply. A request that cannot be decoded is answered with
// StatusPathSegmentError. An error is only returned when ctx is done.
func (s *Server) HandleMessage(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.logFrame(log.DirectionIn, data)

	wreq, err := wire.DecodeRequest(data)
	if err != nil {
		s.logger.DebugContext(ctx, "request decode failed",
			"conn_id", s.connID,
			"service", wreq.Service,
			"error", err)
		s.logError(wire.StatusPathSegmentError, err, "decode request")
		out := wire.EncodeResponse(wire.Response{
			Service:       wreq.Service.Reply(),
			GeneralStatus: wire.StatusPathSegmentError,
		})
		s.logFrame(log.DirectionOut, out)
		return out, nil
	}

	resp := s.Handle(ctx, &model.Request{
		Service: wreq.Service,
		Path:    wreq.Path,
		Data:    wreq.Data,
	})
	out := wire.EncodeResponse(resp.Wire())
	s.logFrame(log.DirectionOut, out)
	return out, nil
}

// RoundTrip implements Transport so a Client can talk to the server in
// process.
func (s *Server) RoundTrip(ctx context.Context, data []byte) ([]byte, error) {
	return s.HandleMessage(ctx, data)
}

// Handle dispatches a decoded request and returns the reply.
func (s *Server) Handle(ctx context.Context, req *model.Request) *model.Response {
	start := time.Now()
	s.logMessage(log.DirectionIn, req, nil, 0)

	resp := model.NewResponse(s.replySize)

	s.mu.Lock()
	class := s.registry.Class(req.Path.ClassID)
	var err error
	if class == nil {
		resp.Reject(req, wire.StatusPathDestinationUnknown)
	} else {
		err = model.Notify(class, req, resp)
	}
	s.mu.Unlock()

	if err != nil {
		status, ok := wire.StatusOf(err)
		if !ok {
			status = wire.StatusServiceNotSupported
		}
		resp.Reject(req, status)
		var se *wire.StatusError
		if errors.As(err, &se) {
			resp.AdditionalStatus = se.AdditionalStatus()
		}
		s.logger.WarnContext(ctx, "service handler failed",
			"conn_id", s.connID,
			"service", req.Service,
			"path", req.Path,
			"status", status,
			"error", err)
		s.logError(status, err, req.Service.String())
	}

	s.logger.DebugContext(ctx, "request served",
		"conn_id", s.connID,
		"service", req.Service,
		"path", req.Path,
		"status", resp.GeneralStatus,
		"reply_size", resp.Data.Len())
	s.logMessage(log.DirectionOut, req, resp, time.Since(start))
	return resp
}

func (s *Server) event(dir log.Direction, layer log.Layer, cat log.Category) log.Event {
	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.connID,
		Direction:    dir,
		Layer:        layer,
		Category:     cat,
		RemoteAddr:   s.remoteAddr,
	}
}

func (s *Server) logFrame(dir log.Direction, data []byte) {
	e := s.event(dir, log.LayerTransport, log.CategoryMessage)
	e.Frame = log.NewFrameEvent(data)
	s.protocolLogger.Log(e)
}

// logMessage records a request (resp == nil) or its reply.
func (s *Server) logMessage(dir log.Direction, req *model.Request, resp *model.Response, elapsed time.Duration) {
	msg := &log.MessageEvent{
		Type:            log.MessageTypeRequest,
		Service:         req.Service,
		ClassID:         req.Path.ClassID,
		InstanceNumber:  req.Path.InstanceNumber,
		AttributeNumber: req.Path.AttributeNumber,
		Payload:         append([]byte(nil), req.Data...),
	}
	if resp != nil {
		status := resp.GeneralStatus
		msg.Type = log.MessageTypeResponse
		msg.Service = resp.Service
		msg.GeneralStatus = &status
		msg.AdditionalStatus = resp.AdditionalStatus
		msg.Payload = append([]byte(nil), resp.Payload()...)
		msg.ProcessingTime = &elapsed
	}
	e := s.event(dir, log.LayerRouter, log.CategoryMessage)
	e.Message = msg
	s.protocolLogger.Log(e)
}

func (s *Server) logError(status wire.Status, err error, op string) {
	code := int(status)
	e := s.event(log.DirectionIn, log.LayerRouter, log.CategoryError)
	e.Error = &log.ErrorEventData{
		Layer:   log.LayerRouter,
		Message: err.Error(),
		Code:    &code,
		Context: op,
	}
	s.protocolLogger.Log(e)
}
