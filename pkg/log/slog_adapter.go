package log

import (
	"context"
	"log/slog"

	"github.com/cip-stack/cip-go/pkg/wire"
)

// SlogAdapter traces protocol events through an slog.Logger. Frames,
// messages and state changes are written at debug level, error events at
// warn level. Each payload kind becomes one attribute group.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates an adapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	level := slog.LevelDebug
	if event.Error != nil {
		level = slog.LevelWarn
	}
	ctx := context.Background()
	if !a.logger.Enabled(ctx, level) {
		return
	}

	attrs := make([]slog.Attr, 0, 6)
	attrs = append(attrs,
		slog.String("conn_id", event.ConnectionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	)
	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote", event.RemoteAddr))
	}
	if g, ok := payloadGroup(event); ok {
		attrs = append(attrs, g)
	}

	a.logger.LogAttrs(ctx, level, "protocol", attrs...)
}

func payloadGroup(event Event) (slog.Attr, bool) {
	switch {
	case event.Frame != nil:
		return slog.Group("frame",
			slog.Int("size", event.Frame.Size),
			slog.Bool("truncated", event.Frame.Truncated),
		), true
	case event.Message != nil:
		return messageGroup(event.Message), true
	case event.StateChange != nil:
		sc := event.StateChange
		args := []any{slog.String("entity", sc.Entity.String()), slog.String("to", sc.NewState)}
		if sc.OldState != "" {
			args = append(args, slog.String("from", sc.OldState))
		}
		if sc.Reason != "" {
			args = append(args, slog.String("reason", sc.Reason))
		}
		return slog.Group("state", args...), true
	case event.Error != nil:
		e := event.Error
		args := []any{slog.String("layer", e.Layer.String()), slog.String("message", e.Message)}
		if e.Code != nil {
			args = append(args, slog.String("status", wire.Status(*e.Code).String()))
		}
		if e.Context != "" {
			args = append(args, slog.String("context", e.Context))
		}
		return slog.Group("error", args...), true
	}
	return slog.Attr{}, false
}

func messageGroup(m *MessageEvent) slog.Attr {
	args := []any{
		slog.String("type", m.Type.String()),
		slog.String("service", m.Service.String()),
		slog.String("path", wire.NewPath(m.ClassID, m.InstanceNumber, m.AttributeNumber).String()),
	}
	if m.GeneralStatus != nil {
		args = append(args, slog.String("status", m.GeneralStatus.String()))
	}
	if len(m.AdditionalStatus) > 0 {
		args = append(args, slog.Any("additional", m.AdditionalStatus))
	}
	if len(m.Payload) > 0 {
		args = append(args, slog.Int("payload_size", len(m.Payload)))
	}
	if m.ProcessingTime != nil {
		args = append(args, slog.Duration("elapsed", *m.ProcessingTime))
	}
	return slog.Group("message", args...)
}

var _ Logger = (*SlogAdapter)(nil)
