// Package log provides structured protocol logging for the CIP stack.
//
// This package defines the Logger interface and Event types for capturing
// message router traffic and object model lifecycle events. It is separate
// from operational logging (slog): protocol capture provides a complete
// machine-readable event trace for debugging and analysis.
//
// The stack takes a single Logger. A capture file and a console trace are
// combined with NewMultiLogger:
//
//	capture, err := log.NewFileLogger("device.clog")
//	...
//	cfg.ProtocolLogger = log.NewMultiLogger(capture, log.NewSlogAdapter(slog.Default()))
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Transport: raw message router bytes (FrameEvent)
//   - Router: decoded requests and replies (MessageEvent)
//   - Object: stack, class and connection state (StateChangeEvent)
//
// Errors at any layer use ErrorEventData.
//
// # File Format
//
// A capture file (.clog) is a sequence of CBOR maps with integer keys. The
// first record is a FileHeader carrying the "CIPLOG" magic and FormatVersion;
// every following record is one Event. Records are encoded in core
// deterministic form, so equal events produce equal bytes. Readers reject
// files whose header is missing or from a newer version.
package log
