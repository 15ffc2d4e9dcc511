package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cip-stack/cip-go/pkg/log"
)

// exporter writes events in one output format.
type exporter interface {
	write(event log.Event) error
	flush() error
}

var exportFormats = map[string]func(io.Writer) exporter{
	"jsonl": newJSONLExporter,
	"csv":   newCSVExporter,
}

// RunExport exports the events of path matching opts in the given format.
// An empty output writes to stdout.
func RunExport(path, format, output string, opts FilterOptions) error {
	newExporter, ok := exportFormats[format]
	if !ok {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
	filter, err := BuildFilter(opts)
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	exp := newExporter(w)
	if err := forEachEvent(reader, exp.write); err != nil {
		return err
	}
	return exp.flush()
}

// jsonlExporter writes one JSON object per line.
type jsonlExporter struct {
	enc *json.Encoder
}

func newJSONLExporter(w io.Writer) exporter {
	return &jsonlExporter{enc: json.NewEncoder(w)}
}

func (e *jsonlExporter) write(event log.Event) error {
	if err := e.enc.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return nil
}

func (e *jsonlExporter) flush() error { return nil }

var csvHeader = []string{"timestamp", "connection_id", "direction", "layer", "category", "type", "service", "path", "status"}

// csvExporter writes one row per event. Message columns stay empty for
// other events.
type csvExporter struct {
	w          *csv.Writer
	headerDone bool
}

func newCSVExporter(w io.Writer) exporter {
	return &csvExporter{w: csv.NewWriter(w)}
}

func (e *csvExporter) write(event log.Event) error {
	if !e.headerDone {
		if err := e.w.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		e.headerDone = true
	}
	if err := e.w.Write(csvRow(event)); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

func (e *csvExporter) flush() error {
	if !e.headerDone {
		if err := e.w.Write(csvHeader); err != nil {
			return err
		}
	}
	e.w.Flush()
	return e.w.Error()
}

func csvRow(event log.Event) []string {
	var service, path, status string
	if m := event.Message; m != nil {
		service = m.Service.String()
		path = messagePath(m)
		if m.GeneralStatus != nil {
			status = m.GeneralStatus.String()
		}
	}
	return []string{
		event.Timestamp.UTC().Format(timestampLayout),
		event.ConnectionID,
		event.Direction.String(),
		event.Layer.String(),
		event.Category.String(),
		eventType(event),
		service,
		path,
		status,
	}
}
