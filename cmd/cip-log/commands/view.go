// Package commands implements the cip-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/cip-stack/cip-go/pkg/inspect"
	"github.com/cip-stack/cip-go/pkg/log"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// detail is one indented line below an event header. An empty key prints
// the value alone.
type detail struct {
	key, value string
}

func (d detail) String() string {
	if d.key == "" {
		return d.value
	}
	return d.key + ": " + d.value
}

// formatEvent writes the header line of event followed by its details and
// a blank line.
func formatEvent(w io.Writer, event log.Event) {
	fmt.Fprintf(w, "%s [conn:%s] %-3s %s %s\n",
		event.Timestamp.UTC().Format(timestampLayout),
		shortenConnID(event.ConnectionID),
		event.Direction, event.Layer, eventType(event))
	for _, d := range eventDetails(event) {
		fmt.Fprintf(w, "  %s\n", d)
	}
	fmt.Fprintln(w)
}

// eventType labels the payload carried by event.
func eventType(event log.Event) string {
	switch {
	case event.Frame != nil:
		return "Frame"
	case event.Message != nil:
		return event.Message.Type.String()
	case event.StateChange != nil:
		return "State"
	case event.Error != nil:
		return "Error"
	}
	return "Unknown"
}

// shortenConnID keeps the first block of a uuid.
func shortenConnID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// messagePath formats the addressed object of msg, leaving out a zero
// attribute.
func messagePath(msg *log.MessageEvent) string {
	if msg.AttributeNumber == 0 {
		return fmt.Sprintf("0x%02X/%d", msg.ClassID, msg.InstanceNumber)
	}
	return fmt.Sprintf("0x%02X/%d/%d", msg.ClassID, msg.InstanceNumber, msg.AttributeNumber)
}

func eventDetails(event log.Event) []detail {
	switch {
	case event.Frame != nil:
		return frameDetails(event.Frame)
	case event.Message != nil:
		return messageDetails(event.Message)
	case event.StateChange != nil:
		return stateDetails(event.StateChange)
	case event.Error != nil:
		return errorDetails(event.Error)
	}
	return nil
}

func frameDetails(f *log.FrameEvent) []detail {
	ds := []detail{{"Size", fmt.Sprintf("%d bytes", f.Size)}}
	if len(f.Data) > 0 {
		data := hex.EncodeToString(f.Data)
		if f.Truncated {
			data += " (truncated)"
		}
		ds = append(ds, detail{"Data", data})
	}
	return ds
}

func messageDetails(m *log.MessageEvent) []detail {
	ds := []detail{
		{"Service", fmt.Sprintf("%s (0x%02X)", m.Service, uint8(m.Service))},
		{"Path", fmt.Sprintf("%s (%s)", messagePath(m), inspect.GetClassName(nil, m.ClassID))},
	}
	if m.Type == log.MessageTypeResponse {
		if m.GeneralStatus != nil {
			ds = append(ds, detail{"Status", fmt.Sprintf("%s (0x%02X)", m.GeneralStatus, uint8(*m.GeneralStatus))})
		}
		if len(m.AdditionalStatus) > 0 {
			ds = append(ds, detail{"Additional", fmt.Sprintf("%04x", m.AdditionalStatus)})
		}
		if m.ProcessingTime != nil {
			ds = append(ds, detail{"Duration", formatDuration(*m.ProcessingTime)})
		}
	}
	if len(m.Payload) > 0 {
		ds = append(ds, detail{"Payload", hex.EncodeToString(m.Payload)})
	}
	return ds
}

func stateDetails(sc *log.StateChangeEvent) []detail {
	ds := []detail{
		{"Entity", sc.Entity.String()},
		{"", sc.OldState + " -> " + sc.NewState},
	}
	if sc.OldState == "" {
		ds[1].value = "-> " + sc.NewState
	}
	if sc.Reason != "" {
		ds = append(ds, detail{"Reason", sc.Reason})
	}
	return ds
}

func errorDetails(e *log.ErrorEventData) []detail {
	ds := []detail{
		{"Layer", e.Layer.String()},
		{"Message", e.Message},
	}
	if e.Code != nil {
		ds = append(ds, detail{"Code", fmt.Sprintf("0x%02X", *e.Code)})
	}
	if e.Context != "" {
		ds = append(ds, detail{"Context", e.Context})
	}
	return ds
}

// formatDuration picks microseconds, milliseconds or seconds with three
// decimals.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%.3fus", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// RunView writes the events of path matching opts to output, preceded by
// a line describing the capture file.
func RunView(path string, opts FilterOptions, output io.Writer) error {
	filter, err := BuildFilter(opts)
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	if h := reader.Header(); h.Version != 0 {
		fmt.Fprintf(output, "# %s: format %d, created %s\n\n",
			path, h.Version, h.Created.UTC().Format(time.RFC3339))
	}

	return forEachEvent(reader, func(event log.Event) error {
		formatEvent(output, event)
		return nil
	})
}

// forEachEvent calls fn for every remaining event of reader.
func forEachEvent(reader *log.Reader, fn func(log.Event) error) error {
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}
