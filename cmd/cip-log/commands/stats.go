package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/cip-stack/cip-go/pkg/inspect"
	"github.com/cip-stack/cip-go/pkg/log"
	"github.com/cip-stack/cip-go/pkg/wire"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	RequestsByService map[wire.Service]int
	RequestsByClass   map[uint16]int
	RepliesByStatus   map[wire.Status]int
	Connections       map[string]*ConnectionStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}

	// Slowest is the longest processing time seen in a reply.
	Slowest time.Duration
}

// ConnectionStats holds statistics for a single connection.
type ConnectionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Requests  int
}

func newStats() *Stats {
	return &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		RequestsByService: make(map[wire.Service]int),
		RequestsByClass:   make(map[uint16]int),
		RepliesByStatus:   make(map[wire.Status]int),
		Connections:       make(map[string]*ConnectionStats),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	conn, ok := s.Connections[event.ConnectionID]
	if !ok {
		conn = &ConnectionStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		s.Connections[event.ConnectionID] = conn
	}
	conn.Events++
	if event.Timestamp.After(conn.LastSeen) {
		conn.LastSeen = event.Timestamp
	}

	if msg := event.Message; msg != nil {
		switch msg.Type {
		case log.MessageTypeRequest:
			s.RequestsByService[msg.Service.Request()]++
			s.RequestsByClass[msg.ClassID]++
			conn.Requests++
		case log.MessageTypeResponse:
			if msg.GeneralStatus != nil {
				s.RepliesByStatus[*msg.GeneralStatus]++
			}
			if msg.ProcessingTime != nil && *msg.ProcessingTime > s.Slowest {
				s.Slowest = *msg.ProcessingTime
			}
		}
	}

	if event.Error != nil {
		s.Errors++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	err = forEachEvent(reader, func(event log.Event) error {
		stats.add(event)
		return nil
	})
	if err != nil {
		return err
	}

	printStats(w, stats)
	return nil
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[K ~uint8 | ~uint16, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// printCounts writes a titled block with one "label: count" line per key
// and a blank line after it. Nothing is written for an empty map.
func printCounts[K ~uint8 | ~uint16](w io.Writer, title string, width int, counts map[K]int, label func(K) string) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range sortedKeys(counts) {
		fmt.Fprintf(w, "  %-*s %d\n", width, label(k)+":", counts[k])
	}
	fmt.Fprintln(w)
}

func stringer[K fmt.Stringer](k K) string { return k.String() }

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprint(w, "=== CIP Protocol Log Statistics ===\n\n")

	if stats.TotalEvents > 0 {
		start, end := stats.TimeRange.Start, stats.TimeRange.End
		fmt.Fprintf(w, "Time Range: %s to %s\n", start.Format(time.RFC3339), end.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n\n", end.Sub(start).Round(time.Second))
	}
	fmt.Fprintf(w, "Total Events: %d\n\n", stats.TotalEvents)

	printCounts(w, "Events by Layer", 12, stats.EventsByLayer, stringer[log.Layer])
	printCounts(w, "Events by Category", 12, stats.EventsByCategory, stringer[log.Category])
	printCounts(w, "Events by Direction", 12, stats.EventsByDirection, stringer[log.Direction])
	printCounts(w, "Requests by Service", 24, stats.RequestsByService, stringer[wire.Service])
	printCounts(w, "Requests by Class", 24, stats.RequestsByClass, func(id uint16) string {
		return fmt.Sprintf("0x%02X %s", id, inspect.GetClassName(nil, id))
	})
	printCounts(w, "Replies by Status", 24, stats.RepliesByStatus, stringer[wire.Status])
	if stats.Slowest > 0 {
		fmt.Fprintf(w, "Slowest reply: %s\n\n", formatDuration(stats.Slowest))
	}

	fmt.Fprintf(w, "Connections: %d\n", len(stats.Connections))
	ids := make([]string, 0, len(stats.Connections))
	for id := range stats.Connections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return stats.Connections[ids[i]].FirstSeen.Before(stats.Connections[ids[j]].FirstSeen)
	})
	for _, id := range ids {
		cs := stats.Connections[id]
		fmt.Fprintf(w, "  [%s] %d events, %d requests, duration %s\n",
			shortenConnID(id), cs.Events, cs.Requests, cs.LastSeen.Sub(cs.FirstSeen).Round(time.Millisecond))
	}

	if stats.Errors > 0 {
		fmt.Fprintf(w, "\nErrors: %d\n", stats.Errors)
	}
}
