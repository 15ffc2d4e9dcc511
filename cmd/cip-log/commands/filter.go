package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cip-stack/cip-go/pkg/inspect"
	"github.com/cip-stack/cip-go/pkg/log"
	"github.com/cip-stack/cip-go/pkg/wire"
)

// FilterOptions holds the filter flags shared by view, export and filter.
// Empty fields match everything.
type FilterOptions struct {
	ConnID    string
	TimeStart string
	TimeEnd   string
	Layer     string
	Direction string
	Category  string
	Class     string
	Service   string
}

// BuildFilter converts the flag values into a log.Filter. The first
// invalid value is reported.
func BuildFilter(opts FilterOptions) (log.Filter, error) {
	f := log.Filter{ConnectionID: opts.ConnID}
	var err error

	set := func(flag, value string, parse func(string) error) {
		if err != nil || value == "" {
			return
		}
		if perr := parse(value); perr != nil {
			err = fmt.Errorf("-%s: %w", flag, perr)
		}
	}

	set("time-start", opts.TimeStart, func(v string) error {
		t, err := parseTime(v)
		f.TimeStart = t
		return err
	})
	set("time-end", opts.TimeEnd, func(v string) error {
		t, err := parseTime(v)
		f.TimeEnd = t
		return err
	})
	set("layer", opts.Layer, func(v string) error {
		l, err := log.ParseLayer(v)
		f.Layer = &l
		return err
	})
	set("direction", opts.Direction, func(v string) error {
		d, err := log.ParseDirection(v)
		f.Direction = &d
		return err
	})
	set("category", opts.Category, func(v string) error {
		c, err := log.ParseCategory(v)
		f.Category = &c
		return err
	})
	set("class", opts.Class, func(v string) error {
		id, err := parseClass(v)
		f.ClassID = &id
		return err
	})
	set("service", opts.Service, func(v string) error {
		svc, err := wire.ParseService(v)
		f.Service = &svc
		return err
	})

	if err != nil {
		return log.Filter{}, err
	}
	return f, nil
}

func parseTime(s string) (*time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("want RFC3339: %w", err)
	}
	return &t, nil
}

// parseClass accepts a class code or a standard class name.
func parseClass(s string) (uint16, error) {
	if id, ok := inspect.ResolveClassName(nil, s); ok {
		return id, nil
	}
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid class: %s", s)
	}
	return uint16(n), nil
}

// RunFilter writes the events of path matching opts to output and
// reports the count on w.
func RunFilter(path, output string, opts FilterOptions, w io.Writer) error {
	filter, err := BuildFilter(opts)
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return fmt.Errorf("failed to create output logger: %w", err)
	}

	count := 0
	err = forEachEvent(reader, func(event log.Event) error {
		logger.Log(event)
		count++
		return nil
	})
	if err != nil {
		logger.Close()
		return err
	}
	if err := logger.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Fprintf(w, "Filtered %d events to %s\n", count, output)
	return nil
}
