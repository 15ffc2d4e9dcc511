package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/cip-stack/cip-go/pkg/interaction"
)

// servePipe reads one hex encoded request per line from r and writes the
// hex encoded reply to w. Blank lines and lines starting with '#' are
// skipped. It returns at EOF or when ctx is done.
func servePipe(ctx context.Context, t interaction.Transport, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	lines := make(chan string)
	done := make(chan error, 1)

	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		done <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-done:
					return err
				default:
					return nil
				}
			}
			if err := servePipeLine(ctx, t, line, w); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

func servePipeLine(ctx context.Context, t interaction.Transport, line string, w io.Writer) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	req, err := hex.DecodeString(strings.Join(strings.Fields(line), ""))
	if err != nil {
		_, werr := fmt.Fprintf(w, "error: %v\n", err)
		return werr
	}

	reply, err := t.RoundTrip(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, formatHex(reply))
	return err
}

func formatHex(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}
