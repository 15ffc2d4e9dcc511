package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrBufferFull is returned when a write exceeds the writer's capacity.
	ErrBufferFull = errors.New("wire: buffer full")

	// ErrShortBuffer is returned when the input ends before a value does.
	ErrShortBuffer = errors.New("wire: short buffer")
)

// Writer appends little-endian values to a buffer of fixed capacity.
// A write that does not fit fails with ErrBufferFull and writes nothing.
type Writer struct {
	buf   []byte
	limit int
}

// NewWriter creates a writer that accepts at most capacity bytes.
func NewWriter(capacity int) *Writer {
	if capacity < 0 {
		capacity = 0
	}
	return &Writer{buf: make([]byte, 0, capacity), limit: capacity}
}

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.buf) }

// Cap returns the writer's capacity.
func (w *Writer) Cap() int { return w.limit }

// Available returns the number of bytes that can still be written.
func (w *Writer) Available() int { return w.limit - len(w.buf) }

// Bytes returns the written bytes. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Truncate discards all but the first n written bytes.
func (w *Writer) Truncate(n int) {
	if n < 0 || n > len(w.buf) {
		panic(fmt.Sprintf("wire: truncate %d out of range [0,%d]", n, len(w.buf)))
	}
	w.buf = w.buf[:n]
}

// Reset discards all written bytes.
func (w *Writer) Reset() { w.buf = w.buf[:0] }

func (w *Writer) reserve(n int) error {
	if n > w.Available() {
		return fmt.Errorf("%w: need %d bytes, %d available", ErrBufferFull, n, w.Available())
	}
	return nil
}

// Write appends p in full or not at all.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.reserve(len(p)); err != nil {
		return 0, err
	}
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// WriteUint8 appends one byte.
func (w *Writer) WriteUint8(v uint8) error {
	if err := w.reserve(1); err != nil {
		return err
	}
	w.buf = append(w.buf, v)
	return nil
}

// WriteUint16 appends v little-endian.
func (w *Writer) WriteUint16(v uint16) error {
	if err := w.reserve(2); err != nil {
		return err
	}
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
	return nil
}

// WriteUint32 appends v little-endian.
func (w *Writer) WriteUint32(v uint32) error {
	if err := w.reserve(4); err != nil {
		return err
	}
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	return nil
}

// WriteUint64 appends v little-endian.
func (w *Writer) WriteUint64(v uint64) error {
	if err := w.reserve(8); err != nil {
		return err
	}
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
	return nil
}

// reader walks an input buffer. Every read is checked against the
// remaining length.
type reader struct {
	data []byte
	off  int
}

func (r *reader) need(n int) error {
	if n < 0 || len(r.data)-r.off < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, %d available",
			ErrShortBuffer, n, r.off, len(r.data)-r.off)
	}
	return nil
}

func (r *reader) u8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v, nil
}

// bytes returns the next n bytes without copying.
func (r *reader) bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := r.data[r.off : r.off+n]
	r.off += n
	return v, nil
}
