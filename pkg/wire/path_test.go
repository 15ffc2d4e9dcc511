package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodePath(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want []byte
	}{
		{
			name: "8-bit segments",
			path: NewPath(0x01, 1, 7),
			want: []byte{0x03, 0x00, 0x20, 0x01, 0x24, 0x01, 0x30, 0x07},
		},
		{
			name: "16-bit instance",
			path: NewPath(5, 300, 7),
			want: []byte{0x04, 0x00, 0x20, 0x05, 0x25, 0x00, 0x2C, 0x01, 0x30, 0x07},
		},
		{
			name: "16-bit class and attribute",
			path: NewPath(0x300, 1, 0x100),
			want: []byte{0x05, 0x00, 0x21, 0x00, 0x00, 0x03, 0x24, 0x01, 0x31, 0x00, 0x00, 0x01},
		},
		{
			name: "budget stops after instance",
			path: Path{Words: 2, ClassID: 4, InstanceNumber: 100, AttributeNumber: 3},
			want: []byte{0x02, 0x00, 0x20, 0x04, 0x24, 0x64},
		},
		{
			name: "budget stops after class",
			path: Path{Words: 1, ClassID: 4, InstanceNumber: 100, AttributeNumber: 3},
			want: []byte{0x01, 0x00, 0x20, 0x04},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(64)
			n, err := EncodePath(w, tt.path)
			if err != nil {
				t.Fatalf("EncodePath failed: %v", err)
			}
			if n != 2+2*int(tt.path.Words) {
				t.Errorf("EncodePath returned %d, want %d", n, 2+2*int(tt.path.Words))
			}
			if !bytes.Equal(w.Bytes(), tt.want) {
				t.Errorf("got % X, want % X", w.Bytes(), tt.want)
			}
		})
	}
}

func TestPathRoundTrip(t *testing.T) {
	in := NewPath(5, 300, 7)

	w := NewWriter(64)
	written, err := EncodePath(w, in)
	if err != nil {
		t.Fatalf("EncodePath failed: %v", err)
	}

	out, consumed, err := DecodePath(w.Bytes())
	if err != nil {
		t.Fatalf("DecodePath failed: %v", err)
	}
	if consumed != written {
		t.Errorf("consumed %d bytes, wrote %d", consumed, written)
	}
	if out.ClassID != 5 || out.InstanceNumber != 300 || out.AttributeNumber != 7 {
		t.Errorf("got %+v, want class 5 instance 300 attribute 7", out)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestRequestPathRoundTrip(t *testing.T) {
	paths := []Path{
		NewPath(0x01, 1, 1),
		NewPath(5, 300, 7),
		NewPath(0x3FF, 0xFFFF, 0x200),
		NewInstancePath(0xF5, 1),
	}
	for _, in := range paths {
		t.Run(in.String(), func(t *testing.T) {
			data := AppendRequestPath(nil, in)
			out, n, err := DecodeRequestPath(data)
			if err != nil {
				t.Fatalf("DecodeRequestPath failed: %v", err)
			}
			if n != len(data) {
				t.Errorf("consumed %d of %d bytes", n, len(data))
			}
			if out != in {
				t.Errorf("got %+v, want %+v", out, in)
			}
		})
	}
}

func TestDecodeRequestPathErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrShortBuffer},
		{"words beyond input", []byte{0x03, 0x20, 0x01, 0x24, 0x01}, ErrShortBuffer},
		{"huge word count", []byte{0xFF, 0x20, 0x01}, ErrShortBuffer},
		{"reserved first segment", []byte{0x02, 0xE0, 0x00, 0x24, 0x01}, ErrReservedSegment},
		{"reserved later segment", []byte{0x02, 0x20, 0x01, 0xFF, 0x01}, ErrReservedSegment},
		{"port segment", []byte{0x01, 0x01, 0x00}, ErrInvalidSegment},
		{"32-bit instance", []byte{0x03, 0x26, 0x00, 0x01, 0x00, 0x00, 0x00}, ErrInvalidSegment},
		{"16-bit segment past word count", []byte{0x02, 0x20, 0x01, 0x25, 0x00, 0x2C, 0x01}, ErrPathSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, n, err := DecodeRequestPath(tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if n != 0 {
				t.Errorf("consumed %d bytes on error", n)
			}
			if p != (Path{}) {
				t.Errorf("returned non-zero path %+v on error", p)
			}
		})
	}
}

func TestDecodePathReservedStopsImmediately(t *testing.T) {
	// The byte after the reserved tag would be a valid segment; decoding
	// must not get there.
	data := []byte{0x02, 0x00, 0xE4, 0x20, 0x01, 0x00}
	_, n, err := DecodePath(data)
	if !errors.Is(err, ErrReservedSegment) {
		t.Fatalf("expected ErrReservedSegment, got %v", err)
	}
	if n != 0 {
		t.Errorf("consumed %d bytes", n)
	}
}

func TestDecodeRequestPathIgnoresTrailingData(t *testing.T) {
	data := []byte{0x02, 0x20, 0x01, 0x24, 0x01, 0xAA, 0xBB}
	p, n, err := DecodeRequestPath(data)
	if err != nil {
		t.Fatalf("DecodeRequestPath failed: %v", err)
	}
	if n != 5 {
		t.Errorf("consumed %d bytes, want 5", n)
	}
	if p.ClassID != 1 || p.InstanceNumber != 1 || p.AttributeNumber != 0 {
		t.Errorf("unexpected path %+v", p)
	}
}
