package wire

import (
	"bytes"
	"errors"
	"net/netip"
	"testing"
)

func encodeBytes(t *testing.T, typ DataType, v any) []byte {
	t.Helper()
	w := NewWriter(512)
	n, err := Encode(w, typ, v)
	if err != nil {
		t.Fatalf("Encode(%s) failed: %v", typ, err)
	}
	if n != w.Len() {
		t.Fatalf("Encode(%s) returned %d, wrote %d", typ, n, w.Len())
	}
	return w.Bytes()
}

func TestEncodeScalars(t *testing.T) {
	b := true
	i8 := int8(-2)
	u8 := uint8(0xAB)
	i16 := int16(-2)
	u16 := uint16(0x1234)
	i32 := int32(-2)
	u32 := uint32(0x12345678)
	f32 := float32(1.0)
	i64 := int64(-2)
	u64 := uint64(0x0102030405060708)
	f64 := float64(1.0)

	tests := []struct {
		name string
		typ  DataType
		v    any
		want []byte
	}{
		{"BOOL", TypeBool, &b, []byte{0x01}},
		{"SINT", TypeSint, &i8, []byte{0xFE}},
		{"USINT", TypeUsint, &u8, []byte{0xAB}},
		{"BYTE", TypeByte, &u8, []byte{0xAB}},
		{"INT", TypeInt, &i16, []byte{0xFE, 0xFF}},
		{"UINT", TypeUint, &u16, []byte{0x34, 0x12}},
		{"WORD", TypeWord, &u16, []byte{0x34, 0x12}},
		{"DINT", TypeDint, &i32, []byte{0xFE, 0xFF, 0xFF, 0xFF}},
		{"UDINT", TypeUdint, &u32, []byte{0x78, 0x56, 0x34, 0x12}},
		{"DWORD", TypeDword, &u32, []byte{0x78, 0x56, 0x34, 0x12}},
		{"REAL", TypeReal, &f32, []byte{0x00, 0x00, 0x80, 0x3F}},
		{"LINT", TypeLint, &i64, []byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"ULINT", TypeUlint, &u64, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}},
		{"LWORD", TypeLword, &u64, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}},
		{"LREAL", TypeLreal, &f64, []byte{0, 0, 0, 0, 0, 0, 0xF0, 0x3F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeBytes(t, tt.typ, tt.v)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got % X, want % X", got, tt.want)
			}
			if size := tt.typ.Size(); size != len(got) {
				t.Errorf("Size() = %d, encoded %d bytes", size, len(got))
			}
		})
	}
}

func TestEncodeStrings(t *testing.T) {
	tests := []struct {
		name string
		typ  DataType
		s    string
		want []byte
	}{
		{"STRING odd is padded", TypeString, "abc", []byte{0x03, 0x00, 'a', 'b', 'c', 0x00}},
		{"STRING even", TypeString, "ab", []byte{0x02, 0x00, 'a', 'b'}},
		{"STRING empty", TypeString, "", []byte{0x00, 0x00}},
		{"SHORT_STRING odd", TypeShortString, "abc", []byte{0x03, 'a', 'b', 'c'}},
		{"SHORT_STRING empty", TypeShortString, "", []byte{0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.s
			got := encodeBytes(t, tt.typ, &s)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got % X, want % X", got, tt.want)
			}
		})
	}
}

func TestStringEncodedLengthIsEven(t *testing.T) {
	for _, s := range []string{"a", "abc", "1756-L61/B LOGIX5561", "odd!!"} {
		got := encodeBytes(t, TypeString, &s)
		want := 2 + len(s)
		if want%2 == 1 {
			want++
		}
		if len(got) != want {
			t.Errorf("%q: encoded %d bytes, want %d", s, len(got), want)
		}
	}
}

func TestEncodeStructured(t *testing.T) {
	t.Run("revision", func(t *testing.T) {
		rev := Revision{Major: 2, Minor: 7}
		got := encodeBytes(t, TypeRevision, &rev)
		if !bytes.Equal(got, []byte{0x02, 0x07}) {
			t.Errorf("got % X", got)
		}
	})

	t.Run("mac", func(t *testing.T) {
		mac := MAC{0x00, 0x1D, 0x9C, 0x01, 0x02, 0x03}
		got := encodeBytes(t, TypeMAC, &mac)
		if !bytes.Equal(got, mac[:]) {
			t.Errorf("got % X", got)
		}
	})

	t.Run("byte array has no length prefix", func(t *testing.T) {
		data := []byte{1, 2, 3}
		got := encodeBytes(t, TypeByteArray, &data)
		if !bytes.Equal(got, []byte{1, 2, 3}) {
			t.Errorf("got % X", got)
		}
	})

	t.Run("uint6", func(t *testing.T) {
		u := Uint6{1, 2, 3, 4, 5, 0x0102}
		got := encodeBytes(t, TypeUint6, &u)
		want := []byte{1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 0x02, 0x01}
		if !bytes.Equal(got, want) {
			t.Errorf("got % X, want % X", got, want)
		}
	})

	t.Run("network config", func(t *testing.T) {
		cfg := NetworkConfig{
			IPAddress:   netip.MustParseAddr("192.168.1.10"),
			NetworkMask: netip.MustParseAddr("255.255.255.0"),
			Gateway:     netip.MustParseAddr("192.168.1.1"),
			DomainName:  "plant",
		}
		got := encodeBytes(t, TypeNetworkConfig, &cfg)
		want := []byte{
			0x0A, 0x01, 0xA8, 0xC0,
			0x00, 0xFF, 0xFF, 0xFF,
			0x01, 0x01, 0xA8, 0xC0,
			0, 0, 0, 0,
			0, 0, 0, 0,
			0x05, 0x00, 'p', 'l', 'a', 'n', 't', 0x00,
		}
		if !bytes.Equal(got, want) {
			t.Errorf("got % X\nwant % X", got, want)
		}
	})

	t.Run("epath", func(t *testing.T) {
		p := NewPath(0x04, 0x64, 3)
		got := encodeBytes(t, TypeEpath, &p)
		want := []byte{0x03, 0x00, 0x20, 0x04, 0x24, 0x64, 0x30, 0x03}
		if !bytes.Equal(got, want) {
			t.Errorf("got % X, want % X", got, want)
		}
	})
}

func TestEncodeUnrepresentableTypesWriteNothing(t *testing.T) {
	var v uint32
	for _, typ := range []DataType{
		TypeStime, TypeDate, TypeTimeOfDay, TypeDateAndTime, TypeString2,
		TypeFtime, TypeLtime, TypeItime, TypeStringN, TypeTime, TypeEngUnit,
		TypeMemberList, DataType(0x42),
	} {
		w := NewWriter(16)
		n, err := Encode(w, typ, &v)
		if err != nil {
			t.Errorf("%s: unexpected error %v", typ, err)
		}
		if n != 0 || w.Len() != 0 {
			t.Errorf("%s: wrote %d bytes, want 0", typ, n)
		}
	}
}

func TestEncodeTypeMismatch(t *testing.T) {
	var u16 uint16
	var s string
	var nilPtr *uint16

	tests := []struct {
		name string
		typ  DataType
		v    any
	}{
		{"UINT into string", TypeUint, &s},
		{"STRING into uint16", TypeString, &u16},
		{"DINT into uint16", TypeDint, &u16},
		{"non-pointer", TypeUint, u16},
		{"nil", TypeUint, nil},
		{"typed nil", TypeUint, nilPtr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(NewWriter(16), tt.typ, tt.v)
			if !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("expected ErrTypeMismatch, got %v", err)
			}
		})
	}
}

func TestEncodeBufferFullWritesNothing(t *testing.T) {
	w := NewWriter(5)
	s := "abcd"
	_, err := Encode(w, TypeString, &s)
	if !errors.Is(err, ErrBufferFull) {
		t.Fatalf("expected ErrBufferFull, got %v", err)
	}
	if w.Len() != 0 {
		t.Errorf("writer holds %d bytes after failed encode", w.Len())
	}

	status, ok := StatusOf(err)
	if !ok || status != StatusReplyDataTooLarge {
		t.Errorf("StatusOf(ErrBufferFull) = %v, %v", status, ok)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		typ  DataType
		in   any
		out  func() any
	}{
		{"BOOL", TypeBool, ptr(true), func() any { return new(bool) }},
		{"SINT", TypeSint, ptr(int8(-100)), func() any { return new(int8) }},
		{"USINT", TypeUsint, ptr(uint8(200)), func() any { return new(uint8) }},
		{"BYTE", TypeByte, ptr(uint8(0x5A)), func() any { return new(uint8) }},
		{"INT", TypeInt, ptr(int16(-30000)), func() any { return new(int16) }},
		{"UINT", TypeUint, ptr(uint16(60000)), func() any { return new(uint16) }},
		{"WORD", TypeWord, ptr(uint16(0xBEEF)), func() any { return new(uint16) }},
		{"DINT", TypeDint, ptr(int32(-2000000000)), func() any { return new(int32) }},
		{"UDINT", TypeUdint, ptr(uint32(4000000000)), func() any { return new(uint32) }},
		{"DWORD", TypeDword, ptr(uint32(0xDEADBEEF)), func() any { return new(uint32) }},
		{"REAL", TypeReal, ptr(float32(3.25)), func() any { return new(float32) }},
		{"LINT", TypeLint, ptr(int64(-1 << 40)), func() any { return new(int64) }},
		{"ULINT", TypeUlint, ptr(uint64(1 << 60)), func() any { return new(uint64) }},
		{"LWORD", TypeLword, ptr(uint64(0xCAFEBABE12345678)), func() any { return new(uint64) }},
		{"LREAL", TypeLreal, ptr(-2.5), func() any { return new(float64) }},
		{"STRING odd", TypeString, ptr("odd"), func() any { return new(string) }},
		{"STRING even", TypeString, ptr("even"), func() any { return new(string) }},
		{"SHORT_STRING", TypeShortString, ptr("Test Device"), func() any { return new(string) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodeBytes(t, tt.typ, tt.in)
			out := tt.out()
			n, err := Decode(data, tt.typ, out)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if n != len(data) {
				t.Errorf("consumed %d bytes, encoded %d", n, len(data))
			}
			again := encodeBytes(t, tt.typ, out)
			if !bytes.Equal(again, data) {
				t.Errorf("round trip mismatch: % X vs % X", again, data)
			}
		})
	}
}

func TestDecodeUnsupported(t *testing.T) {
	var rev Revision
	n, err := Decode([]byte{1, 2}, TypeRevision, &rev)
	if n != -1 {
		t.Errorf("n = %d, want -1", n)
	}
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}

	var data []byte
	if n, _ := Decode([]byte{1}, TypeByteArray, &data); n != -1 {
		t.Errorf("BYTE_ARRAY decode returned %d, want -1", n)
	}
}

func TestDecodeRejectsShortInput(t *testing.T) {
	tests := []struct {
		name string
		typ  DataType
		data []byte
		out  any
	}{
		{"UINT one byte", TypeUint, []byte{0x01}, new(uint16)},
		{"UDINT three bytes", TypeUdint, []byte{1, 2, 3}, new(uint32)},
		{"ULINT empty", TypeUlint, nil, new(uint64)},
		{"STRING length beyond input", TypeString, []byte{0xFF, 0x00, 'a', 'b'}, new(string)},
		{"STRING missing pad", TypeString, []byte{0x01, 0x00, 'a'}, new(string)},
		{"SHORT_STRING length beyond input", TypeShortString, []byte{0x10, 'a'}, new(string)},
		{"STRING no length", TypeString, []byte{0x01}, new(string)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data, tt.typ, tt.out)
			if !errors.Is(err, ErrShortBuffer) {
				t.Errorf("expected ErrShortBuffer, got %v", err)
			}
		})
	}
}

func TestDecodeLeavesValueOnError(t *testing.T) {
	s := "keep"
	if _, err := Decode([]byte{0x09, 0x00, 'x'}, TypeString, &s); err == nil {
		t.Fatal("expected error")
	}
	if s != "keep" {
		t.Errorf("value changed to %q", s)
	}
}

func TestParseDataType(t *testing.T) {
	for _, name := range []string{"UINT", "short_string", " Byte_Array "} {
		typ, err := ParseDataType(name)
		if err != nil {
			t.Errorf("ParseDataType(%q) failed: %v", name, err)
			continue
		}
		if typ.String() == "" {
			t.Errorf("ParseDataType(%q) produced unnamed type", name)
		}
	}
	if _, err := ParseDataType("FLOAT"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		name string
		typ  DataType
		data []byte
		want int
	}{
		{"UINT with trailing", TypeUint, []byte{1, 2, 3}, 2},
		{"STRING odd", TypeString, []byte{0x01, 0x00, 'a', 0x00, 0xFF}, 4},
		{"SHORT_STRING", TypeShortString, []byte{0x02, 'a', 'b'}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Measure(tt.data, tt.typ)
			if err != nil {
				t.Fatalf("Measure failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := Measure([]byte{0x05, 0x00, 'a'}, TypeString); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("expected ErrShortBuffer, got %v", err)
	}
	if n, _ := Measure(nil, TypeEpath); n != -1 {
		t.Errorf("EPATH measure = %d, want -1", n)
	}
}
