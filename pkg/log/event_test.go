package log

import (
	"bytes"
	"fmt"
	"testing"
)

func TestEnumNames(t *testing.T) {
	tests := []struct {
		value fmt.Stringer
		want  string
	}{
		{DirectionIn, "IN"},
		{DirectionOut, "OUT"},
		{Direction(7), "UNKNOWN"},
		{LayerTransport, "TRANSPORT"},
		{LayerRouter, "ROUTER"},
		{LayerObject, "OBJECT"},
		{Layer(99), "UNKNOWN"},
		{CategoryMessage, "MESSAGE"},
		{CategoryState, "STATE"},
		{CategoryError, "ERROR"},
		{Category(3), "UNKNOWN"},
		{MessageTypeRequest, "REQUEST"},
		{MessageTypeResponse, "RESPONSE"},
		{MessageType(2), "UNKNOWN"},
		{StateEntityStack, "STACK"},
		{StateEntityClass, "CLASS"},
		{StateEntityConnection, "CONNECTION"},
		{StateEntity(255), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("%T(%v).String() = %q, want %q", tt.value, tt.value, got, tt.want)
		}
	}
}

// Stored files depend on these values staying fixed.
func TestEnumValues(t *testing.T) {
	got := []uint8{
		uint8(DirectionIn), uint8(DirectionOut),
		uint8(LayerTransport), uint8(LayerRouter), uint8(LayerObject),
		uint8(CategoryMessage), uint8(CategoryState), uint8(CategoryError),
		uint8(MessageTypeRequest), uint8(MessageTypeResponse),
		uint8(StateEntityStack), uint8(StateEntityClass), uint8(StateEntityConnection),
	}
	want := []uint8{0, 1, 0, 1, 2, 0, 1, 2, 0, 1, 0, 1, 2}
	if !bytes.Equal(got, want) {
		t.Errorf("enum values = %v, want %v", got, want)
	}
}

func TestParseEnums(t *testing.T) {
	if d, err := ParseDirection("Out"); err != nil || d != DirectionOut {
		t.Errorf("ParseDirection(Out) = %v, %v", d, err)
	}
	if l, err := ParseLayer("router"); err != nil || l != LayerRouter {
		t.Errorf("ParseLayer(router) = %v, %v", l, err)
	}
	if c, err := ParseCategory("ERROR"); err != nil || c != CategoryError {
		t.Errorf("ParseCategory(ERROR) = %v, %v", c, err)
	}

	for _, bad := range []func() error{
		func() error { _, err := ParseDirection("up"); return err },
		func() error { _, err := ParseLayer("wire"); return err },
		func() error { _, err := ParseCategory(""); return err },
	} {
		if bad() == nil {
			t.Error("parse of an unknown name succeeded")
		}
	}
}

func TestNewFrameEvent(t *testing.T) {
	t.Run("small", func(t *testing.T) {
		data := []byte{0x0E, 0x03, 0x20, 0x01, 0x24, 0x01, 0x30, 0x07}
		f := NewFrameEvent(data)
		if f.Size != len(data) || f.Truncated {
			t.Errorf("size %d truncated %v", f.Size, f.Truncated)
		}
		if !bytes.Equal(f.Data, data) {
			t.Errorf("data = % X", f.Data)
		}
		data[0] = 0xFF
		if f.Data[0] != 0x0E {
			t.Error("frame data aliases the input")
		}
	})

	t.Run("truncated", func(t *testing.T) {
		data := make([]byte, MaxFrameData+10)
		f := NewFrameEvent(data)
		if f.Size != MaxFrameData+10 {
			t.Errorf("Size = %d", f.Size)
		}
		if !f.Truncated || len(f.Data) != MaxFrameData {
			t.Errorf("truncated %v, kept %d bytes", f.Truncated, len(f.Data))
		}
	})

	t.Run("empty", func(t *testing.T) {
		f := NewFrameEvent(nil)
		if f.Size != 0 || f.Truncated || len(f.Data) != 0 {
			t.Errorf("NewFrameEvent(nil) = %+v", f)
		}
	})
}
