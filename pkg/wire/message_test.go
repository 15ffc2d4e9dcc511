package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeRequest(t *testing.T) {
	data := []byte{0x0E, 0x03, 0x20, 0x01, 0x24, 0x01, 0x30, 0x07}

	req, err := DecodeRequest(data)
	if err != nil {
		t.Fatalf("DecodeRequest failed: %v", err)
	}
	if req.Service != ServiceGetAttributeSingle {
		t.Errorf("service = %v", req.Service)
	}
	if req.Path != NewPath(1, 1, 7) {
		t.Errorf("path = %+v", req.Path)
	}
	if len(req.Data) != 0 {
		t.Errorf("data = % X, want empty", req.Data)
	}
}

func TestRequestRoundTrip(t *testing.T) {
	in := Request{
		Service: ServiceSetAttributeSingle,
		Path:    NewPath(0x64, 2, 3),
		Data:    []byte{0x34, 0x12},
	}
	out, err := DecodeRequest(AppendRequest(nil, in))
	if err != nil {
		t.Fatalf("DecodeRequest failed: %v", err)
	}
	if out.Service != in.Service || out.Path != in.Path || !bytes.Equal(out.Data, in.Data) {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestDecodeRequestKeepsServiceOnPathError(t *testing.T) {
	req, err := DecodeRequest([]byte{0x0E, 0x01, 0xE0, 0x00})
	if !errors.Is(err, ErrReservedSegment) {
		t.Fatalf("expected ErrReservedSegment, got %v", err)
	}
	if req.Service != ServiceGetAttributeSingle {
		t.Errorf("service = %v", req.Service)
	}
}

func TestEncodeResponse(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want []byte
	}{
		{
			name: "success with data",
			resp: Response{
				Service:       ServiceGetAttributeSingle.Reply(),
				GeneralStatus: StatusSuccess,
				Data:          []byte{0x01, 0x00},
			},
			want: []byte{0x8E, 0x00, 0x00, 0x00, 0x01, 0x00},
		},
		{
			name: "error with additional status",
			resp: Response{
				Service:          ServiceSetAttributeSingle.Reply(),
				GeneralStatus:    StatusInvalidAttributeValue,
				AdditionalStatus: []uint16{0x0102},
			},
			want: []byte{0x90, 0x00, 0x09, 0x01, 0x02, 0x01},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeResponse(tt.resp)
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("got % X, want % X", got, tt.want)
			}

			back, err := DecodeResponse(got)
			if err != nil {
				t.Fatalf("DecodeResponse failed: %v", err)
			}
			if back.Service != tt.resp.Service || back.GeneralStatus != tt.resp.GeneralStatus {
				t.Errorf("header mismatch: %+v", back)
			}
			if len(back.AdditionalStatus) != len(tt.resp.AdditionalStatus) {
				t.Errorf("additional status = %v", back.AdditionalStatus)
			}
			if !bytes.Equal(back.Data, tt.resp.Data) {
				t.Errorf("data = % X", back.Data)
			}
		})
	}
}

func TestDecodeResponseErrors(t *testing.T) {
	if _, err := DecodeResponse([]byte{0x8E, 0x00}); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("short header: got %v", err)
	}
	if _, err := DecodeResponse([]byte{0x8E, 0x00, 0x00, 0x02, 0x01, 0x00}); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("short additional status: got %v", err)
	}
	if _, err := DecodeResponse([]byte{0x0E, 0x00, 0x00, 0x00}); err == nil {
		t.Error("expected error for request service code")
	}
}

func TestEncodeResponseCapsAdditionalStatus(t *testing.T) {
	words := make([]uint16, 300)
	for i := range words {
		words[i] = uint16(i)
	}
	got := EncodeResponse(Response{
		Service:          ServiceGetAttributeAll.Reply(),
		GeneralStatus:    StatusObjectStateConflict,
		AdditionalStatus: words,
		Data:             []byte{0xAA},
	})
	if got[3] != MaxAdditionalStatus {
		t.Fatalf("word count = %d, want %d", got[3], MaxAdditionalStatus)
	}
	if len(got) != 4+2*MaxAdditionalStatus+1 {
		t.Fatalf("len = %d", len(got))
	}

	back, err := DecodeResponse(got)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if len(back.AdditionalStatus) != MaxAdditionalStatus || back.AdditionalStatus[254] != 254 {
		t.Errorf("additional status has %d words", len(back.AdditionalStatus))
	}
	if !bytes.Equal(back.Data, []byte{0xAA}) {
		t.Errorf("data = % X", back.Data)
	}
}

func TestStatusErrorAdditionalStatus(t *testing.T) {
	words := make([]uint16, MaxAdditionalStatus+10)

	se := NewStatusError(StatusObjectStateConflict, nil).WithExtended(words...)
	if len(se.Extended) != MaxAdditionalStatus {
		t.Errorf("WithExtended kept %d words", len(se.Extended))
	}

	se = &StatusError{Status: StatusObjectStateConflict, Extended: words}
	if n := len(se.AdditionalStatus()); n != MaxAdditionalStatus {
		t.Errorf("AdditionalStatus returned %d words", n)
	}
	se.Extended = []uint16{1, 2}
	if n := len(se.AdditionalStatus()); n != 2 {
		t.Errorf("AdditionalStatus returned %d words, want 2", n)
	}
}

func TestServiceString(t *testing.T) {
	if got := ServiceGetAttributeAll.String(); got != "GetAttributeAll" {
		t.Errorf("got %q", got)
	}
	if got := ServiceGetAttributeSingle.Reply().String(); got != "GetAttributeSingleReply" {
		t.Errorf("got %q", got)
	}
	if got := Service(0x4C).String(); got != "Service(0x4C)" {
		t.Errorf("got %q", got)
	}
}

func TestParseService(t *testing.T) {
	tests := []struct {
		in      string
		want    Service
		wantErr bool
	}{
		{"GetAttributeSingle", ServiceGetAttributeSingle, false},
		{"setattributesingle", ServiceSetAttributeSingle, false},
		{"0x01", ServiceGetAttributeAll, false},
		{"75", Service(0x4B), false},
		{"Bogus", 0, true},
		{"0x100", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseService(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseService(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseService(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
