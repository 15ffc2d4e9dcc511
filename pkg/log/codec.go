package log

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// FormatVersion is the capture file format written by FileLogger.
const FormatVersion = 1

const fileMagic = "CIPLOG"

// Capture file errors.
var (
	ErrNotCaptureFile     = errors.New("not a capture file")
	ErrUnsupportedVersion = errors.New("unsupported capture file version")
)

// FileHeader is the first record of every capture file.
type FileHeader struct {
	Magic   string    `cbor:"1,keyasint"`
	Version uint8     `cbor:"2,keyasint"`
	Created time.Time `cbor:"3,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Timestamps keep nanoseconds; maps are ordered so equal events
	// encode to equal bytes.
	encMode, err = cbor.EncOptions{
		Sort:          cbor.SortCoreDeterministic,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("capture encoder mode: %v", err))
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		IndefLength:     cbor.IndefLengthForbidden,
		MaxNestedLevels: 8,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("capture decoder mode: %v", err))
	}
}

// EncodeEvent encodes one event as a CBOR map with integer keys.
func EncodeEvent(event Event) ([]byte, error) {
	return encMode.Marshal(event)
}

// DecodeEvent decodes one CBOR encoded event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := decMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

func newHeader(created time.Time) FileHeader {
	return FileHeader{Magic: fileMagic, Version: FormatVersion, Created: created}
}

// readHeader decodes and checks the header record. An empty stream
// returns io.EOF.
func readHeader(dec *cbor.Decoder) (FileHeader, error) {
	var h FileHeader
	if err := dec.Decode(&h); err != nil {
		if errors.Is(err, io.EOF) {
			return FileHeader{}, io.EOF
		}
		return FileHeader{}, fmt.Errorf("%w: %v", ErrNotCaptureFile, err)
	}
	if h.Magic != fileMagic {
		return FileHeader{}, ErrNotCaptureFile
	}
	if h.Version != FormatVersion {
		return FileHeader{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	return h, nil
}
