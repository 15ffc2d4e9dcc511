package log

import (
	"fmt"
	"strings"
	"time"

	"github.com/cip-stack/cip-go/pkg/wire"
)

// Event is one captured record. Exactly one of Frame, Message,
// StateChange and Error is set.
//
// Field keys are part of the capture file format and must not be reused.
type Event struct {
	Timestamp    time.Time `cbor:"1,keyasint"`
	ConnectionID string    `cbor:"2,keyasint"`
	Direction    Direction `cbor:"3,keyasint"`
	Layer        Layer     `cbor:"4,keyasint"`
	Category     Category  `cbor:"5,keyasint"`

	// RemoteAddr identifies the peer, when the transport knows one.
	RemoteAddr string `cbor:"6,keyasint,omitempty"`

	Frame       *FrameEvent       `cbor:"7,keyasint,omitempty"`
	Message     *MessageEvent     `cbor:"8,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"9,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"10,keyasint,omitempty"`
}

// The numeric values of the enums below are stored in capture files.

// Direction is the flow of a message relative to the device.
type Direction uint8

const (
	DirectionIn  Direction = 0
	DirectionOut Direction = 1
)

// Layer is where an event was captured: the raw message router bytes, the
// decoded request and reply, or the object model.
type Layer uint8

const (
	LayerTransport Layer = 0
	LayerRouter    Layer = 1
	LayerObject    Layer = 2
)

// Category tells messages, state changes and errors apart.
type Category uint8

const (
	CategoryMessage Category = 0
	CategoryState   Category = 1
	CategoryError   Category = 2
)

// MessageType tells requests and replies apart.
type MessageType uint8

const (
	MessageTypeRequest  MessageType = 0
	MessageTypeResponse MessageType = 1
)

// StateEntity is the kind of thing whose state changed.
type StateEntity uint8

const (
	StateEntityStack      StateEntity = 0
	StateEntityClass      StateEntity = 1
	StateEntityConnection StateEntity = 2
)

var (
	directionNames   = []string{"IN", "OUT"}
	layerNames       = []string{"TRANSPORT", "ROUTER", "OBJECT"}
	categoryNames    = []string{"MESSAGE", "STATE", "ERROR"}
	messageTypeNames = []string{"REQUEST", "RESPONSE"}
	entityNames      = []string{"STACK", "CLASS", "CONNECTION"}
)

func enumName(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return "UNKNOWN"
}

func parseEnum(kind string, names []string, s string) (uint8, error) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("invalid %s: %s (must be one of %s)", kind, s, strings.ToLower(strings.Join(names, ", ")))
}

func (d Direction) String() string   { return enumName(directionNames, uint8(d)) }
func (l Layer) String() string       { return enumName(layerNames, uint8(l)) }
func (c Category) String() string    { return enumName(categoryNames, uint8(c)) }
func (m MessageType) String() string { return enumName(messageTypeNames, uint8(m)) }
func (s StateEntity) String() string { return enumName(entityNames, uint8(s)) }

// ParseDirection accepts "in" or "out" in any case.
func ParseDirection(s string) (Direction, error) {
	v, err := parseEnum("direction", directionNames, s)
	return Direction(v), err
}

// ParseLayer accepts a layer name in any case.
func ParseLayer(s string) (Layer, error) {
	v, err := parseEnum("layer", layerNames, s)
	return Layer(v), err
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	v, err := parseEnum("category", categoryNames, s)
	return Category(v), err
}

// MaxFrameData is the number of raw bytes kept in a FrameEvent.
const MaxFrameData = 256

// FrameEvent holds the raw bytes of a request or reply. Size is the full
// length even when Data was cut to MaxFrameData.
type FrameEvent struct {
	Size      int    `cbor:"1,keyasint"`
	Data      []byte `cbor:"2,keyasint,omitempty"`
	Truncated bool   `cbor:"3,keyasint,omitempty"`
}

// NewFrameEvent copies data into a FrameEvent, truncating it to MaxFrameData.
func NewFrameEvent(data []byte) *FrameEvent {
	n := min(len(data), MaxFrameData)
	return &FrameEvent{
		Size:      len(data),
		Data:      append([]byte(nil), data[:n]...),
		Truncated: n < len(data),
	}
}

// MessageEvent is a decoded explicit message. A reply repeats the path of
// its request and carries the reply service code.
type MessageEvent struct {
	Type            MessageType  `cbor:"1,keyasint"`
	Service         wire.Service `cbor:"2,keyasint"`
	ClassID         uint16       `cbor:"3,keyasint"`
	InstanceNumber  uint16       `cbor:"4,keyasint"`
	AttributeNumber uint16       `cbor:"5,keyasint,omitempty"`

	// Reply only.
	GeneralStatus    *wire.Status   `cbor:"6,keyasint,omitempty"`
	AdditionalStatus []uint16       `cbor:"7,keyasint,omitempty"`
	ProcessingTime   *time.Duration `cbor:"9,keyasint,omitempty"`

	Payload []byte `cbor:"8,keyasint,omitempty"`
}

// StateChangeEvent records a lifecycle transition. OldState is empty for
// the first state of an entity.
type StateChangeEvent struct {
	Entity   StateEntity `cbor:"1,keyasint"`
	OldState string      `cbor:"2,keyasint,omitempty"`
	NewState string      `cbor:"3,keyasint"`
	Reason   string      `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData records a failure. Code holds the general status sent
// back, if any; Context names the operation.
type ErrorEventData struct {
	Layer   Layer  `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`
	Code    *int   `cbor:"3,keyasint,omitempty"`
	Context string `cbor:"4,keyasint,omitempty"`
}
