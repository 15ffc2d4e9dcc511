package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Logical segment tags.
const (
	SegmentClass8      uint8 = 0x20
	SegmentClass16     uint8 = 0x21
	SegmentInstance8   uint8 = 0x24
	SegmentInstance16  uint8 = 0x25
	SegmentAttribute8  uint8 = 0x30
	SegmentAttribute16 uint8 = 0x31

	segmentReservedMask uint8 = 0xE0
)

var (
	// ErrReservedSegment is returned for a segment byte in the reserved range.
	ErrReservedSegment = errors.New("wire: reserved path segment")

	// ErrInvalidSegment is returned for a segment type this decoder does not know.
	ErrInvalidSegment = errors.New("wire: invalid path segment")

	// ErrPathSize is returned when a segment runs past the declared word count.
	ErrPathSize = errors.New("wire: path size mismatch")
)

// Path addresses a class, an instance of it and one of its attributes.
// Words is the path size in 16-bit words. Segments beyond the word budget
// are not encoded.
type Path struct {
	Words           uint16
	ClassID         uint16
	InstanceNumber  uint16
	AttributeNumber uint16
}

// segmentWords returns the number of words a logical segment for v takes.
func segmentWords(v uint16) uint16 {
	if v < 0x100 {
		return 1
	}
	return 2
}

// NewPath returns a path with class, instance and attribute segments.
func NewPath(classID, instance, attribute uint16) Path {
	return Path{
		Words:           segmentWords(classID) + segmentWords(instance) + segmentWords(attribute),
		ClassID:         classID,
		InstanceNumber:  instance,
		AttributeNumber: attribute,
	}
}

// NewInstancePath returns a path with class and instance segments only.
func NewInstancePath(classID, instance uint16) Path {
	return Path{
		Words:          segmentWords(classID) + segmentWords(instance),
		ClassID:        classID,
		InstanceNumber: instance,
	}
}

// String returns the path in class/instance/attribute notation.
func (p Path) String() string {
	return fmt.Sprintf("0x%02X/%d/%d", p.ClassID, p.InstanceNumber, p.AttributeNumber)
}

func appendSegment(dst []byte, tag8 uint8, v uint16) []byte {
	if v < 0x100 {
		return append(dst, tag8, uint8(v))
	}
	dst = append(dst, tag8+1, 0)
	return binary.LittleEndian.AppendUint16(dst, v)
}

// appendSegments writes the class segment and then the instance and
// attribute segments while the word budget lasts.
func appendSegments(dst []byte, p Path) []byte {
	remaining := int(p.Words)
	dst = appendSegment(dst, SegmentClass8, p.ClassID)
	remaining -= int(segmentWords(p.ClassID))
	if remaining > 0 {
		dst = appendSegment(dst, SegmentInstance8, p.InstanceNumber)
		remaining -= int(segmentWords(p.InstanceNumber))
	}
	if remaining > 0 {
		dst = appendSegment(dst, SegmentAttribute8, p.AttributeNumber)
	}
	return dst
}

// EncodePath writes the EPATH attribute form of p: a UINT word count
// followed by the segments. It returns the number of bytes written.
func EncodePath(w *Writer, p Path) (int, error) {
	buf := binary.LittleEndian.AppendUint16(make([]byte, 0, 2+2*int(p.Words)), p.Words)
	buf = appendSegments(buf, p)
	return w.Write(buf)
}

// DecodePath reads the EPATH attribute form written by EncodePath and
// returns the path and the number of bytes consumed. Request paths use
// DecodeRequestPath instead.
func DecodePath(data []byte) (Path, int, error) {
	if len(data) < 2 {
		return Path{}, 0, fmt.Errorf("%w: path size", ErrShortBuffer)
	}
	words := binary.LittleEndian.Uint16(data)
	p, err := decodeSegments(data[2:], words)
	if err != nil {
		return Path{}, 0, err
	}
	return p, 2 + 2*int(words), nil
}

// AppendRequestPath appends the request form of p: a USINT word count
// followed by the segments.
func AppendRequestPath(dst []byte, p Path) []byte {
	dst = append(dst, uint8(p.Words))
	return appendSegments(dst, p)
}

// DecodeRequestPath is the message router's path parser. It reads the
// path of a request: a USINT word count followed by that many words of
// logical segments, and returns the path and the number of bytes
// consumed. EPATH attribute values with a UINT word count go through
// DecodePath.
func DecodeRequestPath(data []byte) (Path, int, error) {
	if len(data) < 1 {
		return Path{}, 0, fmt.Errorf("%w: path size", ErrShortBuffer)
	}
	words := uint16(data[0])
	p, err := decodeSegments(data[1:], words)
	if err != nil {
		return Path{}, 0, err
	}
	return p, 1 + 2*int(words), nil
}

// decodeSegments walks words 16-bit words of logical segments. The input
// must hold all of them before any segment is looked at.
func decodeSegments(data []byte, words uint16) (Path, error) {
	if len(data) < 2*int(words) {
		return Path{}, fmt.Errorf("%w: path of %d words, %d bytes available",
			ErrShortBuffer, words, len(data))
	}

	p := Path{Words: words}
	off := 0
	for decoded := uint16(0); decoded < words; {
		tag := data[off]
		if tag&segmentReservedMask == segmentReservedMask {
			return Path{}, fmt.Errorf("%w: 0x%02X at offset %d", ErrReservedSegment, tag, off)
		}

		var (
			v    uint16
			size uint16
		)
		switch tag {
		case SegmentClass8, SegmentInstance8, SegmentAttribute8:
			v = uint16(data[off+1])
			size = 1
		case SegmentClass16, SegmentInstance16, SegmentAttribute16:
			if decoded+2 > words {
				return Path{}, fmt.Errorf("%w: 16-bit segment at offset %d exceeds %d words",
					ErrPathSize, off, words)
			}
			v = binary.LittleEndian.Uint16(data[off+2:])
			size = 2
		default:
			return Path{}, fmt.Errorf("%w: 0x%02X at offset %d", ErrInvalidSegment, tag, off)
		}

		switch tag &^ 1 {
		case SegmentClass8:
			p.ClassID = v
		case SegmentInstance8:
			p.InstanceNumber = v
		case SegmentAttribute8:
			p.AttributeNumber = v
		}
		off += 2 * int(size)
		decoded += size
	}
	return p, nil
}
