package inspect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cip-stack/cip-go/pkg/model"
	"github.com/cip-stack/cip-go/pkg/wire"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowMetadata includes type and access information
	ShowMetadata bool

	// ShowIDs includes numeric IDs alongside names
	ShowIDs bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowMetadata: true,
		ShowIDs:      true,
		IndentWidth:  2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// FormatValue formats the value referenced by v for display. v is the
// pointer stored in an attribute.
func FormatValue(t wire.DataType, v any) string {
	if v == nil {
		return "null"
	}
	if !t.Serializable() {
		return "(no encoding)"
	}

	switch p := v.(type) {
	case *bool:
		return strconv.FormatBool(*p)
	case *int8:
		return strconv.FormatInt(int64(*p), 10)
	case *int16:
		return strconv.FormatInt(int64(*p), 10)
	case *int32:
		return strconv.FormatInt(int64(*p), 10)
	case *int64:
		return strconv.FormatInt(*p, 10)
	case *uint8:
		if t == wire.TypeByte {
			return fmt.Sprintf("0x%02X", *p)
		}
		return strconv.FormatUint(uint64(*p), 10)
	case *uint16:
		if t == wire.TypeWord {
			return fmt.Sprintf("0x%04X", *p)
		}
		return fmt.Sprintf("%d (0x%04X)", *p, *p)
	case *uint32:
		if t == wire.TypeDword {
			return fmt.Sprintf("0x%08X", *p)
		}
		return fmt.Sprintf("%d (0x%08X)", *p, *p)
	case *uint64:
		if t == wire.TypeLword {
			return fmt.Sprintf("0x%016X", *p)
		}
		return strconv.FormatUint(*p, 10)
	case *float32:
		return strconv.FormatFloat(float64(*p), 'g', -1, 32)
	case *float64:
		return strconv.FormatFloat(*p, 'g', -1, 64)
	case *string:
		return strconv.Quote(*p)
	case *[]byte:
		if len(*p) == 0 {
			return "[]"
		}
		return "[" + hexBytes(*p) + "]"
	case *wire.Path:
		return p.String()
	case *wire.Revision:
		return p.String()
	case *wire.MAC:
		return p.String()
	case *wire.Uint6:
		return fmt.Sprint(*p)
	case *wire.NetworkConfig:
		return fmt.Sprintf("ip=%s mask=%s gateway=%s dns=%s,%s domain=%q",
			addrString(p.IPAddress.String()), addrString(p.NetworkMask.String()),
			addrString(p.Gateway.String()), addrString(p.NameServer.String()),
			addrString(p.NameServer2.String()), p.DomainName)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func addrString(s string) string {
	if s == "invalid IP" {
		return "-"
	}
	return s
}

// DecodeValue decodes one value of type t from data and formats it.
func DecodeValue(t wire.DataType, data []byte) (string, error) {
	v, err := newStorage(t)
	if err != nil {
		return "", err
	}
	if _, err := wire.Decode(data, t, v); err != nil {
		return "", err
	}
	return FormatValue(t, v), nil
}

// newStorage allocates a value of the Go type that holds t.
func newStorage(t wire.DataType) (any, error) {
	switch t {
	case wire.TypeBool:
		return new(bool), nil
	case wire.TypeSint:
		return new(int8), nil
	case wire.TypeUsint, wire.TypeByte:
		return new(uint8), nil
	case wire.TypeInt:
		return new(int16), nil
	case wire.TypeUint, wire.TypeWord:
		return new(uint16), nil
	case wire.TypeDint:
		return new(int32), nil
	case wire.TypeUdint, wire.TypeDword:
		return new(uint32), nil
	case wire.TypeLint:
		return new(int64), nil
	case wire.TypeUlint, wire.TypeLword:
		return new(uint64), nil
	case wire.TypeReal:
		return new(float32), nil
	case wire.TypeLreal:
		return new(float64), nil
	case wire.TypeString, wire.TypeShortString:
		return new(string), nil
	}
	return nil, fmt.Errorf("%w: %s cannot be decoded", wire.ErrTypeMismatch, t)
}

// ParseValue parses text into a value of type t and returns its wire
// encoding. Numbers accept decimal or 0x hex; strings are taken as is.
func ParseValue(t wire.DataType, text string) ([]byte, error) {
	v, err := newStorage(t)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)

	switch p := v.(type) {
	case *bool:
		*p, err = strconv.ParseBool(text)
	case *int8:
		var n int64
		n, err = strconv.ParseInt(text, 0, 8)
		*p = int8(n)
	case *int16:
		var n int64
		n, err = strconv.ParseInt(text, 0, 16)
		*p = int16(n)
	case *int32:
		var n int64
		n, err = strconv.ParseInt(text, 0, 32)
		*p = int32(n)
	case *int64:
		*p, err = strconv.ParseInt(text, 0, 64)
	case *uint8:
		var n uint64
		n, err = strconv.ParseUint(text, 0, 8)
		*p = uint8(n)
	case *uint16:
		var n uint64
		n, err = strconv.ParseUint(text, 0, 16)
		*p = uint16(n)
	case *uint32:
		var n uint64
		n, err = strconv.ParseUint(text, 0, 32)
		*p = uint32(n)
	case *uint64:
		*p, err = strconv.ParseUint(text, 0, 64)
	case *float32:
		var f float64
		f, err = strconv.ParseFloat(text, 32)
		*p = float32(f)
	case *float64:
		*p, err = strconv.ParseFloat(text, 64)
	case *string:
		if unq, uerr := strconv.Unquote(text); uerr == nil {
			text = unq
		}
		*p = text
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", t, err)
	}

	w := wire.NewWriter(1 << 16)
	if _, err := wire.Encode(w, t, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// FormatAttribute formats one attribute as "[n] name: value (TYPE, access)".
func (f *Formatter) FormatAttribute(classID, instance uint16, attr *model.Attribute) string {
	name := GetAttributeName(classID, instance, attr.Number)
	if name == "" {
		name = fmt.Sprintf("attr_%d", attr.Number)
	}

	var sb strings.Builder
	if f.ShowIDs {
		sb.WriteString(fmt.Sprintf("[%d] ", attr.Number))
	}
	sb.WriteString(name)
	sb.WriteString(": ")
	sb.WriteString(FormatValue(attr.Type, attr.Value))
	if f.ShowMetadata {
		sb.WriteString(fmt.Sprintf(" (%s, %s)", attr.Type, attr.Flags))
	}
	return sb.String()
}

// FormatAttribute formats an attribute with the default formatter.
func FormatAttribute(classID, instance uint16, attr *model.Attribute) string {
	return NewFormatter().FormatAttribute(classID, instance, attr)
}

func hexBytes(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%02x", b))
	}
	return sb.String()
}

// HexDump formats data as offset, 16 hex bytes and printable characters
// per line.
func HexDump(data []byte) string {
	if len(data) == 0 {
		return "(empty)\n"
	}

	var sb strings.Builder
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		line := data[off:end]

		sb.WriteString(fmt.Sprintf("%04x  %-47s  ", off, hexBytes(line)))
		for _, b := range line {
			if b >= 0x20 && b < 0x7f {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
