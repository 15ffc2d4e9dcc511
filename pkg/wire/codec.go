package wire

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTypeMismatch is returned when a value reference cannot hold the
	// data type it is paired with.
	ErrTypeMismatch = errors.New("wire: value does not match data type")

	// ErrUnsupportedType is returned by Decode for types it cannot read.
	ErrUnsupportedType = errors.New("wire: data type not decodable")

	// ErrValueTooLong is returned when a string or array exceeds the
	// range of its length prefix.
	ErrValueTooLong = errors.New("wire: value too long")
)

// CheckValue reports whether v is a usable reference for values of type t.
//
// The accepted references are:
//
//	BOOL                 *bool, *uint8
//	SINT                 *int8
//	USINT, BYTE          *uint8
//	INT                  *int16
//	UINT, WORD           *uint16
//	DINT                 *int32
//	UDINT, DWORD         *uint32
//	REAL                 *float32
//	LINT                 *int64
//	ULINT, LWORD         *uint64
//	LREAL                *float64
//	STRING, SHORT_STRING *string
//	EPATH                *Path
//	REVISION             *Revision
//	NETWORK_CONFIG       *NetworkConfig
//	MAC                  *MAC
//	BYTE_ARRAY           *[]byte
//	UINT6                *Uint6
//
// Types without an encoding accept any non-nil value.
func CheckValue(t DataType, v any) error {
	if accepts(t, v) {
		return nil
	}
	return fmt.Errorf("%w: %s cannot be stored in %T", ErrTypeMismatch, t, v)
}

func accepts(t DataType, v any) bool {
	if v == nil {
		return false
	}
	if !t.Serializable() {
		return true
	}
	switch p := v.(type) {
	case *bool:
		return p != nil && t == TypeBool
	case *int8:
		return p != nil && t == TypeSint
	case *uint8:
		return p != nil && (t == TypeUsint || t == TypeByte || t == TypeBool)
	case *int16:
		return p != nil && t == TypeInt
	case *uint16:
		return p != nil && (t == TypeUint || t == TypeWord)
	case *int32:
		return p != nil && t == TypeDint
	case *uint32:
		return p != nil && (t == TypeUdint || t == TypeDword)
	case *float32:
		return p != nil && t == TypeReal
	case *int64:
		return p != nil && t == TypeLint
	case *uint64:
		return p != nil && (t == TypeUlint || t == TypeLword)
	case *float64:
		return p != nil && t == TypeLreal
	case *string:
		return p != nil && (t == TypeString || t == TypeShortString)
	case *Path:
		return p != nil && t == TypeEpath
	case *Revision:
		return p != nil && t == TypeRevision
	case *NetworkConfig:
		return p != nil && t == TypeNetworkConfig
	case *MAC:
		return p != nil && t == TypeMAC
	case *[]byte:
		return p != nil && t == TypeByteArray
	case *Uint6:
		return p != nil && t == TypeUint6
	}
	return false
}

// Encode appends the wire form of the value referenced by v to w and
// returns the number of bytes written. Types without an encoding write
// nothing and return 0 with a nil error. On error nothing is written.
func Encode(w *Writer, t DataType, v any) (int, error) {
	if err := CheckValue(t, v); err != nil {
		return 0, err
	}
	if !t.Serializable() {
		return 0, nil
	}
	start := w.Len()
	if err := encodeValue(w, t, v); err != nil {
		w.Truncate(start)
		return 0, err
	}
	return w.Len() - start, nil
}

func encodeValue(w *Writer, t DataType, v any) error {
	switch p := v.(type) {
	case *bool:
		if *p {
			return w.WriteUint8(1)
		}
		return w.WriteUint8(0)
	case *int8:
		return w.WriteUint8(uint8(*p))
	case *uint8:
		return w.WriteUint8(*p)
	case *int16:
		return w.WriteUint16(uint16(*p))
	case *uint16:
		return w.WriteUint16(*p)
	case *int32:
		return w.WriteUint32(uint32(*p))
	case *uint32:
		return w.WriteUint32(*p)
	case *float32:
		return w.WriteUint32(math.Float32bits(*p))
	case *int64:
		return w.WriteUint64(uint64(*p))
	case *uint64:
		return w.WriteUint64(*p)
	case *float64:
		return w.WriteUint64(math.Float64bits(*p))
	case *string:
		if t == TypeShortString {
			return encodeShortString(w, *p)
		}
		return encodeString(w, *p)
	case *Path:
		_, err := EncodePath(w, *p)
		return err
	case *Revision:
		if err := w.WriteUint8(p.Major); err != nil {
			return err
		}
		return w.WriteUint8(p.Minor)
	case *NetworkConfig:
		for _, a := range p.addresses() {
			if err := w.WriteUint32(addrValue(a)); err != nil {
				return err
			}
		}
		return encodeString(w, p.DomainName)
	case *MAC:
		_, err := w.Write(p[:])
		return err
	case *[]byte:
		_, err := w.Write(*p)
		return err
	case *Uint6:
		for _, u := range p {
			if err := w.WriteUint16(u); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %s cannot be stored in %T", ErrTypeMismatch, t, v)
}

// encodeString writes a STRING: UINT length, characters, and one zero pad
// byte when the length is odd.
func encodeString(w *Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%w: STRING of %d bytes", ErrValueTooLong, len(s))
	}
	if err := w.WriteUint16(uint16(len(s))); err != nil {
		return err
	}
	if _, err := w.Write([]byte(s)); err != nil {
		return err
	}
	if len(s)%2 == 1 {
		return w.WriteUint8(0)
	}
	return nil
}

// encodeShortString writes a SHORT_STRING: USINT length and characters.
func encodeShortString(w *Writer, s string) error {
	if len(s) > math.MaxUint8 {
		return fmt.Errorf("%w: SHORT_STRING of %d bytes", ErrValueTooLong, len(s))
	}
	if err := w.WriteUint8(uint8(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

// Decode reads a value of type t from data into the value referenced by v
// and returns the number of bytes consumed. Unsupported types return -1
// with ErrUnsupportedType. When data is too short the value is left
// unchanged and the error wraps ErrShortBuffer.
func Decode(data []byte, t DataType, v any) (int, error) {
	if !t.Decodable() {
		return -1, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	if err := CheckValue(t, v); err != nil {
		return 0, err
	}

	r := &reader{data: data}
	switch p := v.(type) {
	case *bool:
		b, err := r.u8()
		if err != nil {
			return 0, err
		}
		*p = b != 0
	case *int8:
		b, err := r.u8()
		if err != nil {
			return 0, err
		}
		*p = int8(b)
	case *uint8:
		b, err := r.u8()
		if err != nil {
			return 0, err
		}
		*p = b
	case *int16:
		u, err := r.u16()
		if err != nil {
			return 0, err
		}
		*p = int16(u)
	case *uint16:
		u, err := r.u16()
		if err != nil {
			return 0, err
		}
		*p = u
	case *int32:
		u, err := r.u32()
		if err != nil {
			return 0, err
		}
		*p = int32(u)
	case *uint32:
		u, err := r.u32()
		if err != nil {
			return 0, err
		}
		*p = u
	case *float32:
		u, err := r.u32()
		if err != nil {
			return 0, err
		}
		*p = math.Float32frombits(u)
	case *int64:
		u, err := r.u64()
		if err != nil {
			return 0, err
		}
		*p = int64(u)
	case *uint64:
		u, err := r.u64()
		if err != nil {
			return 0, err
		}
		*p = u
	case *float64:
		u, err := r.u64()
		if err != nil {
			return 0, err
		}
		*p = math.Float64frombits(u)
	case *string:
		var (
			s   string
			err error
		)
		if t == TypeShortString {
			s, err = decodeShortString(r)
		} else {
			s, err = decodeString(r)
		}
		if err != nil {
			return 0, err
		}
		*p = s
	}
	return r.off, nil
}

func decodeString(r *reader) (string, error) {
	n, err := r.u16()
	if err != nil {
		return "", err
	}
	b, err := r.bytes(int(n))
	if err != nil {
		return "", err
	}
	if n%2 == 1 {
		if _, err := r.u8(); err != nil {
			return "", fmt.Errorf("STRING pad byte: %w", err)
		}
	}
	return string(b), nil
}

func decodeShortString(r *reader) (string, error) {
	n, err := r.u8()
	if err != nil {
		return "", err
	}
	b, err := r.bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Measure returns the number of bytes a value of type t occupies at the
// start of data, without decoding it. It fails like Decode does.
func Measure(data []byte, t DataType) (int, error) {
	if !t.Decodable() {
		return -1, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	r := &reader{data: data}
	switch t {
	case TypeString:
		n, err := r.u16()
		if err != nil {
			return 0, err
		}
		size := int(n) + int(n)%2
		if err := r.need(size); err != nil {
			return 0, err
		}
		return 2 + size, nil
	case TypeShortString:
		n, err := r.u8()
		if err != nil {
			return 0, err
		}
		if err := r.need(int(n)); err != nil {
			return 0, err
		}
		return 1 + int(n), nil
	default:
		if err := r.need(t.Size()); err != nil {
			return 0, err
		}
		return t.Size(), nil
	}
}
