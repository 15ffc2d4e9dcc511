package wire

import (
	"fmt"
	"strings"
)

// DataType is the type tag of an attribute value.
type DataType uint8

// Elementary data types.
const (
	TypeAny         DataType = 0x00
	TypeBool        DataType = 0xC1
	TypeSint        DataType = 0xC2
	TypeInt         DataType = 0xC3
	TypeDint        DataType = 0xC4
	TypeLint        DataType = 0xC5
	TypeUsint       DataType = 0xC6
	TypeUint        DataType = 0xC7
	TypeUdint       DataType = 0xC8
	TypeUlint       DataType = 0xC9
	TypeReal        DataType = 0xCA
	TypeLreal       DataType = 0xCB
	TypeStime       DataType = 0xCC
	TypeDate        DataType = 0xCD
	TypeTimeOfDay   DataType = 0xCE
	TypeDateAndTime DataType = 0xCF
	TypeString      DataType = 0xD0
	TypeByte        DataType = 0xD1
	TypeWord        DataType = 0xD2
	TypeDword       DataType = 0xD3
	TypeLword       DataType = 0xD4
	TypeString2     DataType = 0xD5
	TypeFtime       DataType = 0xD6
	TypeLtime       DataType = 0xD7
	TypeItime       DataType = 0xD8
	TypeStringN     DataType = 0xD9
	TypeShortString DataType = 0xDA
	TypeTime        DataType = 0xDB
	TypeEpath       DataType = 0xDC
	TypeEngUnit     DataType = 0xDD
	TypeStringI     DataType = 0xDE
)

// Structured types used by the standard objects. These codes never appear
// on the wire; they only select an encoding.
const (
	// TypeRevision is a USINT major followed by a USINT minor revision.
	TypeRevision DataType = 0xA0

	// TypeNetworkConfig is the TCP/IP interface configuration block:
	// five UDINT addresses followed by a STRING domain name.
	TypeNetworkConfig DataType = 0xA1

	// TypeMAC is an array of six USINT, used for physical addresses.
	TypeMAC DataType = 0xA2

	// TypeMemberList is a member list. It has no encoding yet.
	TypeMemberList DataType = 0xA3

	// TypeByteArray is a raw byte sequence without a length prefix.
	TypeByteArray DataType = 0xA4

	// TypeUint6 is an array of six UINT.
	TypeUint6 DataType = 0xF0
)

var dataTypeNames = map[DataType]string{
	TypeAny:           "ANY",
	TypeBool:          "BOOL",
	TypeSint:          "SINT",
	TypeInt:           "INT",
	TypeDint:          "DINT",
	TypeLint:          "LINT",
	TypeUsint:         "USINT",
	TypeUint:          "UINT",
	TypeUdint:         "UDINT",
	TypeUlint:         "ULINT",
	TypeReal:          "REAL",
	TypeLreal:         "LREAL",
	TypeStime:         "STIME",
	TypeDate:          "DATE",
	TypeTimeOfDay:     "TIME_OF_DAY",
	TypeDateAndTime:   "DATE_AND_TIME",
	TypeString:        "STRING",
	TypeByte:          "BYTE",
	TypeWord:          "WORD",
	TypeDword:         "DWORD",
	TypeLword:         "LWORD",
	TypeString2:       "STRING2",
	TypeFtime:         "FTIME",
	TypeLtime:         "LTIME",
	TypeItime:         "ITIME",
	TypeStringN:       "STRINGN",
	TypeShortString:   "SHORT_STRING",
	TypeTime:          "TIME",
	TypeEpath:         "EPATH",
	TypeEngUnit:       "ENGUNIT",
	TypeStringI:       "STRINGI",
	TypeRevision:      "REVISION",
	TypeNetworkConfig: "NETWORK_CONFIG",
	TypeMAC:           "MAC",
	TypeMemberList:    "MEMBER_LIST",
	TypeByteArray:     "BYTE_ARRAY",
	TypeUint6:         "UINT6",
}

// String returns the IEC 61131-3 style name of the type.
func (t DataType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TYPE(0x%02X)", uint8(t))
}

// ParseDataType resolves a type name such as "UINT" or "short_string".
func ParseDataType(name string) (DataType, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for t, n := range dataTypeNames {
		if n == upper {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown data type %q", name)
}

// Size returns the encoded size of fixed-size types and 0 for everything
// whose size depends on the value.
func (t DataType) Size() int {
	switch t {
	case TypeBool, TypeSint, TypeUsint, TypeByte:
		return 1
	case TypeInt, TypeUint, TypeWord, TypeRevision:
		return 2
	case TypeDint, TypeUdint, TypeDword, TypeReal:
		return 4
	case TypeLint, TypeUlint, TypeLword, TypeLreal:
		return 8
	case TypeMAC:
		return 6
	case TypeUint6:
		return 12
	default:
		return 0
	}
}

// Serializable reports whether Encode produces any bytes for the type.
func (t DataType) Serializable() bool {
	switch t {
	case TypeBool, TypeSint, TypeUsint, TypeByte,
		TypeInt, TypeUint, TypeWord,
		TypeDint, TypeUdint, TypeDword, TypeReal,
		TypeLint, TypeUlint, TypeLword, TypeLreal,
		TypeString, TypeShortString, TypeEpath,
		TypeRevision, TypeNetworkConfig, TypeMAC, TypeByteArray, TypeUint6:
		return true
	default:
		return false
	}
}

// Decodable reports whether Decode supports the type.
func (t DataType) Decodable() bool {
	switch t {
	case TypeBool, TypeSint, TypeUsint, TypeByte,
		TypeInt, TypeUint, TypeWord,
		TypeDint, TypeUdint, TypeDword, TypeReal,
		TypeLint, TypeUlint, TypeLword, TypeLreal,
		TypeString, TypeShortString:
		return true
	default:
		return false
	}
}
