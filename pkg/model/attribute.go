package model

import (
	"strings"

	"github.com/cip-stack/cip-go/pkg/wire"
)

// AttributeFlags controls how an attribute can be accessed.
type AttributeFlags uint8

const (
	// GetableAll includes the attribute in Get_Attributes_All replies.
	GetableAll AttributeFlags = 0x01

	// GetableSingle allows Get_Attribute_Single.
	GetableSingle AttributeFlags = 0x02

	// Setable allows Set_Attribute_Single.
	Setable AttributeFlags = 0x04

	// GetableSingleAndAll is the usual flag set for readable attributes.
	GetableSingleAndAll = GetableAll | GetableSingle
)

// String returns the flags as a "|" separated list.
func (f AttributeFlags) String() string {
	var parts []string
	if f&GetableSingle != 0 {
		parts = append(parts, "get_single")
	}
	if f&GetableAll != 0 {
		parts = append(parts, "get_all")
	}
	if f&Setable != 0 {
		parts = append(parts, "set")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Attribute is one attribute slot of an instance.
type Attribute struct {
	// Number is the attribute number within the instance.
	Number uint16

	// Type selects the wire encoding of Value.
	Type wire.DataType

	// Flags controls visibility and write access.
	Flags AttributeFlags

	// Value references the backing value. A nil Value marks a free slot.
	Value any
}

// free reports whether the slot is still unassigned.
func (a *Attribute) free() bool {
	return a.Value == nil
}

// Encode appends the attribute value to w.
func (a *Attribute) Encode(w *wire.Writer) (int, error) {
	return wire.Encode(w, a.Type, a.Value)
}
