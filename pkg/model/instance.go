package model

import (
	"fmt"

	"github.com/cip-stack/cip-go/pkg/wire"
)

// Scope selects the class-level or instance-level shape of a class.
type Scope uint8

const (
	// ScopeInstance addresses instances 1..n.
	ScopeInstance Scope = iota

	// ScopeClass addresses the class itself as instance 0.
	ScopeClass
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeInstance:
		return "instance"
	case ScopeClass:
		return "class"
	default:
		return fmt.Sprintf("Scope(%d)", uint8(s))
	}
}

// Instance is one addressable object of a class. The class object
// (instance 0) is an Instance in ScopeClass.
type Instance struct {
	number     uint16
	class      *Class
	scope      Scope
	attributes []Attribute
}

func newInstance(c *Class, number uint16, scope Scope) *Instance {
	return &Instance{
		number:     number,
		class:      c,
		scope:      scope,
		attributes: make([]Attribute, c.shape(scope).attributeCapacity),
	}
}

// Number returns the instance number.
func (i *Instance) Number() uint16 {
	return i.number
}

// Class returns the owning class.
func (i *Instance) Class() *Class {
	return i.class
}

// Scope returns ScopeClass for the class object and ScopeInstance otherwise.
func (i *Instance) Scope() Scope {
	return i.scope
}

// IsClassObject returns true for instance 0.
func (i *Instance) IsClassObject() bool {
	return i.scope == ScopeClass
}

func (i *Instance) shape() *scopeShape {
	return i.class.shape(i.scope)
}

// InsertAttribute places an attribute in the first free slot.
// It fails with ErrAttributeCapacity when all slots are taken, with
// ErrAttributeExists when the number is already used and with
// wire.ErrTypeMismatch when value cannot hold dataType.
func (i *Instance) InsertAttribute(number uint16, dataType wire.DataType, value any, flags AttributeFlags) error {
	if err := wire.CheckValue(dataType, value); err != nil {
		return fmt.Errorf("class 0x%02X instance %d attribute %d: %w", i.class.id, i.number, number, err)
	}
	if i.Attribute(number) != nil {
		return fmt.Errorf("%w: class 0x%02X instance %d attribute %d",
			ErrAttributeExists, i.class.id, i.number, number)
	}

	for n := range i.attributes {
		slot := &i.attributes[n]
		if !slot.free() {
			continue
		}
		*slot = Attribute{Number: number, Type: dataType, Flags: flags, Value: value}
		if s := i.shape(); number > s.highestAttribute {
			s.highestAttribute = number
		}
		return nil
	}
	return fmt.Errorf("%w: class 0x%02X instance %d has %d slots, cannot add attribute %d",
		ErrAttributeCapacity, i.class.id, i.number, len(i.attributes), number)
}

// Attribute returns the attribute with the given number, or nil.
func (i *Instance) Attribute(number uint16) *Attribute {
	for n := range i.attributes {
		a := &i.attributes[n]
		if !a.free() && a.Number == number {
			return a
		}
	}
	return nil
}

// Attributes returns the assigned attribute slots in slot order.
func (i *Instance) Attributes() []*Attribute {
	out := make([]*Attribute, 0, len(i.attributes))
	for n := range i.attributes {
		if !i.attributes[n].free() {
			out = append(out, &i.attributes[n])
		}
	}
	return out
}

// FreeSlots returns the number of unassigned attribute slots.
func (i *Instance) FreeSlots() int {
	free := 0
	for n := range i.attributes {
		if i.attributes[n].free() {
			free++
		}
	}
	return free
}

// Services returns the services available to this instance.
func (i *Instance) Services() []Service {
	return i.shape().services.list()
}

// FindService returns the service with the given number, or nil.
func (i *Instance) FindService(number wire.Service) *Service {
	return i.shape().services.find(number)
}
