package model

import (
	"fmt"
	"math"

	"github.com/cip-stack/cip-go/pkg/wire"
)

// StandardClassAttributes is the number of attributes CreateClass adds to
// every class scope.
const StandardClassAttributes = 7

// Standard class attribute numbers.
const (
	ClassAttrRevision              uint16 = 1
	ClassAttrMaxInstance           uint16 = 2
	ClassAttrNumberOfInstances     uint16 = 3
	ClassAttrOptionalAttributeList uint16 = 4
	ClassAttrOptionalServiceList   uint16 = 5
	ClassAttrMaxClassAttribute     uint16 = 6
	ClassAttrMaxInstanceAttribute  uint16 = 7
)

// ClassSpec declares the shape of a class.
type ClassSpec struct {
	ID       uint16
	Name     string
	Revision uint16

	// InstanceAttributes is the number of attribute slots per instance.
	InstanceAttributes int

	// InstanceGetAllMask selects instance attributes 0..31 for Get_Attributes_All.
	InstanceGetAllMask uint32

	// InstanceServices is the number of instance services beyond the
	// standard get services.
	InstanceServices int

	// ClassAttributes is the number of class attributes beyond the seven
	// standard ones.
	ClassAttributes int

	// ClassGetAllMask selects class attributes 0..31 for Get_Attributes_All.
	ClassGetAllMask uint32

	// ClassServices is the number of class services beyond the standard
	// get services.
	ClassServices int

	// Instances is the number of instances to create up front.
	Instances int
}

// scopeShape holds the per-scope layout of a class.
type scopeShape struct {
	attributeCapacity int
	getAllMask        uint32
	highestAttribute  uint16
	services          *serviceTable
}

func newScopeShape(attributes int, getAllMask uint32, services int) scopeShape {
	reserved := 1
	if getAllMask != 0 {
		reserved = 2
	}
	return scopeShape{
		attributeCapacity: attributes,
		getAllMask:        getAllMask,
		services:          newServiceTable(services + reserved),
	}
}

// Class is a registered object class.
type Class struct {
	registry *Registry

	id       uint16
	name     string
	revision uint16

	instanceScope scopeShape
	classScope    scopeShape

	classObject     *Instance
	instances       []*Instance
	instanceCount   uint16
	highestInstance uint16

	// backs the always-zero standard attributes 4 and 5
	zero uint16
}

// ID returns the class code.
func (c *Class) ID() uint16 {
	return c.id
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Revision returns the class revision.
func (c *Class) Revision() uint16 {
	return c.revision
}

// Registry returns the registry the class belongs to.
func (c *Class) Registry() *Registry {
	return c.registry
}

// InstanceCount returns the number of instances.
func (c *Class) InstanceCount() uint16 {
	return c.instanceCount
}

// HighestInstance returns the highest instance number in use.
func (c *Class) HighestInstance() uint16 {
	return c.highestInstance
}

// ClassObject returns instance 0.
func (c *Class) ClassObject() *Instance {
	return c.classObject
}

// Instances returns the instances in creation order.
func (c *Class) Instances() []*Instance {
	out := make([]*Instance, len(c.instances))
	copy(out, c.instances)
	return out
}

func (c *Class) shape(s Scope) *scopeShape {
	if s == ScopeClass {
		return &c.classScope
	}
	return &c.instanceScope
}

// AttributeCapacity returns the number of attribute slots of the scope.
func (c *Class) AttributeCapacity(s Scope) int {
	return c.shape(s).attributeCapacity
}

// GetAllMask returns the Get_Attributes_All mask of the scope.
func (c *Class) GetAllMask(s Scope) uint32 {
	return c.shape(s).getAllMask
}

// HighestAttribute returns the highest attribute number registered in the scope.
func (c *Class) HighestAttribute(s Scope) uint16 {
	return c.shape(s).highestAttribute
}

// Services returns the service table of the scope.
func (c *Class) Services(s Scope) []Service {
	return c.shape(s).services.list()
}

// InsertService registers a handler for a service number in the scope.
// An existing entry with the same number is replaced.
func (c *Class) InsertService(s Scope, number wire.Service, h Handler, name string) error {
	if err := c.shape(s).services.insert(number, h, name); err != nil {
		return fmt.Errorf("class 0x%02X %s scope: %w", c.id, s, err)
	}
	return nil
}

// registerStandard adds the standard class attributes and get services.
func (c *Class) registerStandard() error {
	obj := c.classObject
	attrs := []struct {
		number uint16
		value  *uint16
		flags  AttributeFlags
	}{
		{ClassAttrRevision, &c.revision, GetableSingleAndAll},
		{ClassAttrMaxInstance, &c.highestInstance, GetableSingleAndAll},
		{ClassAttrNumberOfInstances, &c.instanceCount, GetableSingleAndAll},
		{ClassAttrOptionalAttributeList, &c.zero, GetableAll},
		{ClassAttrOptionalServiceList, &c.zero, GetableAll},
		{ClassAttrMaxClassAttribute, &c.classScope.highestAttribute, GetableSingleAndAll},
		{ClassAttrMaxInstanceAttribute, &c.instanceScope.highestAttribute, GetableSingleAndAll},
	}
	for _, a := range attrs {
		if err := obj.InsertAttribute(a.number, wire.TypeUint, a.value, a.flags); err != nil {
			return err
		}
	}

	for _, s := range []Scope{ScopeClass, ScopeInstance} {
		if err := c.InsertService(s, wire.ServiceGetAttributeSingle, HandlerFunc(GetAttributeSingle), "GetAttributeSingle"); err != nil {
			return err
		}
		if c.shape(s).getAllMask == 0 {
			continue
		}
		if err := c.InsertService(s, wire.ServiceGetAttributeAll, HandlerFunc(GetAttributeAll), "GetAttributeAll"); err != nil {
			return err
		}
	}
	return nil
}

// AddInstances appends count instances numbered from one past the highest
// existing instance number and returns the first of them. A count of zero
// adds nothing and returns nil.
func (c *Class) AddInstances(count int) (*Instance, error) {
	if count <= 0 {
		return nil, nil
	}

	var highest uint16
	for _, inst := range c.instances {
		if inst.number > highest {
			highest = inst.number
		}
	}
	if int(highest)+count > math.MaxUint16 {
		return nil, fmt.Errorf("%w: class 0x%02X cannot number %d more instances after %d",
			ErrInstanceNumber, c.id, count, highest)
	}

	var first *Instance
	for n := 1; n <= count; n++ {
		inst := newInstance(c, highest+uint16(n), ScopeInstance)
		c.instances = append(c.instances, inst)
		if first == nil {
			first = inst
		}
	}
	c.instanceCount += uint16(count)
	c.highestInstance = highest + uint16(count)
	return first, nil
}

// AddInstance returns the instance with the given number, creating it
// when it does not exist yet.
func (c *Class) AddInstance(number uint16) (*Instance, error) {
	if number == 0 {
		return nil, fmt.Errorf("%w: class 0x%02X instance 0 is the class object", ErrInstanceNumber, c.id)
	}
	if inst := c.FindInstance(number); inst != nil {
		return inst, nil
	}

	inst := newInstance(c, number, ScopeInstance)
	c.instances = append(c.instances, inst)
	c.instanceCount++
	if number > c.highestInstance {
		c.highestInstance = number
	}
	return inst, nil
}

// FindInstance returns the instance with the given number, or nil.
// Number 0 returns the class object.
func (c *Class) FindInstance(number uint16) *Instance {
	if number == 0 {
		return c.classObject
	}
	for _, inst := range c.instances {
		if inst.number == number {
			return inst
		}
	}
	return nil
}
