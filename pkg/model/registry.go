package model

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Configuration errors. They indicate a class declared with the wrong shape
// and should abort stack initialization.
var (
	ErrClassExists       = errors.New("class already registered")
	ErrAttributeCapacity = errors.New("attribute capacity exceeded")
	ErrAttributeExists   = errors.New("attribute already registered")
	ErrServiceCapacity   = errors.New("service capacity exceeded")
	ErrInstanceNumber    = errors.New("invalid instance number")
)

// AssemblyHook is called before an assembly's data attribute is encoded,
// so the owner can refresh the bytes.
type AssemblyHook interface {
	BeforeAssemblyDataSend(inst *Instance)
}

// AssemblyHookFunc adapts a function to AssemblyHook.
type AssemblyHookFunc func(inst *Instance)

// BeforeAssemblyDataSend calls f.
func (f AssemblyHookFunc) BeforeAssemblyDataSend(inst *Instance) { f(inst) }

// SetObserver is notified after Set_Attribute_Single changed a value.
type SetObserver interface {
	AttributeSet(inst *Instance, attr *Attribute)
}

// Registry owns all classes of a device.
type Registry struct {
	logger *slog.Logger

	classes []*Class
	byID    map[uint16]*Class

	assemblyHook AssemblyHook
	setObserver  SetObserver
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		logger: logger,
		byID:   make(map[uint16]*Class),
	}
}

// SetAssemblyHook installs the hook called before assembly data is encoded.
func (r *Registry) SetAssemblyHook(h AssemblyHook) {
	r.assemblyHook = h
}

// SetObserver installs the observer notified of attribute writes.
func (r *Registry) SetObserver(o SetObserver) {
	r.setObserver = o
}

// CreateClass registers a class with its standard class attributes and
// get services and creates spec.Instances instances. It fails with
// ErrClassExists if the class code is taken; the registry is then unchanged.
func (r *Registry) CreateClass(spec ClassSpec) (*Class, error) {
	if _, exists := r.byID[spec.ID]; exists {
		return nil, fmt.Errorf("%w: 0x%02X (%s)", ErrClassExists, spec.ID, spec.Name)
	}

	c := &Class{
		registry:      r,
		id:            spec.ID,
		name:          spec.Name,
		revision:      spec.Revision,
		instanceScope: newScopeShape(spec.InstanceAttributes, spec.InstanceGetAllMask, spec.InstanceServices),
		classScope:    newScopeShape(spec.ClassAttributes+StandardClassAttributes, spec.ClassGetAllMask, spec.ClassServices),
	}
	c.classObject = newInstance(c, 0, ScopeClass)

	if err := c.registerStandard(); err != nil {
		return nil, fmt.Errorf("create class 0x%02X: %w", spec.ID, err)
	}
	if _, err := c.AddInstances(spec.Instances); err != nil {
		return nil, fmt.Errorf("create class 0x%02X: %w", spec.ID, err)
	}

	r.classes = append(r.classes, c)
	r.byID[c.id] = c

	r.logger.Debug("class created",
		"class", fmt.Sprintf("0x%02X", c.id),
		"name", c.name,
		"instances", c.instanceCount)
	return c, nil
}

// Class returns the class with the given code, or nil.
func (r *Registry) Class(id uint16) *Class {
	return r.byID[id]
}

// Classes returns all classes in registration order.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, len(r.classes))
	copy(out, r.classes)
	return out
}

// DeleteAllClasses releases every class together with its instances.
func (r *Registry) DeleteAllClasses() {
	n := len(r.classes)
	for _, c := range r.classes {
		c.instances = nil
		c.classObject = nil
		c.registry = nil
	}
	r.classes = nil
	r.byID = make(map[uint16]*Class)
	r.logger.Debug("classes deleted", "count", n)
}
