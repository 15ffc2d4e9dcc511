package profile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cip-stack/cip-go/pkg/model"
	"github.com/cip-stack/cip-go/pkg/wire"
)

// Error is a profile error tied to a YAML line.
type Error struct {
	Line    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func lineError(line int, err error, format string, args ...any) error {
	return &Error{Line: line, Message: fmt.Sprintf(format, args...), Err: err}
}

// Access names accepted in an attribute's access list.
const (
	AccessGetSingle = "get_single"
	AccessGetAll    = "get_all"
	AccessSet       = "set"
)

// StackSettings configures the stack that serves the profile.
type StackSettings struct {
	// ReplyBufferSize bounds reply payloads. Zero keeps the router default.
	ReplyBufferSize int `yaml:"reply_buffer_size"`

	// ConnectionIDSeed seeds connection IDs. Zero derives a random seed.
	ConnectionIDSeed uint32 `yaml:"connection_id_seed"`
}

// Profile is a declarative device description.
type Profile struct {
	Name    string        `yaml:"name"`
	Stack   StackSettings `yaml:"stack"`
	Classes []*ClassDef   `yaml:"classes"`
}

// ClassDef declares one class.
type ClassDef struct {
	ID       uint16 `yaml:"id"`
	Name     string `yaml:"name"`
	Revision uint16 `yaml:"revision"`

	// Attributes are class attributes beyond the seven standard ones.
	Attributes []*AttributeDef `yaml:"class_attributes"`
	Instances  []*InstanceDef  `yaml:"instances"`

	Line int `yaml:"-"`
}

// InstanceDef declares one instance and its attributes.
type InstanceDef struct {
	Number     uint16          `yaml:"number"`
	Attributes []*AttributeDef `yaml:"attributes"`

	Line int `yaml:"-"`
}

// AttributeDef declares one attribute.
type AttributeDef struct {
	Number uint16    `yaml:"number"`
	Name   string    `yaml:"name"`
	Type   string    `yaml:"type"`
	Access []string  `yaml:"access"`
	Value  yaml.Node `yaml:"value"`

	Line int `yaml:"-"`

	dataType wire.DataType
	flags    model.AttributeFlags
	value    any
}

// DataType returns the resolved attribute type.
func (a *AttributeDef) DataType() wire.DataType {
	return a.dataType
}

// Flags returns the resolved access flags.
func (a *AttributeDef) Flags() model.AttributeFlags {
	return a.flags
}

// StoredValue returns the pointer that backs the attribute once built.
func (a *AttributeDef) StoredValue() any {
	return a.value
}

// UnmarshalYAML records the line of the class.
func (c *ClassDef) UnmarshalYAML(node *yaml.Node) error {
	type plain ClassDef
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.Line = node.Line
	return nil
}

// UnmarshalYAML records the line of the instance.
func (i *InstanceDef) UnmarshalYAML(node *yaml.Node) error {
	type plain InstanceDef
	if err := node.Decode((*plain)(i)); err != nil {
		return err
	}
	i.Line = node.Line
	return nil
}

// UnmarshalYAML records the line of the attribute.
func (a *AttributeDef) UnmarshalYAML(node *yaml.Node) error {
	type plain AttributeDef
	if err := node.Decode((*plain)(a)); err != nil {
		return err
	}
	a.Line = node.Line
	return nil
}

// Load reads and parses a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse parses and validates a profile. Attribute values are converted
// to their Go storage here, so Build only fails on registry conflicts.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.resolve(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) resolve() error {
	if p.Stack.ReplyBufferSize < 0 {
		return &Error{Message: "stack.reply_buffer_size must not be negative"}
	}

	seen := make(map[uint16]int)
	for _, c := range p.Classes {
		if c.ID == 0 {
			return lineError(c.Line, nil, "class id is required")
		}
		if prev, ok := seen[c.ID]; ok {
			return lineError(c.Line, nil, "class 0x%02X already declared on line %d", c.ID, prev)
		}
		seen[c.ID] = c.Line
		if c.Name == "" {
			c.Name = wire.ClassNames[c.ID]
		}
		if c.Revision == 0 {
			c.Revision = 1
		}

		if err := resolveAttributes(c.Attributes, model.StandardClassAttributes); err != nil {
			return err
		}
		instances := make(map[uint16]int)
		for _, inst := range c.Instances {
			if inst.Number == 0 {
				return lineError(inst.Line, model.ErrInstanceNumber, "class 0x%02X", c.ID)
			}
			if prev, ok := instances[inst.Number]; ok {
				return lineError(inst.Line, nil, "instance %d already declared on line %d", inst.Number, prev)
			}
			instances[inst.Number] = inst.Line
			if err := resolveAttributes(inst.Attributes, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveAttributes checks numbers, types and access lists and converts
// every value. Numbers up to reserved belong to the standard attributes.
func resolveAttributes(attrs []*AttributeDef, reserved uint16) error {
	seen := make(map[uint16]int)
	for _, a := range attrs {
		if a.Number == 0 {
			return lineError(a.Line, nil, "attribute number is required")
		}
		if a.Number <= reserved {
			return lineError(a.Line, model.ErrAttributeExists, "attribute %d is a standard class attribute", a.Number)
		}
		if prev, ok := seen[a.Number]; ok {
			return lineError(a.Line, model.ErrAttributeExists, "attribute %d already declared on line %d", a.Number, prev)
		}
		seen[a.Number] = a.Line

		t, err := wire.ParseDataType(a.Type)
		if err != nil {
			return lineError(a.Line, err, "attribute %d", a.Number)
		}
		a.dataType = t

		flags, err := parseAccess(a.Access)
		if err != nil {
			return lineError(a.Line, err, "attribute %d", a.Number)
		}
		if flags&model.GetableAll != 0 && a.Number > 31 {
			return lineError(a.Line, nil, "attribute %d cannot be part of get_all", a.Number)
		}
		if flags&model.Setable != 0 && !t.Decodable() {
			return lineError(a.Line, nil, "attribute %d: %s values cannot be set", a.Number, t)
		}
		a.flags = flags

		v, err := newValue(t, &a.Value)
		if err != nil {
			line := a.Value.Line
			if line == 0 {
				line = a.Line
			}
			return lineError(line, err, "attribute %d value", a.Number)
		}
		a.value = v
	}
	return nil
}

func parseAccess(access []string) (model.AttributeFlags, error) {
	if len(access) == 0 {
		return model.GetableSingle, nil
	}
	var flags model.AttributeFlags
	for _, name := range access {
		switch name {
		case AccessGetSingle:
			flags |= model.GetableSingle
		case AccessGetAll:
			flags |= model.GetableAll
		case AccessSet:
			flags |= model.Setable
		default:
			return 0, fmt.Errorf("unknown access %q", name)
		}
	}
	return flags, nil
}

// Build creates every declared class in registry. Class and instance
// attributes are backed by storage owned by the profile, so a profile is
// built into at most one registry.
func (p *Profile) Build(registry *model.Registry) error {
	for _, c := range p.Classes {
		if err := c.build(registry); err != nil {
			var perr *Error
			if errors.As(err, &perr) {
				return err
			}
			return lineError(c.Line, err, "class 0x%02X", c.ID)
		}
	}
	return nil
}

// Init builds the profile into registry so it can serve as a stack
// object initializer.
func (p *Profile) Init(ctx context.Context, registry *model.Registry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.Build(registry)
}

func (c *ClassDef) build(registry *model.Registry) error {
	spec := model.ClassSpec{
		ID:              c.ID,
		Name:            c.Name,
		Revision:        c.Revision,
		ClassAttributes: len(c.Attributes),
		ClassGetAllMask: getAllMask(c.Attributes),
	}
	if settable(c.Attributes) {
		spec.ClassServices = 1
	}
	var instanceSettable bool
	for _, inst := range c.Instances {
		if n := len(inst.Attributes); n > spec.InstanceAttributes {
			spec.InstanceAttributes = n
		}
		spec.InstanceGetAllMask |= getAllMask(inst.Attributes)
		instanceSettable = instanceSettable || settable(inst.Attributes)
	}
	if instanceSettable {
		spec.InstanceServices = 1
	}

	class, err := registry.CreateClass(spec)
	if err != nil {
		return err
	}
	if spec.ClassServices > 0 {
		if err := class.InsertService(model.ScopeClass, wire.ServiceSetAttributeSingle,
			model.HandlerFunc(model.SetAttributeSingle), "SetAttributeSingle"); err != nil {
			return err
		}
	}
	if instanceSettable {
		if err := class.InsertService(model.ScopeInstance, wire.ServiceSetAttributeSingle,
			model.HandlerFunc(model.SetAttributeSingle), "SetAttributeSingle"); err != nil {
			return err
		}
	}
	if err := insertAttributes(class.ClassObject(), c.Attributes); err != nil {
		return err
	}

	for _, def := range c.Instances {
		inst, err := class.AddInstance(def.Number)
		if err != nil {
			return lineError(def.Line, err, "instance %d", def.Number)
		}
		if err := insertAttributes(inst, def.Attributes); err != nil {
			return err
		}
	}
	return nil
}

func insertAttributes(inst *model.Instance, attrs []*AttributeDef) error {
	for _, a := range attrs {
		if err := inst.InsertAttribute(a.Number, a.dataType, a.value, a.flags); err != nil {
			return lineError(a.Line, err, "")
		}
	}
	return nil
}

func getAllMask(attrs []*AttributeDef) uint32 {
	var mask uint32
	for _, a := range attrs {
		if a.flags&model.GetableAll != 0 {
			mask |= 1 << a.Number
		}
	}
	return mask
}

func settable(attrs []*AttributeDef) bool {
	for _, a := range attrs {
		if a.flags&model.Setable != 0 {
			return true
		}
	}
	return false
}
