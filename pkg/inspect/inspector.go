package inspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cip-stack/cip-go/pkg/model"
)

// Inspector errors.
var (
	ErrClassNotFound     = errors.New("class not found")
	ErrInstanceNotFound  = errors.New("instance not found")
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrPartialPath       = errors.New("path has no attribute")
)

// Inspector provides inspection of a local registry.
type Inspector struct {
	registry *model.Registry
}

// NewInspector creates a new Inspector for the given registry.
func NewInspector(registry *model.Registry) *Inspector {
	return &Inspector{registry: registry}
}

// Registry returns the underlying registry.
func (i *Inspector) Registry() *model.Registry {
	return i.registry
}

// ClassInfo represents class information for display.
type ClassInfo struct {
	ID        uint16
	Name      string
	Revision  uint16
	Class     InstanceInfo
	Instances []InstanceInfo
}

// InstanceInfo represents one instance for display.
type InstanceInfo struct {
	Number     uint16
	Services   []model.Service
	Attributes []*model.Attribute
}

// InspectRegistry returns every class in registration order.
func (i *Inspector) InspectRegistry() []ClassInfo {
	var out []ClassInfo
	for _, c := range i.registry.Classes() {
		out = append(out, inspectClass(c))
	}
	return out
}

// InspectClass returns information about a specific class.
func (i *Inspector) InspectClass(id uint16) (*ClassInfo, error) {
	c := i.registry.Class(id)
	if c == nil {
		return nil, fmt.Errorf("%w: 0x%02X", ErrClassNotFound, id)
	}
	info := inspectClass(c)
	return &info, nil
}

func inspectClass(c *model.Class) ClassInfo {
	info := ClassInfo{
		ID:       c.ID(),
		Name:     c.Name(),
		Revision: c.Revision(),
		Class:    inspectInstance(c.ClassObject()),
	}
	for _, inst := range c.Instances() {
		info.Instances = append(info.Instances, inspectInstance(inst))
	}
	return info
}

func inspectInstance(inst *model.Instance) InstanceInfo {
	return InstanceInfo{
		Number:     inst.Number(),
		Services:   inst.Services(),
		Attributes: inst.Attributes(),
	}
}

// ReadAttribute looks an attribute up by path.
func (i *Inspector) ReadAttribute(path *Path) (*model.Attribute, error) {
	if path.IsPartial {
		return nil, ErrPartialPath
	}
	c := i.registry.Class(path.ClassID)
	if c == nil {
		return nil, fmt.Errorf("%w: 0x%02X", ErrClassNotFound, path.ClassID)
	}
	inst := c.FindInstance(path.InstanceNumber)
	if inst == nil {
		return nil, fmt.Errorf("%w: %s", ErrInstanceNotFound, path)
	}
	attr := inst.Attribute(path.AttributeNumber)
	if attr == nil {
		return nil, fmt.Errorf("%w: %s", ErrAttributeNotFound, path)
	}
	return attr, nil
}

// FormatRegistry formats every class for display.
func (i *Inspector) FormatRegistry(formatter *Formatter) string {
	if formatter == nil {
		formatter = NewFormatter()
	}
	var sb strings.Builder
	for _, info := range i.InspectRegistry() {
		sb.WriteString(i.formatClass(&info, formatter, 0))
	}
	return sb.String()
}

// FormatClass formats a class with its instances for display.
func (i *Inspector) FormatClass(info *ClassInfo, formatter *Formatter) string {
	if formatter == nil {
		formatter = NewFormatter()
	}
	return i.formatClass(info, formatter, 0)
}

// FormatInstance formats one instance of a class. Instance 0 is the class
// object.
func (i *Inspector) FormatInstance(info *ClassInfo, number uint16, formatter *Formatter) (string, error) {
	if formatter == nil {
		formatter = NewFormatter()
	}
	if number == 0 {
		return i.formatInstance(info.ID, &info.Class, "class", formatter, 0), nil
	}
	for n := range info.Instances {
		if inst := &info.Instances[n]; inst.Number == number {
			return i.formatInstance(info.ID, inst, fmt.Sprintf("instance %d", number), formatter, 0), nil
		}
	}
	return "", fmt.Errorf("%w: 0x%02X/%d", ErrInstanceNotFound, info.ID, number)
}

func (i *Inspector) formatClass(info *ClassInfo, f *Formatter, depth int) string {
	var sb strings.Builder

	header := fmt.Sprintf("0x%02X %s (Rev: %d, Instances: %d)", info.ID, info.Name, info.Revision, len(info.Instances))
	sb.WriteString(f.Indent(depth, header) + "\n")

	sb.WriteString(i.formatInstance(info.ID, &info.Class, "class", f, depth+1))
	for n := range info.Instances {
		inst := &info.Instances[n]
		sb.WriteString(i.formatInstance(info.ID, inst, fmt.Sprintf("instance %d", inst.Number), f, depth+1))
	}
	return sb.String()
}

func (i *Inspector) formatInstance(classID uint16, inst *InstanceInfo, label string, f *Formatter, depth int) string {
	var sb strings.Builder

	names := make([]string, 0, len(inst.Services))
	for _, s := range inst.Services {
		names = append(names, fmt.Sprintf("0x%02X %s", uint8(s.Number), s.Name))
	}
	header := label
	if len(names) > 0 {
		header += " [" + strings.Join(names, ", ") + "]"
	}
	sb.WriteString(f.Indent(depth, header) + "\n")

	if len(inst.Attributes) == 0 {
		sb.WriteString(f.Indent(depth+1, "(no attributes)") + "\n")
	}
	for _, attr := range inst.Attributes {
		sb.WriteString(f.Indent(depth+1, f.FormatAttribute(classID, inst.Number, attr)) + "\n")
	}
	return sb.String()
}
