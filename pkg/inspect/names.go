package inspect

import (
	"fmt"
	"strings"

	"github.com/cip-stack/cip-go/pkg/model"
	"github.com/cip-stack/cip-go/pkg/wire"
)

// Name tables for resolving human-readable names to IDs.
var (
	// classAttributeNames holds the standard attributes of every class object.
	classAttributeNames = map[string]uint16{
		"revision":                model.ClassAttrRevision,
		"max_instance":            model.ClassAttrMaxInstance,
		"number_of_instances":     model.ClassAttrNumberOfInstances,
		"optional_attribute_list": model.ClassAttrOptionalAttributeList,
		"optional_service_list":   model.ClassAttrOptionalServiceList,
		"max_class_attribute":     model.ClassAttrMaxClassAttribute,
		"max_instance_attribute":  model.ClassAttrMaxInstanceAttribute,
	}

	// instanceAttributeNames holds instance attributes of the standard objects.
	instanceAttributeNames = map[uint16]map[string]uint16{
		wire.ClassIdentity: {
			"vendor_id":     1,
			"device_type":   2,
			"product_code":  3,
			"revision":      4,
			"status":        5,
			"serial_number": 6,
			"product_name":  7,
		},
		wire.ClassTCPIPInterface: {
			"status":                   1,
			"configuration_capability": 2,
			"configuration_control":    3,
			"physical_link_object":     4,
			"interface_configuration":  5,
			"host_name":                6,
		},
		wire.ClassEthernetLink: {
			"interface_speed":    1,
			"interface_flags":    2,
			"physical_address":   3,
			"interface_counters": 4,
			"media_counters":     5,
			"interface_control":  6,
		},
	}
)

// ResolveClassName resolves a class name to its code (case-insensitive).
// Standard objects are always known; classes of registry are searched
// when it is not nil.
func ResolveClassName(registry *model.Registry, name string) (uint16, bool) {
	if registry != nil {
		for _, c := range registry.Classes() {
			if strings.EqualFold(c.Name(), name) {
				return c.ID(), true
			}
		}
	}
	for id, n := range wire.ClassNames {
		if strings.EqualFold(n, name) {
			return id, true
		}
	}
	return 0, false
}

// ResolveAttributeName resolves an attribute name within a class
// (case-insensitive). Instance 0 uses the class object names.
func ResolveAttributeName(classID, instance uint16, name string) (uint16, bool) {
	table := instanceAttributeNames[classID]
	if instance == 0 {
		table = classAttributeNames
	}
	for k, v := range table {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return 0, false
}

// GetClassName returns the name of a class, preferring the registry's.
func GetClassName(registry *model.Registry, id uint16) string {
	if registry != nil {
		if c := registry.Class(id); c != nil && c.Name() != "" {
			return c.Name()
		}
	}
	if name, ok := wire.ClassNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Class(0x%02X)", id)
}

// GetAttributeName returns the name of an attribute, or "" if unknown.
func GetAttributeName(classID, instance, attribute uint16) string {
	table := instanceAttributeNames[classID]
	if instance == 0 {
		table = classAttributeNames
	}
	for name, id := range table {
		if id == attribute {
			return name
		}
	}
	return ""
}
