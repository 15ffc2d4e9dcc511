// Package inspect provides object inspection and attribute access utilities.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g., "identity/1/product_name" or "0x01/1/7")
//   - Resolving class and attribute names to numbers
//   - Reading and writing attributes, locally or through a client
//   - Formatting values and raw frames for display
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cip-stack/cip-go/pkg/model"
	"github.com/cip-stack/cip-go/pkg/wire"
)

// Path errors.
var (
	ErrEmptyPath     = errors.New("empty path")
	ErrInvalidPath   = errors.New("invalid path format")
	ErrInvalidNumber = errors.New("invalid numeric value in path")
)

// Path represents a parsed inspection path.
// Format: class[/instance[/attribute]]
type Path struct {
	// ClassID is the class code.
	ClassID uint16

	// InstanceNumber is the instance, 0 for the class object.
	InstanceNumber uint16

	// AttributeNumber is the attribute within the instance.
	AttributeNumber uint16

	// IsPartial indicates the path doesn't include an attribute
	// (used for inspect operations that show all attributes).
	IsPartial bool

	// HasInstance is false for a bare class path.
	HasInstance bool

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path using the standard class names.
//
// Supported formats:
//   - "class/instance/attribute" - attribute path
//   - "class/instance" - partial (for listing attributes)
//   - "class" - partial (for listing instances)
//
// Numeric values can be decimal or hex (0x prefix). Classes and
// attributes may also be given by name, e.g. "identity/1/product_name".
func ParsePath(input string) (*Path, error) {
	return ParsePathIn(nil, input)
}

// ParsePathIn parses a path and also resolves the class names of registry.
func ParsePathIn(registry *model.Registry, input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	// Check for invalid patterns
	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, ErrInvalidPath
	}

	parts := strings.Split(input, "/")
	if len(parts) > 3 {
		return nil, ErrInvalidPath
	}

	p := &Path{Raw: input, IsPartial: true}

	classID, err := parseUint16(parts[0])
	if err != nil {
		var ok bool
		if classID, ok = ResolveClassName(registry, parts[0]); !ok {
			return nil, fmt.Errorf("class: %w: %s", ErrInvalidNumber, parts[0])
		}
	}
	p.ClassID = classID

	if len(parts) == 1 {
		return p, nil
	}

	inst, err := parseUint16(parts[1])
	if err != nil {
		return nil, fmt.Errorf("instance: %w: %s", ErrInvalidNumber, parts[1])
	}
	p.InstanceNumber = inst
	p.HasInstance = true

	if len(parts) == 2 {
		return p, nil
	}

	attr, err := parseUint16(parts[2])
	if err != nil {
		var ok bool
		if attr, ok = ResolveAttributeName(p.ClassID, p.InstanceNumber, parts[2]); !ok {
			return nil, fmt.Errorf("attribute: %w: %s", ErrInvalidNumber, parts[2])
		}
	}
	p.AttributeNumber = attr
	p.IsPartial = false

	return p, nil
}

// String returns the path as a string.
func (p *Path) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("0x%02X", p.ClassID))
	if !p.HasInstance {
		return sb.String()
	}
	sb.WriteString("/")
	sb.WriteString(strconv.Itoa(int(p.InstanceNumber)))
	if p.IsPartial {
		return sb.String()
	}
	sb.WriteString("/")
	sb.WriteString(strconv.Itoa(int(p.AttributeNumber)))
	return sb.String()
}

// Wire returns the encoded form of the path.
func (p *Path) Wire() wire.Path {
	if p.IsPartial {
		return wire.NewInstancePath(p.ClassID, p.InstanceNumber)
	}
	return wire.NewPath(p.ClassID, p.InstanceNumber, p.AttributeNumber)
}

// parseUint16 parses a uint16 from decimal or hex string.
func parseUint16(s string) (uint16, error) {
	var v uint64
	var err error

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 16)
	} else {
		v, err = strconv.ParseUint(s, 10, 16)
	}
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
