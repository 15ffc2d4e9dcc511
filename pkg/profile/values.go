package profile

import (
	"encoding/hex"
	"fmt"
	"math"
	"net"
	"net/netip"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cip-stack/cip-go/pkg/wire"
)

// newValue allocates storage for t and fills it from node. An absent
// value leaves the zero value in place.
func newValue(t wire.DataType, node *yaml.Node) (any, error) {
	empty := node.Kind == 0
	switch t {
	case wire.TypeBool:
		var v bool
		if !empty {
			if err := node.Decode(&v); err != nil {
				return nil, err
			}
		}
		return &v, nil

	case wire.TypeSint:
		n, err := signed(node, empty, math.MinInt8, math.MaxInt8)
		v := int8(n)
		return &v, err
	case wire.TypeInt:
		n, err := signed(node, empty, math.MinInt16, math.MaxInt16)
		v := int16(n)
		return &v, err
	case wire.TypeDint:
		n, err := signed(node, empty, math.MinInt32, math.MaxInt32)
		v := int32(n)
		return &v, err
	case wire.TypeLint:
		n, err := signed(node, empty, math.MinInt64, math.MaxInt64)
		return &n, err

	case wire.TypeUsint, wire.TypeByte:
		n, err := unsigned(node, empty, math.MaxUint8)
		v := uint8(n)
		return &v, err
	case wire.TypeUint, wire.TypeWord:
		n, err := unsigned(node, empty, math.MaxUint16)
		v := uint16(n)
		return &v, err
	case wire.TypeUdint, wire.TypeDword:
		n, err := unsigned(node, empty, math.MaxUint32)
		v := uint32(n)
		return &v, err
	case wire.TypeUlint, wire.TypeLword:
		n, err := unsigned(node, empty, math.MaxUint64)
		return &n, err

	case wire.TypeReal:
		var f float64
		if !empty {
			if err := node.Decode(&f); err != nil {
				return nil, err
			}
		}
		v := float32(f)
		return &v, nil
	case wire.TypeLreal:
		var v float64
		if !empty {
			if err := node.Decode(&v); err != nil {
				return nil, err
			}
		}
		return &v, nil

	case wire.TypeString, wire.TypeShortString:
		var v string
		if !empty {
			v = node.Value
		}
		if t == wire.TypeShortString && len(v) > math.MaxUint8 {
			return nil, fmt.Errorf("SHORT_STRING holds at most %d bytes, got %d", math.MaxUint8, len(v))
		}
		return &v, nil

	case wire.TypeRevision:
		var v wire.Revision
		if !empty {
			r, err := parseRevision(node.Value)
			if err != nil {
				return nil, err
			}
			v = r
		}
		return &v, nil

	case wire.TypeMAC:
		var v wire.MAC
		if !empty {
			hw, err := net.ParseMAC(node.Value)
			if err != nil {
				return nil, err
			}
			if len(hw) != len(v) {
				return nil, fmt.Errorf("MAC needs %d bytes, got %d", len(v), len(hw))
			}
			copy(v[:], hw)
		}
		return &v, nil

	case wire.TypeNetworkConfig:
		var v wire.NetworkConfig
		if !empty {
			cfg, err := parseNetworkConfig(node)
			if err != nil {
				return nil, err
			}
			v = cfg
		}
		return &v, nil

	case wire.TypeByteArray:
		v := []byte{}
		if !empty {
			b, err := parseBytes(node)
			if err != nil {
				return nil, err
			}
			v = b
		}
		return &v, nil

	case wire.TypeUint6:
		var v wire.Uint6
		if !empty {
			var list []uint16
			if err := node.Decode(&list); err != nil {
				return nil, err
			}
			if len(list) != len(v) {
				return nil, fmt.Errorf("UINT6 needs %d values, got %d", len(v), len(list))
			}
			copy(v[:], list)
		}
		return &v, nil

	case wire.TypeEpath:
		var v wire.Path
		if !empty {
			p, err := parsePath(node.Value)
			if err != nil {
				return nil, err
			}
			v = p
		}
		return &v, nil
	}

	if !empty {
		return nil, fmt.Errorf("%s values cannot be declared", t)
	}
	return new(struct{}), nil
}

func signed(node *yaml.Node, empty bool, lo, hi int64) (int64, error) {
	if empty {
		return 0, nil
	}
	var n int64
	if err := node.Decode(&n); err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d out of range [%d, %d]", n, lo, hi)
	}
	return n, nil
}

func unsigned(node *yaml.Node, empty bool, hi uint64) (uint64, error) {
	if empty {
		return 0, nil
	}
	var n uint64
	if err := node.Decode(&n); err != nil {
		return 0, err
	}
	if n > hi {
		return 0, fmt.Errorf("%d out of range [0, %d]", n, hi)
	}
	return n, nil
}

// parseRevision accepts "major.minor".
func parseRevision(s string) (wire.Revision, error) {
	major, minor, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return wire.Revision{}, fmt.Errorf("revision %q is not major.minor", s)
	}
	ma, err := strconv.ParseUint(major, 10, 8)
	if err != nil {
		return wire.Revision{}, fmt.Errorf("revision major: %w", err)
	}
	mi, err := strconv.ParseUint(minor, 10, 8)
	if err != nil {
		return wire.Revision{}, fmt.Errorf("revision minor: %w", err)
	}
	return wire.Revision{Major: uint8(ma), Minor: uint8(mi)}, nil
}

type networkConfigYAML struct {
	IPAddress   string `yaml:"ip_address"`
	NetworkMask string `yaml:"network_mask"`
	Gateway     string `yaml:"gateway"`
	NameServer  string `yaml:"name_server"`
	NameServer2 string `yaml:"name_server_2"`
	DomainName  string `yaml:"domain_name"`
}

func parseNetworkConfig(node *yaml.Node) (wire.NetworkConfig, error) {
	var raw networkConfigYAML
	if err := node.Decode(&raw); err != nil {
		return wire.NetworkConfig{}, err
	}
	cfg := wire.NetworkConfig{DomainName: raw.DomainName}
	fields := []struct {
		name string
		text string
		dst  *netip.Addr
	}{
		{"ip_address", raw.IPAddress, &cfg.IPAddress},
		{"network_mask", raw.NetworkMask, &cfg.NetworkMask},
		{"gateway", raw.Gateway, &cfg.Gateway},
		{"name_server", raw.NameServer, &cfg.NameServer},
		{"name_server_2", raw.NameServer2, &cfg.NameServer2},
	}
	for _, f := range fields {
		if f.text == "" {
			continue
		}
		addr, err := netip.ParseAddr(f.text)
		if err != nil {
			return wire.NetworkConfig{}, fmt.Errorf("%s: %w", f.name, err)
		}
		if !addr.Is4() {
			return wire.NetworkConfig{}, fmt.Errorf("%s: %s is not an IPv4 address", f.name, f.text)
		}
		*f.dst = addr
	}
	return cfg, nil
}

// parseBytes accepts a hex string, optionally separated by spaces or
// colons, or a list of byte values.
func parseBytes(node *yaml.Node) ([]byte, error) {
	if node.Kind == yaml.SequenceNode {
		var list []uint8
		if err := node.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}
	s := strings.NewReplacer(" ", "", ":", "", "0x", "").Replace(node.Value)
	return hex.DecodeString(s)
}

// parsePath accepts "class/instance/attribute" with decimal or 0x numbers.
func parsePath(s string) (wire.Path, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) < 2 || len(parts) > 3 {
		return wire.Path{}, fmt.Errorf("path %q is not class/instance[/attribute]", s)
	}
	var ids [3]uint16
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 0, 16)
		if err != nil {
			return wire.Path{}, fmt.Errorf("path %q: %w", s, err)
		}
		ids[i] = uint16(n)
	}
	if len(parts) == 2 {
		return wire.NewInstancePath(ids[0], ids[1]), nil
	}
	return wire.NewPath(ids[0], ids[1], ids[2]), nil
}
