package inspect

import (
	"errors"
	"strings"
	"testing"

	"github.com/cip-stack/cip-go/pkg/model"
	"github.com/cip-stack/cip-go/pkg/wire"
)

// createTestRegistry creates an identity class with one instance holding
// vendor ID and product name.
func createTestRegistry(t *testing.T) *model.Registry {
	t.Helper()
	r := model.NewRegistry(nil)
	class, err := r.CreateClass(model.ClassSpec{
		ID:                 wire.ClassIdentity,
		Name:               "Identity",
		Revision:           1,
		InstanceAttributes: 2,
		InstanceGetAllMask: 1<<1 | 1<<7,
		Instances:          1,
	})
	if err != nil {
		t.Fatalf("CreateClass() error = %v", err)
	}

	vendor := uint16(0x1234)
	name := "Test"
	inst := class.FindInstance(1)
	if err := inst.InsertAttribute(1, wire.TypeUint, &vendor, model.GetableSingleAndAll); err != nil {
		t.Fatalf("InsertAttribute() error = %v", err)
	}
	if err := inst.InsertAttribute(7, wire.TypeShortString, &name, model.GetableSingleAndAll); err != nil {
		t.Fatalf("InsertAttribute() error = %v", err)
	}
	return r
}

func TestInspectRegistry(t *testing.T) {
	i := NewInspector(createTestRegistry(t))

	classes := i.InspectRegistry()
	if len(classes) != 1 {
		t.Fatalf("len(InspectRegistry()) = %d, want 1", len(classes))
	}
	c := classes[0]
	if c.ID != 0x01 || c.Name != "Identity" || c.Revision != 1 {
		t.Errorf("class = %d %q %d", c.ID, c.Name, c.Revision)
	}
	if len(c.Class.Attributes) != model.StandardClassAttributes {
		t.Errorf("class attributes = %d, want %d", len(c.Class.Attributes), model.StandardClassAttributes)
	}
	if len(c.Instances) != 1 || len(c.Instances[0].Attributes) != 2 {
		t.Fatalf("instances = %+v", c.Instances)
	}
	if len(c.Instances[0].Services) != 2 {
		t.Errorf("instance services = %d, want 2", len(c.Instances[0].Services))
	}
}

func TestInspectClass(t *testing.T) {
	i := NewInspector(createTestRegistry(t))

	info, err := i.InspectClass(0x01)
	if err != nil {
		t.Fatalf("InspectClass() error = %v", err)
	}
	if info.Name != "Identity" {
		t.Errorf("Name = %q", info.Name)
	}

	if _, err := i.InspectClass(0x99); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("InspectClass(0x99) error = %v, want ErrClassNotFound", err)
	}
}

func TestInspectorReadAttribute(t *testing.T) {
	i := NewInspector(createTestRegistry(t))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"instance attribute", "identity/1/product_name", nil},
		{"class attribute", "1/0/revision", nil},
		{"partial", "1/1", ErrPartialPath},
		{"unknown class", "0x99/1/1", ErrClassNotFound},
		{"unknown instance", "1/2/1", ErrInstanceNotFound},
		{"unknown attribute", "1/1/3", ErrAttributeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePath(tt.path)
			if err != nil {
				t.Fatalf("ParsePath() error = %v", err)
			}
			attr, err := i.ReadAttribute(p)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ReadAttribute() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadAttribute() error = %v", err)
			}
			if attr.Number != p.AttributeNumber {
				t.Errorf("Number = %d, want %d", attr.Number, p.AttributeNumber)
			}
		})
	}
}

func TestFormatRegistry(t *testing.T) {
	i := NewInspector(createTestRegistry(t))
	out := i.FormatRegistry(nil)

	for _, want := range []string{
		"0x01 Identity (Rev: 1, Instances: 1)",
		"  class [0x0E GetAttributeSingle]",
		"    [1] revision: 1 (0x0001) (UINT, get_single|get_all)",
		"  instance 1 [0x0E GetAttributeSingle, 0x01 GetAttributeAll]",
		`    [7] product_name: "Test" (SHORT_STRING, get_single|get_all)`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatRegistry() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatInstance(t *testing.T) {
	i := NewInspector(createTestRegistry(t))
	info, err := i.InspectClass(0x01)
	if err != nil {
		t.Fatalf("InspectClass() error = %v", err)
	}

	out, err := i.FormatInstance(info, 1, nil)
	if err != nil {
		t.Fatalf("FormatInstance() error = %v", err)
	}
	if !strings.HasPrefix(out, "instance 1 [") || !strings.Contains(out, "product_name") {
		t.Errorf("FormatInstance(1) = %q", out)
	}

	out, err = i.FormatInstance(info, 0, nil)
	if err != nil {
		t.Fatalf("FormatInstance(0) error = %v", err)
	}
	if !strings.HasPrefix(out, "class [") {
		t.Errorf("FormatInstance(0) = %q", out)
	}

	if _, err := i.FormatInstance(info, 9, nil); !errors.Is(err, ErrInstanceNotFound) {
		t.Errorf("FormatInstance(9) error = %v, want ErrInstanceNotFound", err)
	}
}
