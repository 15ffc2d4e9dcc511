package profile

import (
	"context"
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cip-stack/cip-go/pkg/model"
	"github.com/cip-stack/cip-go/pkg/wire"
)

const demoProfile = `
name: demo
stack:
  reply_buffer_size: 256
  connection_id_seed: 42
classes:
  - id: 0x01
    revision: 1
    instances:
      - number: 1
        attributes:
          - {number: 1, type: UINT, value: 0x1234, access: [get_single, get_all]}
          - {number: 4, type: REVISION, value: "2.11", access: [get_single, get_all]}
          - {number: 7, type: SHORT_STRING, value: "Demo", access: [get_single, get_all]}
  - id: 0x64
    name: Setpoints
    revision: 3
    class_attributes:
      - {number: 8, type: USINT, value: 9}
    instances:
      - number: 1
        attributes:
          - {number: 1, type: DINT, value: -5, access: [get_single, set]}
          - {number: 2, type: BYTE_ARRAY, value: "01 02 ff"}
          - {number: 3, type: UINT, value: 1}
      - number: 4
        attributes:
          - {number: 1, type: DINT, value: 7, access: [get_single, set]}
          - {number: 3, type: MAC, value: "00:1a:2b:3c:4d:5e"}
          - {number: 5, type: EPATH, value: "0x04/100/3"}
          - {number: 6, type: UINT6, value: [1, 2, 3, 4, 5, 6]}
          - {number: 7, type: LREAL, value: 2.5}
  - id: 0xF5
    instances:
      - number: 1
        attributes:
          - number: 5
            type: NETWORK_CONFIG
            value:
              ip_address: 192.168.1.10
              network_mask: 255.255.255.0
              domain_name: plant.local
`

func serve(t *testing.T, r *model.Registry, service wire.Service, path wire.Path, data []byte) *model.Response {
	t.Helper()
	class := r.Class(path.ClassID)
	require.NotNil(t, class)
	req := &model.Request{Service: service, Path: path, Data: data}
	resp := model.NewResponse(504)
	require.NoError(t, model.Notify(class, req, resp))
	return resp
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte(demoProfile))
	require.NoError(t, err)

	assert.Equal(t, "demo", p.Name)
	assert.Equal(t, 256, p.Stack.ReplyBufferSize)
	assert.Equal(t, uint32(42), p.Stack.ConnectionIDSeed)
	require.Len(t, p.Classes, 3)

	identity := p.Classes[0]
	assert.Equal(t, "Identity", identity.Name, "standard classes are named when the name is omitted")
	assert.Equal(t, 7, identity.Line)

	attr := identity.Instances[0].Attributes[0]
	assert.Equal(t, wire.TypeUint, attr.DataType())
	assert.Equal(t, model.GetableSingleAndAll, attr.Flags())
	assert.Equal(t, uint16(0x1234), *attr.StoredValue().(*uint16))
	assert.Equal(t, wire.Revision{Major: 2, Minor: 11}, *identity.Instances[0].Attributes[1].StoredValue().(*wire.Revision))

	setpoints := p.Classes[1]
	assert.Equal(t, model.GetableSingle, setpoints.Attributes[0].Flags(), "access defaults to get_single")
	assert.Equal(t, []byte{0x01, 0x02, 0xff}, *setpoints.Instances[0].Attributes[1].StoredValue().(*[]byte))

	inst4 := setpoints.Instances[1].Attributes
	assert.Equal(t, wire.MAC{0x00, 0x1a, 0x2b, 0x3c, 0x4d, 0x5e}, *inst4[1].StoredValue().(*wire.MAC))
	assert.Equal(t, wire.NewPath(0x04, 100, 3), *inst4[2].StoredValue().(*wire.Path))
	assert.Equal(t, wire.Uint6{1, 2, 3, 4, 5, 6}, *inst4[3].StoredValue().(*wire.Uint6))
	assert.Equal(t, 2.5, *inst4[4].StoredValue().(*float64))

	cfg := *p.Classes[2].Instances[0].Attributes[0].StoredValue().(*wire.NetworkConfig)
	assert.Equal(t, netip.MustParseAddr("192.168.1.10"), cfg.IPAddress)
	assert.Equal(t, netip.MustParseAddr("255.255.255.0"), cfg.NetworkMask)
	assert.False(t, cfg.Gateway.IsValid())
	assert.Equal(t, "plant.local", cfg.DomainName)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		wantErr error
	}{
		{
			name: "missing class id",
			input: `
classes:
  - name: Foo
`,
			line: 3,
		},
		{
			name: "duplicate class",
			input: `
classes:
  - id: 1
  - id: 1
`,
			line: 4,
		},
		{
			name: "instance zero",
			input: `
classes:
  - id: 1
    instances:
      - number: 0
`,
			line:    5,
			wantErr: model.ErrInstanceNumber,
		},
		{
			name: "unknown type",
			input: `
classes:
  - id: 1
    instances:
      - number: 1
        attributes:
          - {number: 1, type: QUUX}
`,
			line: 7,
		},
		{
			name: "value out of range",
			input: `
classes:
  - id: 1
    instances:
      - number: 1
        attributes:
          - number: 1
            type: USINT
            value: 256
`,
			line: 9,
		},
		{
			name: "duplicate attribute",
			input: `
classes:
  - id: 1
    instances:
      - number: 1
        attributes:
          - {number: 1, type: UINT}
          - {number: 1, type: UDINT}
`,
			line:    8,
			wantErr: model.ErrAttributeExists,
		},
		{
			name: "standard class attribute",
			input: `
classes:
  - id: 1
    class_attributes:
      - {number: 3, type: UINT}
`,
			line:    5,
			wantErr: model.ErrAttributeExists,
		},
		{
			name: "unknown access",
			input: `
classes:
  - id: 1
    instances:
      - number: 1
        attributes:
          - {number: 1, type: UINT, access: [write]}
`,
			line: 7,
		},
		{
			name: "settable without decoder",
			input: `
classes:
  - id: 1
    instances:
      - number: 1
        attributes:
          - {number: 1, type: MAC, access: [set]}
`,
			line: 7,
		},
		{
			name: "bad mac",
			input: `
classes:
  - id: 1
    instances:
      - number: 1
        attributes:
          - {number: 1, type: MAC, value: "00:11"}
`,
			line: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)

			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line, err.Error())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("classes: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse profile")
}

func TestBuild(t *testing.T) {
	p, err := Parse([]byte(demoProfile))
	require.NoError(t, err)

	r := model.NewRegistry(nil)
	require.NoError(t, p.Build(r))
	require.Len(t, r.Classes(), 3)

	setpoints := r.Class(0x64)
	require.NotNil(t, setpoints)
	assert.Equal(t, "Setpoints", setpoints.Name())
	assert.Equal(t, uint16(2), setpoints.InstanceCount())
	assert.Equal(t, uint16(4), setpoints.HighestInstance())
	assert.Equal(t, uint16(8), setpoints.HighestAttribute(model.ScopeClass))
	assert.Equal(t, uint16(7), setpoints.HighestAttribute(model.ScopeInstance))

	t.Run("get all", func(t *testing.T) {
		resp := serve(t, r, wire.ServiceGetAttributeAll, wire.NewInstancePath(0x01, 1), nil)
		require.Equal(t, wire.StatusSuccess, resp.GeneralStatus)
		assert.Equal(t, []byte{0x34, 0x12, 0x02, 0x0B, 0x04, 'D', 'e', 'm', 'o'}, resp.Payload())
	})

	t.Run("class attribute", func(t *testing.T) {
		resp := serve(t, r, wire.ServiceGetAttributeSingle, wire.NewPath(0x64, 0, 8), nil)
		require.Equal(t, wire.StatusSuccess, resp.GeneralStatus)
		assert.Equal(t, []byte{9}, resp.Payload())
	})

	t.Run("set writes profile storage", func(t *testing.T) {
		resp := serve(t, r, wire.ServiceSetAttributeSingle, wire.NewPath(0x64, 4, 1), []byte{0x10, 0, 0, 0})
		require.Equal(t, wire.StatusSuccess, resp.GeneralStatus)
		assert.Equal(t, int32(16), *p.Classes[1].Instances[1].Attributes[0].StoredValue().(*int32))
	})

	t.Run("read only attribute", func(t *testing.T) {
		resp := serve(t, r, wire.ServiceSetAttributeSingle, wire.NewPath(0x64, 1, 3), []byte{0, 0})
		assert.Equal(t, wire.StatusAttributeNotSettable, resp.GeneralStatus)
	})

	t.Run("no set service without settable attributes", func(t *testing.T) {
		resp := serve(t, r, wire.ServiceSetAttributeSingle, wire.NewPath(0x01, 1, 1), []byte{0, 0})
		assert.Equal(t, wire.StatusServiceNotSupported, resp.GeneralStatus)
	})
}

func TestBuildClassConflict(t *testing.T) {
	p, err := Parse([]byte(`
classes:
  - id: 0x02
    name: Router
`))
	require.NoError(t, err)

	r := model.NewRegistry(nil)
	_, err = r.CreateClass(model.ClassSpec{ID: 0x02, Name: "MessageRouter", Revision: 1})
	require.NoError(t, err)

	err = p.Build(r)
	require.ErrorIs(t, err, model.ErrClassExists)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
}

func TestInit(t *testing.T) {
	p, err := Parse([]byte(demoProfile))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Init(ctx, model.NewRegistry(nil)), context.Canceled)

	r := model.NewRegistry(nil)
	require.NoError(t, p.Init(context.Background(), r))
	assert.NotNil(t, r.Class(0xF5))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "device.yaml")
	require.NoError(t, os.WriteFile(path, []byte(demoProfile), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, p.Classes, 3)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
