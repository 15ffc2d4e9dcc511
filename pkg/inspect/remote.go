package inspect

import (
	"context"
	"errors"

	"github.com/cip-stack/cip-go/pkg/wire"
)

// AttributeClient reads and writes attributes of a device.
// This is implemented by interaction.Client.
type AttributeClient interface {
	GetAttributeSingle(ctx context.Context, classID, instance, attribute uint16) ([]byte, error)
	GetAttributeAll(ctx context.Context, classID, instance uint16) ([]byte, error)
	SetAttributeSingle(ctx context.Context, classID, instance, attribute uint16, value []byte) error
}

// RemoteInspector reads and writes attributes through explicit messages.
type RemoteInspector struct {
	client AttributeClient
}

// NewRemoteInspector creates a new remote inspector for the given client.
func NewRemoteInspector(client AttributeClient) *RemoteInspector {
	return &RemoteInspector{
		client: client,
	}
}

// ReadAttribute reads a single attribute and returns its encoded value.
func (r *RemoteInspector) ReadAttribute(ctx context.Context, path *Path) ([]byte, error) {
	if path == nil {
		return nil, errors.New("path is nil")
	}
	if path.IsPartial {
		return nil, ErrPartialPath
	}
	return r.client.GetAttributeSingle(ctx, path.ClassID, path.InstanceNumber, path.AttributeNumber)
}

// ReadAllAttributes reads the get-all attributes of the path's instance.
func (r *RemoteInspector) ReadAllAttributes(ctx context.Context, path *Path) ([]byte, error) {
	if path == nil {
		return nil, errors.New("path is nil")
	}
	return r.client.GetAttributeAll(ctx, path.ClassID, path.InstanceNumber)
}

// ReadValue reads a single attribute and formats it as type t.
func (r *RemoteInspector) ReadValue(ctx context.Context, path *Path, t wire.DataType) (string, error) {
	data, err := r.ReadAttribute(ctx, path)
	if err != nil {
		return "", err
	}
	return DecodeValue(t, data)
}

// WriteAttribute writes an encoded value.
func (r *RemoteInspector) WriteAttribute(ctx context.Context, path *Path, data []byte) error {
	if path == nil {
		return errors.New("path is nil")
	}
	if path.IsPartial {
		return ErrPartialPath
	}
	return r.client.SetAttributeSingle(ctx, path.ClassID, path.InstanceNumber, path.AttributeNumber, data)
}

// WriteValue parses text as type t and writes it.
func (r *RemoteInspector) WriteValue(ctx context.Context, path *Path, t wire.DataType, text string) error {
	data, err := ParseValue(t, text)
	if err != nil {
		return err
	}
	return r.WriteAttribute(ctx, path, data)
}
