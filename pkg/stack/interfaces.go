package stack

import (
	"context"

	"github.com/cip-stack/cip-go/pkg/model"
)

// Encapsulation is the session layer that carries explicit messages to
// the message router.
type Encapsulation interface {
	Init(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ObjectInitializer creates the classes of one object and registers them.
type ObjectInitializer interface {
	Init(ctx context.Context, registry *model.Registry) error
}

// TCPIPInterface is the TCP/IP interface object.
type TCPIPInterface interface {
	Init(ctx context.Context, registry *model.Registry) error
	Shutdown(ctx context.Context) error
}

// ConnectionManager owns connected messaging. The seed makes its
// connection IDs unique across restarts.
type ConnectionManager interface {
	Init(ctx context.Context, registry *model.Registry, connectionIDSeed uint32) error
	CloseAllConnections(ctx context.Context)
}

// Assembly owns the assembly objects. BeforeAssemblyDataSend is installed
// as the registry's assembly hook.
type Assembly interface {
	Init(ctx context.Context, registry *model.Registry) error
	BeforeAssemblyDataSend(inst *model.Instance)
	Shutdown(ctx context.Context) error
}
