package stack

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cip-stack/cip-go/pkg/log"
	"github.com/cip-stack/cip-go/pkg/model"
	"github.com/cip-stack/cip-go/pkg/stack/mocks"
	"github.com/cip-stack/cip-go/pkg/wire"
)

type collaborators struct {
	encap    *mocks.MockEncapsulation
	identity *mocks.MockObjectInitializer
	tcpip    *mocks.MockTCPIPInterface
	link     *mocks.MockObjectInitializer
	connMgr  *mocks.MockConnectionManager
	assembly *mocks.MockAssembly
	app      *mocks.MockObjectInitializer
}

func newCollaborators(t *testing.T) *collaborators {
	return &collaborators{
		encap:    mocks.NewMockEncapsulation(t),
		identity: mocks.NewMockObjectInitializer(t),
		tcpip:    mocks.NewMockTCPIPInterface(t),
		link:     mocks.NewMockObjectInitializer(t),
		connMgr:  mocks.NewMockConnectionManager(t),
		assembly: mocks.NewMockAssembly(t),
		app:      mocks.NewMockObjectInitializer(t),
	}
}

func (c *collaborators) config() Config {
	return Config{
		Encapsulation:     c.encap,
		Identity:          c.identity,
		TCPIP:             c.tcpip,
		EthernetLink:      c.link,
		ConnectionManager: c.connMgr,
		Assembly:          c.assembly,
		Application:       c.app,
	}
}

// callLog records the order collaborators are called in.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) object(name string) func(context.Context, *model.Registry) {
	return func(context.Context, *model.Registry) { l.add(name) }
}

func (l *callLog) ctx(name string) func(context.Context) {
	return func(context.Context) { l.add(name) }
}

type recordingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (l *recordingLogger) Log(e log.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func TestInitShutdownOrder(t *testing.T) {
	c := newCollaborators(t)
	calls := &callLog{}

	c.encap.EXPECT().Init(mock.Anything).Run(calls.ctx("encapsulation.init")).Return(nil).Once()
	c.identity.EXPECT().Init(mock.Anything, mock.Anything).Run(func(_ context.Context, r *model.Registry) {
		calls.add("identity.init")
		// the message router is already registered
		assert.NotNil(t, r.Class(wire.ClassMessageRouter))
	}).Return(nil).Once()
	c.tcpip.EXPECT().Init(mock.Anything, mock.Anything).Run(calls.object("tcpip.init")).Return(nil).Once()
	c.link.EXPECT().Init(mock.Anything, mock.Anything).Run(calls.object("link.init")).Return(nil).Once()
	c.connMgr.EXPECT().Init(mock.Anything, mock.Anything, mock.Anything).Run(func(context.Context, *model.Registry, uint32) {
		calls.add("connmgr.init")
	}).Return(nil).Once()
	c.assembly.EXPECT().Init(mock.Anything, mock.Anything).Run(calls.object("assembly.init")).Return(nil).Once()
	c.app.EXPECT().Init(mock.Anything, mock.Anything).Run(calls.object("app.init")).Return(nil).Once()

	c.connMgr.EXPECT().CloseAllConnections(mock.Anything).Run(calls.ctx("connmgr.close")).Return().Once()
	c.encap.EXPECT().Shutdown(mock.Anything).Run(calls.ctx("encapsulation.shutdown")).Return(nil).Once()
	c.assembly.EXPECT().Shutdown(mock.Anything).Run(calls.ctx("assembly.shutdown")).Return(nil).Once()
	c.tcpip.EXPECT().Shutdown(mock.Anything).Run(calls.ctx("tcpip.shutdown")).Return(nil).Once()

	s := New(c.config())
	ctx := context.Background()

	require.NoError(t, s.Init(ctx))
	assert.Equal(t, StateRunning, s.State())
	require.NotNil(t, s.Registry())
	require.NotNil(t, s.Server())

	require.NoError(t, s.Shutdown(ctx))
	assert.Equal(t, StateStopped, s.State())

	assert.Equal(t, []string{
		"encapsulation.init",
		"identity.init",
		"tcpip.init",
		"link.init",
		"connmgr.init",
		"assembly.init",
		"app.init",
		"connmgr.close",
		"encapsulation.shutdown",
		"assembly.shutdown",
		"tcpip.shutdown",
	}, calls.calls)
	assert.Empty(t, s.Registry().Classes())
}

func TestInitWithoutCollaborators(t *testing.T) {
	s := New(Config{})
	require.NoError(t, s.Init(context.Background()))

	classes := s.Registry().Classes()
	require.Len(t, classes, 1)
	assert.Equal(t, wire.ClassMessageRouter, classes[0].ID())
	assert.Equal(t, uint16(1), classes[0].InstanceCount())

	// class revision through the router
	reply, err := s.Server().HandleMessage(context.Background(), []byte{0x0E, 0x03, 0x20, 0x02, 0x24, 0x00, 0x30, 0x01})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x8E, 0x00, 0x00, 0x00, 0x01, 0x00}, reply)

	require.NoError(t, s.Shutdown(context.Background()))
}

func TestInitAbortsOnError(t *testing.T) {
	c := newCollaborators(t)
	errBoom := errors.New("boom")

	c.encap.EXPECT().Init(mock.Anything).Return(nil).Once()
	c.identity.EXPECT().Init(mock.Anything, mock.Anything).Return(nil).Once()
	c.tcpip.EXPECT().Init(mock.Anything, mock.Anything).Return(errBoom).Once()
	c.encap.EXPECT().Shutdown(mock.Anything).Return(nil).Once()

	s := New(c.config())
	err := s.Init(context.Background())

	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "tcp/ip interface")
	assert.Equal(t, StateIdle, s.State())
	assert.Nil(t, s.Registry())
	assert.Nil(t, s.Server())
}

func TestInitAbortReleasesEncapsulation(t *testing.T) {
	errBoom := errors.New("boom")
	errStuck := errors.New("socket stuck")

	t.Run("encapsulation init fails", func(t *testing.T) {
		encap := mocks.NewMockEncapsulation(t)
		encap.EXPECT().Init(mock.Anything).Return(errBoom).Once()

		s := New(Config{Encapsulation: encap})
		require.ErrorIs(t, s.Init(context.Background()), errBoom)
		encap.AssertNotCalled(t, "Shutdown", mock.Anything)
	})

	t.Run("shutdown error joined", func(t *testing.T) {
		encap := mocks.NewMockEncapsulation(t)
		app := mocks.NewMockObjectInitializer(t)
		encap.EXPECT().Init(mock.Anything).Return(nil).Once()
		app.EXPECT().Init(mock.Anything, mock.Anything).Return(errBoom).Once()
		encap.EXPECT().Shutdown(mock.Anything).Return(errStuck).Once()

		s := New(Config{Encapsulation: encap, Application: app})
		err := s.Init(context.Background())
		require.ErrorIs(t, err, errBoom)
		require.ErrorIs(t, err, errStuck)
		assert.Equal(t, StateIdle, s.State())
	})

	t.Run("canceled after encapsulation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		encap := mocks.NewMockEncapsulation(t)
		encap.EXPECT().Init(mock.Anything).Run(func(context.Context) { cancel() }).Return(nil).Once()
		encap.EXPECT().Shutdown(mock.Anything).Run(func(ctx context.Context) {
			assert.NoError(t, ctx.Err())
		}).Return(nil).Once()

		s := New(Config{Encapsulation: encap})
		require.ErrorIs(t, s.Init(ctx), context.Canceled)
	})

	t.Run("retry after abort", func(t *testing.T) {
		encap := mocks.NewMockEncapsulation(t)
		app := mocks.NewMockObjectInitializer(t)
		encap.EXPECT().Init(mock.Anything).Return(nil).Twice()
		encap.EXPECT().Shutdown(mock.Anything).Return(nil).Once()
		app.EXPECT().Init(mock.Anything, mock.Anything).Return(errBoom).Once()
		app.EXPECT().Init(mock.Anything, mock.Anything).Return(nil).Once()

		s := New(Config{Encapsulation: encap, Application: app})
		require.ErrorIs(t, s.Init(context.Background()), errBoom)
		require.NoError(t, s.Init(context.Background()))
		assert.Equal(t, StateRunning, s.State())
	})
}

func TestInitClassCollision(t *testing.T) {
	app := mocks.NewMockObjectInitializer(t)
	app.EXPECT().Init(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, r *model.Registry) error {
		_, err := r.CreateClass(model.ClassSpec{ID: wire.ClassMessageRouter, Name: "Duplicate"})
		return err
	}).Once()

	s := New(Config{Application: app})
	err := s.Init(context.Background())
	require.ErrorIs(t, err, model.ErrClassExists)
	assert.Equal(t, StateIdle, s.State())
}

func TestInitStateErrors(t *testing.T) {
	s := New(Config{})
	ctx := context.Background()

	require.ErrorIs(t, s.Shutdown(ctx), ErrNotStarted)
	require.NoError(t, s.Init(ctx))
	require.ErrorIs(t, s.Init(ctx), ErrAlreadyStarted)
	require.NoError(t, s.Shutdown(ctx))
	require.ErrorIs(t, s.Shutdown(ctx), ErrNotStarted)

	// a stopped stack can be initialized again
	require.NoError(t, s.Init(ctx))
	assert.Len(t, s.Registry().Classes(), 1)
}

func TestInitCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(Config{})
	require.ErrorIs(t, s.Init(ctx), context.Canceled)
	assert.Equal(t, StateIdle, s.State())
}

func TestConnectionIDSeed(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		connMgr := mocks.NewMockConnectionManager(t)
		connMgr.EXPECT().Init(mock.Anything, mock.Anything, uint32(0xCAFE)).Return(nil).Once()

		s := New(Config{ConnectionManager: connMgr, ConnectionIDSeed: 0xCAFE})
		require.NoError(t, s.Init(context.Background()))
	})

	t.Run("generated", func(t *testing.T) {
		var seeds []uint32
		connMgr := mocks.NewMockConnectionManager(t)
		connMgr.EXPECT().Init(mock.Anything, mock.Anything, mock.Anything).
			Run(func(_ context.Context, _ *model.Registry, seed uint32) { seeds = append(seeds, seed) }).
			Return(nil).Twice()
		connMgr.EXPECT().CloseAllConnections(mock.Anything).Return().Once()

		s := New(Config{ConnectionManager: connMgr})
		ctx := context.Background()
		require.NoError(t, s.Init(ctx))
		require.NoError(t, s.Shutdown(ctx))
		require.NoError(t, s.Init(ctx))

		require.Len(t, seeds, 2)
		assert.NotEqual(t, seeds[0], seeds[1])
	})
}

func TestAssemblyHookInstalled(t *testing.T) {
	data := []byte{0x01, 0x02}
	var hooked []uint16

	assembly := mocks.NewMockAssembly(t)
	assembly.EXPECT().Init(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, r *model.Registry) error {
		c, err := r.CreateClass(model.ClassSpec{ID: wire.ClassAssembly, Name: "Assembly", Revision: 2, InstanceAttributes: 1})
		if err != nil {
			return err
		}
		inst, err := c.AddInstance(100)
		if err != nil {
			return err
		}
		return inst.InsertAttribute(3, wire.TypeByteArray, &data, model.GetableSingle)
	}).Once()
	assembly.EXPECT().BeforeAssemblyDataSend(mock.Anything).Run(func(inst *model.Instance) {
		hooked = append(hooked, inst.Number())
		data = []byte{0xAA, 0xBB, 0xCC}
	}).Return()

	s := New(Config{Assembly: assembly})
	require.NoError(t, s.Init(context.Background()))

	reply, err := s.Server().HandleMessage(context.Background(), []byte{0x0E, 0x03, 0x20, 0x04, 0x24, 0x64, 0x30, 0x03})
	require.NoError(t, err)
	assert.Equal(t, []uint16{100}, hooked)
	assert.True(t, bytes.Equal(reply[4:], []byte{0xAA, 0xBB, 0xCC}), "payload % X", reply[4:])
}

func TestShutdownJoinsErrors(t *testing.T) {
	c := newCollaborators(t)
	errEncap := errors.New("encapsulation stuck")
	errTCPIP := errors.New("interface busy")

	c.encap.EXPECT().Init(mock.Anything).Return(nil)
	c.identity.EXPECT().Init(mock.Anything, mock.Anything).Return(nil)
	c.tcpip.EXPECT().Init(mock.Anything, mock.Anything).Return(nil)
	c.link.EXPECT().Init(mock.Anything, mock.Anything).Return(nil)
	c.connMgr.EXPECT().Init(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	c.assembly.EXPECT().Init(mock.Anything, mock.Anything).Return(nil)
	c.app.EXPECT().Init(mock.Anything, mock.Anything).Return(nil)

	c.connMgr.EXPECT().CloseAllConnections(mock.Anything).Return().Once()
	c.encap.EXPECT().Shutdown(mock.Anything).Return(errEncap).Once()
	c.assembly.EXPECT().Shutdown(mock.Anything).Return(nil).Once()
	c.tcpip.EXPECT().Shutdown(mock.Anything).Return(errTCPIP).Once()

	s := New(c.config())
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	err := s.Shutdown(ctx)
	assert.ErrorIs(t, err, errEncap)
	assert.ErrorIs(t, err, errTCPIP)
	assert.Equal(t, StateStopped, s.State())
	assert.Empty(t, s.Registry().Classes())
}

func TestStateEvents(t *testing.T) {
	rec := &recordingLogger{}
	s := New(Config{ProtocolLogger: rec})
	ctx := context.Background()

	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.Shutdown(ctx))

	var stack []string
	var classes []string
	for _, e := range rec.events {
		require.NotNil(t, e.StateChange)
		assert.Equal(t, log.CategoryState, e.Category)
		switch e.StateChange.Entity {
		case log.StateEntityStack:
			stack = append(stack, e.StateChange.NewState)
		case log.StateEntityClass:
			classes = append(classes, e.StateChange.NewState+" "+e.StateChange.Reason)
		}
	}

	assert.Equal(t, []string{"INITIALIZING", "RUNNING", "SHUTTING_DOWN", "STOPPED"}, stack)
	assert.Equal(t, []string{"created 0x02 MessageRouter", "deleted 0x02 MessageRouter"}, classes)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "IDLE"},
		{StateInitializing, "INITIALIZING"},
		{StateRunning, "RUNNING"},
		{StateShuttingDown, "SHUTTING_DOWN"},
		{StateStopped, "STOPPED"},
		{State(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
