package model

import (
	"fmt"

	"github.com/cip-stack/cip-go/pkg/wire"
)

// Handler serves one service for an instance.
//
// A nil error means the response is ready to be sent. A returned error is
// passed through Notify unchanged; it may carry a general status as a
// *wire.StatusError.
type Handler interface {
	Serve(inst *Instance, req *Request, resp *Response) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(inst *Instance, req *Request, resp *Response) error

// Serve calls f.
func (f HandlerFunc) Serve(inst *Instance, req *Request, resp *Response) error {
	return f(inst, req, resp)
}

// Service is one entry of a service table.
type Service struct {
	Number  wire.Service
	Name    string
	Handler Handler
}

// serviceTable is a fixed-capacity table of services.
type serviceTable struct {
	entries []Service
}

func newServiceTable(capacity int) *serviceTable {
	return &serviceTable{entries: make([]Service, 0, capacity)}
}

// insert overwrites the entry with the same number or appends a new one.
func (t *serviceTable) insert(number wire.Service, h Handler, name string) error {
	for i := range t.entries {
		if t.entries[i].Number == number {
			t.entries[i] = Service{Number: number, Name: name, Handler: h}
			return nil
		}
	}
	if len(t.entries) == cap(t.entries) {
		return fmt.Errorf("%w: no slot for service 0x%02X (%s), capacity %d",
			ErrServiceCapacity, uint8(number), name, cap(t.entries))
	}
	t.entries = append(t.entries, Service{Number: number, Name: name, Handler: h})
	return nil
}

func (t *serviceTable) find(number wire.Service) *Service {
	for i := range t.entries {
		if t.entries[i].Number == number {
			return &t.entries[i]
		}
	}
	return nil
}

func (t *serviceTable) list() []Service {
	out := make([]Service, len(t.entries))
	copy(out, t.entries)
	return out
}
