package model

import "github.com/cip-stack/cip-go/pkg/wire"

// Request is a service request addressed to a class.
type Request struct {
	Service wire.Service
	Path    wire.Path
	Data    []byte
}

// Response collects a handler's reply. Data is bounded by the capacity
// passed to NewResponse.
type Response struct {
	Service          wire.Service
	GeneralStatus    wire.Status
	AdditionalStatus []uint16
	Data             *wire.Writer
}

// NewResponse creates a response whose payload holds at most capacity bytes.
func NewResponse(capacity int) *Response {
	return &Response{Data: wire.NewWriter(capacity)}
}

// Reply sets the reply service for req and the general status and clears
// the additional status.
func (r *Response) Reply(req *Request, status wire.Status) {
	r.Service = req.Service.Reply()
	r.GeneralStatus = status
	r.AdditionalStatus = nil
}

// Reject replies with status and an empty payload.
func (r *Response) Reject(req *Request, status wire.Status) {
	r.Reply(req, status)
	r.Data.Reset()
}

// Payload returns the bytes written so far.
func (r *Response) Payload() []byte {
	return r.Data.Bytes()
}

// Wire returns the message router form of the response.
func (r *Response) Wire() wire.Response {
	return wire.Response{
		Service:          r.Service,
		GeneralStatus:    r.GeneralStatus,
		AdditionalStatus: r.AdditionalStatus,
		Data:             r.Payload(),
	}
}
