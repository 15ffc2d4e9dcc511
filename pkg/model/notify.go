package model

import "github.com/cip-stack/cip-go/pkg/wire"

// Notify routes a request to the addressed instance of c and invokes the
// matching service handler.
//
// An unknown instance is answered with StatusPathDestinationUnknown and a
// missing service with StatusServiceNotSupported, both with an empty
// payload and a nil error. Otherwise the handler's result is returned as is.
func Notify(c *Class, req *Request, resp *Response) error {
	inst := c.FindInstance(req.Path.InstanceNumber)
	if inst == nil {
		resp.Reject(req, wire.StatusPathDestinationUnknown)
		return nil
	}

	svc := inst.FindService(req.Service)
	if svc == nil {
		resp.Reject(req, wire.StatusServiceNotSupported)
		return nil
	}
	return svc.Handler.Serve(inst, req, resp)
}
