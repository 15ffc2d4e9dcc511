package model

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cip-stack/cip-go/pkg/wire"
)

// GetAttributeSingle serves Get_Attribute_Single. It is also invoked once
// per attribute by GetAttributeAll, in which case the get-all visibility
// flag applies and hidden attributes are skipped with success.
func GetAttributeSingle(inst *Instance, req *Request, resp *Response) error {
	required := GetableSingle
	status := wire.StatusAttributeNotSupported
	if req.Service == wire.ServiceGetAttributeAll {
		required = GetableAll
		status = wire.StatusSuccess
	}
	resp.Reply(req, status)

	attr := inst.Attribute(req.Path.AttributeNumber)
	if attr == nil || attr.Flags&required == 0 {
		return nil
	}

	if attr.Type == wire.TypeByteArray && inst.class.id == wire.ClassAssembly {
		if r := inst.class.registry; r != nil && r.assemblyHook != nil {
			r.assemblyHook.BeforeAssemblyDataSend(inst)
		}
	}

	if _, err := attr.Encode(resp.Data); err != nil {
		return wire.NewStatusError(wire.StatusReplyDataTooLarge,
			fmt.Errorf("encode attribute %d: %w", attr.Number, err))
	}
	resp.GeneralStatus = wire.StatusSuccess
	return nil
}

// GetAttributeAll serves Get_Attributes_All by calling the instance's
// Get_Attribute_Single service for every attribute below 32 selected by
// the scope's get-all mask, in ascending attribute order. The replies are
// concatenated. If any of them fails, the payload is discarded and the
// error is returned.
func GetAttributeAll(inst *Instance, req *Request, resp *Response) error {
	single := inst.FindService(wire.ServiceGetAttributeSingle)
	if single == nil {
		resp.Reply(req, wire.StatusSuccess)
		return nil
	}

	shape := inst.shape()
	if shape.attributeCapacity == 0 {
		resp.Reject(req, wire.StatusServiceNotSupported)
		return nil
	}

	var selected []*Attribute
	for _, attr := range inst.Attributes() {
		if attr.Number < 32 && shape.getAllMask&(1<<attr.Number) != 0 {
			selected = append(selected, attr)
		}
	}
	sort.Slice(selected, func(a, b int) bool {
		return selected[a].Number < selected[b].Number
	})

	start := resp.Data.Len()
	resp.Reply(req, wire.StatusSuccess)
	sub := *req
	for _, attr := range selected {
		sub.Path.AttributeNumber = attr.Number
		if err := single.Handler.Serve(inst, &sub, resp); err != nil {
			resp.Data.Truncate(start)
			return fmt.Errorf("get attribute all: attribute %d: %w", attr.Number, err)
		}
	}
	return nil
}

// SetAttributeSingle serves Set_Attribute_Single for attributes flagged
// Setable. The value is only changed when the payload holds exactly one
// value of the attribute's type.
func SetAttributeSingle(inst *Instance, req *Request, resp *Response) error {
	resp.Reject(req, wire.StatusSuccess)

	attr := inst.Attribute(req.Path.AttributeNumber)
	if attr == nil || !attr.Type.Decodable() {
		resp.GeneralStatus = wire.StatusAttributeNotSupported
		return nil
	}
	if attr.Flags&Setable == 0 {
		resp.GeneralStatus = wire.StatusAttributeNotSettable
		return nil
	}

	n, err := wire.Measure(req.Data, attr.Type)
	switch {
	case errors.Is(err, wire.ErrShortBuffer):
		resp.GeneralStatus = wire.StatusNotEnoughData
		return nil
	case err != nil:
		return err
	case n < len(req.Data):
		resp.GeneralStatus = wire.StatusTooMuchData
		return nil
	}

	if _, err := wire.Decode(req.Data, attr.Type, attr.Value); err != nil {
		return fmt.Errorf("set attribute %d: %w", attr.Number, err)
	}
	if r := inst.class.registry; r != nil && r.setObserver != nil {
		r.setObserver.AttributeSet(inst, attr)
	}
	return nil
}
