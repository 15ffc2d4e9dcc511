package wire

import (
	"encoding/binary"
	"fmt"
)

// Request is a message router request.
type Request struct {
	Service Service
	Path    Path
	Data    []byte
}

// Response is a message router response.
type Response struct {
	Service          Service
	GeneralStatus    Status
	AdditionalStatus []uint16
	Data             []byte
}

// DecodeRequest parses a message router request. On a path error the
// returned request still carries the service code so that a reply can be
// formed. Data aliases the input.
func DecodeRequest(data []byte) (Request, error) {
	if len(data) < 2 {
		return Request{}, fmt.Errorf("%w: request of %d bytes", ErrShortBuffer, len(data))
	}
	req := Request{Service: Service(data[0])}
	p, n, err := DecodeRequestPath(data[1:])
	if err != nil {
		return req, fmt.Errorf("decode request path: %w", err)
	}
	req.Path = p
	req.Data = data[1+n:]
	return req, nil
}

// AppendRequest appends the encoded request to dst.
func AppendRequest(dst []byte, r Request) []byte {
	dst = append(dst, uint8(r.Service))
	dst = AppendRequestPath(dst, r.Path)
	return append(dst, r.Data...)
}

// EncodeResponse encodes a message router response. Additional status
// words beyond MaxAdditionalStatus are dropped.
func EncodeResponse(r Response) []byte {
	additional := capAdditional(r.AdditionalStatus)
	buf := make([]byte, 0, 4+2*len(additional)+len(r.Data))
	buf = append(buf, uint8(r.Service), 0, uint8(r.GeneralStatus), uint8(len(additional)))
	for _, s := range additional {
		buf = binary.LittleEndian.AppendUint16(buf, s)
	}
	return append(buf, r.Data...)
}

// DecodeResponse parses a message router response. Data aliases the input.
func DecodeResponse(data []byte) (Response, error) {
	r := &reader{data: data}
	hdr, err := r.bytes(4)
	if err != nil {
		return Response{}, fmt.Errorf("decode response header: %w", err)
	}
	resp := Response{
		Service:       Service(hdr[0]),
		GeneralStatus: Status(hdr[2]),
	}
	if !resp.Service.IsReply() {
		return Response{}, fmt.Errorf("decode response: service 0x%02X is not a reply", hdr[0])
	}
	for i := 0; i < int(hdr[3]); i++ {
		s, err := r.u16()
		if err != nil {
			return Response{}, fmt.Errorf("decode additional status: %w", err)
		}
		resp.AdditionalStatus = append(resp.AdditionalStatus, s)
	}
	resp.Data = data[r.off:]
	return resp, nil
}
