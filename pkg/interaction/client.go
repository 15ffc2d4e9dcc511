package interaction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cip-stack/cip-go/pkg/wire"
)

// Client errors.
var (
	ErrRequestTimeout  = errors.New("request timed out")
	ErrClientClosed    = errors.New("client is closed")
	ErrUnexpectedReply = errors.New("unexpected reply")
)

// Transport carries one encoded request to a message router and returns
// the encoded reply.
type Transport interface {
	RoundTrip(ctx context.Context, request []byte) ([]byte, error)
}

// Client provides a high-level API for explicit messaging.
type Client struct {
	mu sync.RWMutex

	transport Transport
	timeout   time.Duration
	closed    bool
}

// NewClient creates a new client on top of transport.
func NewClient(transport Transport) *Client {
	return &Client{
		transport: transport,
		timeout:   30 * time.Second,
	}
}

// SetTimeout sets the request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = timeout
}

// Close closes the client. Later requests fail with ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Send encodes req, waits for the reply and decodes it. A reply with a
// non-success status is returned together with a *wire.StatusError.
func (c *Client) Send(ctx context.Context, req wire.Request) (wire.Response, error) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return wire.Response{}, ErrClientClosed
	}
	timeout := c.timeout
	c.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := c.transport.RoundTrip(ctx, wire.AppendRequest(nil, req))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
			return wire.Response{}, ErrRequestTimeout
		}
		return wire.Response{}, err
	}

	resp, err := wire.DecodeResponse(raw)
	if err != nil {
		return wire.Response{}, fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
	}
	if resp.Service.Request() != req.Service {
		return resp, fmt.Errorf("%w: %s in reply to %s", ErrUnexpectedReply, resp.Service, req.Service)
	}
	if !resp.GeneralStatus.IsSuccess() {
		return resp, &wire.StatusError{Status: resp.GeneralStatus, Extended: resp.AdditionalStatus}
	}
	return resp, nil
}

// GetAttributeSingle reads one attribute and returns its encoded value.
func (c *Client) GetAttributeSingle(ctx context.Context, classID, instance, attribute uint16) ([]byte, error) {
	resp, err := c.Send(ctx, wire.Request{
		Service: wire.ServiceGetAttributeSingle,
		Path:    wire.NewPath(classID, instance, attribute),
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetAttributeAll reads the get-all attributes of an instance.
func (c *Client) GetAttributeAll(ctx context.Context, classID, instance uint16) ([]byte, error) {
	resp, err := c.Send(ctx, wire.Request{
		Service: wire.ServiceGetAttributeAll,
		Path:    wire.NewInstancePath(classID, instance),
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SetAttributeSingle writes one encoded attribute value.
func (c *Client) SetAttributeSingle(ctx context.Context, classID, instance, attribute uint16, value []byte) error {
	_, err := c.Send(ctx, wire.Request{
		Service: wire.ServiceSetAttributeSingle,
		Path:    wire.NewPath(classID, instance, attribute),
		Data:    value,
	})
	return err
}

// ReadAttribute reads one attribute and decodes it into v, which must be
// a pointer of the Go type matching dataType.
func (c *Client) ReadAttribute(ctx context.Context, path wire.Path, dataType wire.DataType, v any) error {
	data, err := c.GetAttributeSingle(ctx, path.ClassID, path.InstanceNumber, path.AttributeNumber)
	if err != nil {
		return err
	}
	if _, err := wire.Decode(data, dataType, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// WriteAttribute encodes v as dataType and writes it.
func (c *Client) WriteAttribute(ctx context.Context, path wire.Path, dataType wire.DataType, v any) error {
	w := wire.NewWriter(DefaultReplyBufferSize)
	if _, err := wire.Encode(w, dataType, v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return c.SetAttributeSingle(ctx, path.ClassID, path.InstanceNumber, path.AttributeNumber, w.Bytes())
}
