package toolbridge

import (
	"context"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
)

// Client is the capability object handed to a tool's Execute function.
// It is valid only while the surrounding ExecuteTool call is in flight and
// becomes permanently invalid the instant that call returns, regardless of
// how the invocation itself settles.
type Client struct {
	callID string

	mu     sync.Mutex
	active bool
}

func newClient(callID string) *Client {
	return &Client{callID: callID, active: true}
}

// RequestUserInteraction runs fn while the owning call is active. Once the
// call has settled it fails with inactive_context, even through a captured
// reference. Liveness is checked at entry: an interaction started before
// the call settled may still be running after it.
func (c *Client) RequestUserInteraction(ctx context.Context, fn func(context.Context) error) error {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	if !active {
		return newError(CodeInactiveContext, "tool execution context is no longer active")
	}
	if fn == nil {
		return nil
	}

	requestID, err := gonanoid.New()
	if err != nil {
		requestID = c.callID
	}

	log.Debug().
		Str("call_id", c.callID).
		Str("request_id", requestID).
		Msg("User interaction requested")

	return fn(ctx)
}

// deactivate invalidates the client. Called by the bridge on every exit
// path of ExecuteTool.
func (c *Client) deactivate() {
	c.mu.Lock()
	c.active = false
	c.mu.Unlock()
}
