// Package innertube is a client for the video platform's private browse and
// creator APIs. Each operation is built by a Request, sent through a
// Transport bound to an egress address, and extracted into domain records.
package innertube

import (
	"fmt"
	"log/slog"
	"net/netip"
	"strings"
	"sync/atomic"
	"time"

	"tubeharvest/internal/egress"
	"tubeharvest/internal/innertube/wire"
	"tubeharvest/internal/metrics"
)

// Config holds the facade configuration.
type Config struct {
	// Target is the host[:port] requests are dialed to. The logical API
	// host goes in the Host header.
	Target string
	// Prefix is an optional IPv6 "address/48" to draw source addresses from.
	Prefix string
	// RangeID pins the 16 bits after the prefix. Without it every rotation
	// draws a random range.
	RangeID *uint16
	// Codec defaults to JSON.
	Codec       wire.Codec
	InsecureTLS bool
}

// Client binds a target and an egress identity. Sends are safe to run
// concurrently; Rotate swaps the transport for later sends only.
type Client struct {
	target   string
	codec    wire.Codec
	insecure bool

	alloc      *egress.Allocator
	fixedRange bool

	transport atomic.Pointer[Transport]
	now       func() time.Time
	logger    *slog.Logger
}

// New creates a client. A prefix other than an IPv6 /48 is rejected here,
// never at call time.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Target == "" {
		return nil, fmt.Errorf("%w: empty target", ErrInvalidInput)
	}

	c := &Client{
		target:   cfg.Target,
		codec:    cfg.Codec,
		insecure: cfg.InsecureTLS,
		now:      time.Now,
		logger:   logger.With("component", "innertube", "target", cfg.Target),
	}
	if c.codec == nil {
		c.codec = wire.JSONCodec{}
	}

	if cfg.Prefix != "" {
		var rangeID uint16
		if cfg.RangeID != nil {
			rangeID = *cfg.RangeID
			c.fixedRange = true
		} else {
			rangeID = egress.RandomRange()
		}
		alloc, err := egress.NewAllocator(cfg.Prefix, rangeID)
		if err != nil {
			return nil, fmt.Errorf("create allocator: %w", err)
		}
		c.alloc = alloc
	}

	c.transport.Store(c.newTransport())
	return c, nil
}

func (c *Client) newTransport() *Transport {
	opts := TransportOptions{InsecureTLS: c.insecure}
	if alloc := c.alloc; alloc != nil {
		if !c.fixedRange {
			alloc = alloc.WithRange(egress.RandomRange())
		}
		opts.LocalAddr = alloc.Next()
	}
	return NewTransport(opts)
}

// Rotate binds later sends to a freshly drawn source address and returns it.
// Requests already in flight finish on the old transport. Without a prefix
// it only resets connections.
func (c *Client) Rotate() netip.Addr {
	next := c.newTransport()
	if old := c.transport.Swap(next); old != nil {
		old.Close()
	}
	metrics.Metrics.EgressRotations.Inc()
	c.logger.Debug("egress rotated", "local_addr", next.LocalAddr())
	return next.LocalAddr()
}

// LocalAddr is the current source address, invalid when unbound.
func (c *Client) LocalAddr() netip.Addr {
	return c.transport.Load().LocalAddr()
}

func (c *Client) Close() {
	c.transport.Load().Close()
}

// channelUserID strips the "UC" prefix of a channel id. Anything else does
// not identify a channel.
func channelUserID(channelID string) (string, error) {
	userID, ok := strings.CutPrefix(channelID, "UC")
	if !ok || userID == "" {
		return "", fmt.Errorf("channel id %q lacks the UC prefix", channelID)
	}
	return userID, nil
}
