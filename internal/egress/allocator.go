// Package egress picks outbound IPv6 source addresses inside a routed /48.
//
// An address is laid out as 48 network bits, a 16-bit range id and 64 random
// host bits, so workers given distinct range ids never collide.
package egress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"net/netip"
)

const PrefixBits = 48

var ErrUnsupportedPrefix = errors.New("egress: only IPv6 /48 prefixes are supported")

// ParsePrefix validates an "address/48" string and masks it to its network.
func ParsePrefix(s string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("parse prefix %q: %w", s, err)
	}
	if !p.Addr().Is6() || p.Addr().Is4In6() || p.Bits() != PrefixBits {
		return netip.Prefix{}, fmt.Errorf("%w: %s", ErrUnsupportedPrefix, s)
	}
	return p.Masked(), nil
}

type Allocator struct {
	prefix  netip.Prefix
	rangeID uint16
	random  func() uint64
}

func NewAllocator(prefix string, rangeID uint16) (*Allocator, error) {
	p, err := ParsePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return &Allocator{prefix: p, rangeID: rangeID, random: rand.Uint64}, nil
}

func (a *Allocator) Prefix() netip.Prefix {
	return a.prefix
}

func (a *Allocator) RangeID() uint16 {
	return a.rangeID
}

// WithRange returns an allocator over the same prefix drawing from another range.
func (a *Allocator) WithRange(rangeID uint16) *Allocator {
	cp := *a
	cp.rangeID = rangeID
	return &cp
}

// Next draws a fresh address in the allocator's range.
func (a *Allocator) Next() netip.Addr {
	b := a.prefix.Addr().As16()
	binary.BigEndian.PutUint16(b[6:8], a.rangeID)
	binary.BigEndian.PutUint64(b[8:16], a.random())
	return netip.AddrFrom16(b)
}

// RandomRange draws a range id uniformly.
func RandomRange() uint16 {
	return uint16(rand.Intn(1 << 16))
}
