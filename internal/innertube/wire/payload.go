// Package wire holds the request payload builder, the codecs that move
// payloads and responses between their JSON form and the bytes on the wire,
// and the few messages that are embedded as opaque binary strings.
package wire

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Payload is a request message in proto3 JSON form, built by dotted paths.
type Payload struct {
	raw []byte
	err error
}

func NewPayload() *Payload {
	return &Payload{raw: []byte(`{}`)}
}

// Set assigns v at a dotted path; the first failure sticks and is reported
// by Bytes.
func (p *Payload) Set(path string, v any) *Payload {
	if p.err != nil {
		return p
	}
	raw, err := sjson.SetBytes(p.raw, path, v)
	if err != nil {
		p.err = fmt.Errorf("set %s: %w", path, err)
		return p
	}
	p.raw = raw
	return p
}

func (p *Payload) Bytes() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.raw, nil
}
