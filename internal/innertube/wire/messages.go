package wire

import (
	"encoding/base64"
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	continuationField   = 80226972
	continuationChannel = 2
	continuationRouting = 3
)

var ErrBadContinuation = errors.New("wire: not a synthesized continuation")

// SynthesizeContinuation builds the token that opens a listing with no
// discoverable first page: {80226972: {2: channelID, 3: routing}} in binary
// form, base64 with the standard alphabet.
func SynthesizeContinuation(channelID, routing string) string {
	var inner []byte
	inner = protowire.AppendTag(inner, continuationChannel, protowire.BytesType)
	inner = protowire.AppendString(inner, channelID)
	inner = protowire.AppendTag(inner, continuationRouting, protowire.BytesType)
	inner = protowire.AppendString(inner, routing)

	var outer []byte
	outer = protowire.AppendTag(outer, continuationField, protowire.BytesType)
	outer = protowire.AppendBytes(outer, inner)

	return base64.StdEncoding.EncodeToString(outer)
}

// ParseContinuation reverses SynthesizeContinuation.
func ParseContinuation(token string) (channelID, routing string, err error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", ErrBadContinuation
	}

	num, typ, n := protowire.ConsumeTag(raw)
	if n < 0 || num != continuationField || typ != protowire.BytesType {
		return "", "", ErrBadContinuation
	}
	inner, m := protowire.ConsumeBytes(raw[n:])
	if m < 0 {
		return "", "", ErrBadContinuation
	}

	for len(inner) > 0 {
		num, typ, n := protowire.ConsumeTag(inner)
		if n < 0 || typ != protowire.BytesType {
			return "", "", ErrBadContinuation
		}
		v, m := protowire.ConsumeString(inner[n:])
		if m < 0 {
			return "", "", ErrBadContinuation
		}
		switch num {
		case continuationChannel:
			channelID = v
		case continuationRouting:
			routing = v
		}
		inner = inner[n+m:]
	}
	return channelID, routing, nil
}

type HideOption int32

const (
	HideUser   HideOption = 1
	UnhideUser HideOption = 2
)

const (
	hideActionUser   = 1
	hideActionOption = 2
)

// HideUserAction encodes the flag endpoint's action blob, base64 standard.
func HideUserAction(userID string, opt HideOption) string {
	var b []byte
	b = protowire.AppendTag(b, hideActionUser, protowire.BytesType)
	b = protowire.AppendString(b, userID)
	b = protowire.AppendTag(b, hideActionOption, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(opt))
	return base64.StdEncoding.EncodeToString(b)
}
