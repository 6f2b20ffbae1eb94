package wire

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	ContentTypeJSON     = "application/json"
	ContentTypeProtobuf = "application/x-protobuf"
)

var (
	ErrUnknownMessage = errors.New("wire: message not in schema")
	ErrMalformed      = errors.New("wire: malformed body")
)

// Codec converts between a message's JSON form and its wire bytes. message
// is the fully qualified schema name of the request or response type.
type Codec interface {
	ContentType() string
	Encode(message string, payload []byte) ([]byte, error)
	Decode(message string, body []byte) ([]byte, error)
}

// JSONCodec sends and receives JSON unchanged.
type JSONCodec struct{}

func (JSONCodec) ContentType() string {
	return ContentTypeJSON
}

func (JSONCodec) Encode(_ string, payload []byte) ([]byte, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("%w: request payload", ErrMalformed)
	}
	return payload, nil
}

func (JSONCodec) Decode(_ string, body []byte) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformed
	}
	return body, nil
}

// ProtoCodec speaks the binary wire format using descriptors compiled by
// protoc --descriptor_set_out. Unknown response fields are ignored.
type ProtoCodec struct {
	files *protoregistry.Files
}

func NewProtoCodec(set *descriptorpb.FileDescriptorSet) (*ProtoCodec, error) {
	files, err := protodesc.NewFiles(set)
	if err != nil {
		return nil, fmt.Errorf("build descriptor registry: %w", err)
	}
	return &ProtoCodec{files: files}, nil
}

// LoadProtoCodec reads a serialized FileDescriptorSet from disk.
func LoadProtoCodec(path string) (*ProtoCodec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor set: %w", err)
	}

	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse descriptor set: %w", err)
	}
	return NewProtoCodec(&set)
}

func (c *ProtoCodec) ContentType() string {
	return ContentTypeProtobuf
}

func (c *ProtoCodec) message(name string) (*dynamicpb.Message, error) {
	d, err := c.files.FindDescriptorByName(protoreflect.FullName(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, name)
	}
	md, ok := d.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a message", ErrUnknownMessage, name)
	}
	return dynamicpb.NewMessage(md), nil
}

func (c *ProtoCodec) Encode(message string, payload []byte) ([]byte, error) {
	msg, err := c.message(message)
	if err != nil {
		return nil, err
	}
	if err := protojson.Unmarshal(payload, msg); err != nil {
		return nil, fmt.Errorf("map payload onto %s: %w", message, err)
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(msg)
}

func (c *ProtoCodec) Decode(message string, body []byte) ([]byte, error) {
	msg, err := c.message(message)
	if err != nil {
		return nil, err
	}
	if err := proto.Unmarshal(body, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return protojson.Marshal(msg)
}
