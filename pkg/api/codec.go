package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSONCodec marshals plain Go structs for Connect. It replaces Connect's
// default JSON codec, which only accepts protobuf messages.
type JSONCodec struct {
	name string
}

// NewJSONCodec returns a codec registered under name, e.g. "json" or
// "json; charset=utf-8".
func NewJSONCodec(name string) *JSONCodec {
	return &JSONCodec{name: name}
}

// Name implements connect.Codec.
func (c *JSONCodec) Name() string { return c.name }

// Marshal implements connect.Codec.
func (c *JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// MarshalStable produces the same bytes for the same message, which Connect
// relies on for cacheable GET requests.
func (c *JSONCodec) MarshalStable(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// IsBinary implements Connect's stable codec interface.
func (c *JSONCodec) IsBinary() bool { return false }

// Unmarshal implements connect.Codec. Unknown fields are rejected.
func (c *JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return fmt.Errorf("invalid %s message: %w", c.name, err)
	}
	return nil
}
