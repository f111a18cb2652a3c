package service

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec marshals plain Go request and response structs. It is registered under
// the name "json", replacing Connect's protojson codec for application/json.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// WithJSON is the codec option every handler and client in this package uses.
func WithJSON() connect.Option { return connect.WithCodec(jsonCodec{}) }
