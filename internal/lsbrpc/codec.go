// Package lsbrpc carries daemon calls over gRPC.
//
// Messages are plain Go structs encoded as JSON, so the service is described by a hand-written grpc.ServiceDesc
// instead of generated protobuf code. Clients and servers force the JSON codec on every call.
package lsbrpc

import (
	"encoding/json"

	"github.com/pkg/errors"
	"google.golang.org/grpc/encoding"
)

const codecName = "json"

type jsonCodec struct{}

// Registered so that servers pick the codec from the content subtype that clients send.
func init() {
	encoding.RegisterCodec(jsonCodec{})
}

var _ encoding.Codec = jsonCodec{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	return data, errors.WithStack(err)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return errors.WithStack(json.Unmarshal(data, v))
}

func (jsonCodec) Name() string {
	return codecName
}
