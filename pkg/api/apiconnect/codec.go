// Package apiconnect holds the Connect clients and handlers of the
// allocash.v1 services.
package apiconnect

import (
	"connectrpc.com/connect"

	"github.com/mmynk/allocash/pkg/api"
)

const (
	codecJSON        = "json"
	codecJSONCharset = "json; charset=utf-8"
)

// handlerCodecs replaces Connect's protobuf JSON codecs with the plain JSON
// codec under both content-type names.
func handlerCodecs() []connect.HandlerOption {
	return []connect.HandlerOption{
		connect.WithCodec(api.NewJSONCodec(codecJSON)),
		connect.WithCodec(api.NewJSONCodec(codecJSONCharset)),
	}
}
