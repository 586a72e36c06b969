// Package api defines the request and response messages of the allocash.v1
// RPC services. Messages are plain structs carried over Connect with the JSON
// codec in this package. Amounts are decimal strings on the wire.
package api
