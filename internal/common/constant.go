// Package common contains shared constants and sentinel errors used across
// gophauth components.
package common

// AuthorizationHeaderName is the gRPC metadata key that carries the
// "Bearer <token>" credential on inbound and outbound requests.
const AuthorizationHeaderName = "authorization"

// BearerPrefix is the only accepted scheme for AuthorizationHeaderName.
const BearerPrefix = "Bearer "
