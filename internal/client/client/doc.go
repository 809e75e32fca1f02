// Package client talks to the gophauth server.
//
// Client is the transport-agnostic contract used by the CLI; GRPCClient is
// its gRPC implementation. GRPCClient keeps the token returned by Register
// or Login and attaches it as "authorization: Bearer <token>" to every
// later call through a unary interceptor.
//
// Server status codes are mapped to sentinel errors (ErrUnauthorized,
// ErrEmailTaken, ErrInvalidArgument, ErrUnavailable) that callers match
// with errors.Is.
package client
