package grpc

import (
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/password"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC statuses. Unknown errors never leak
// their text to the caller.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "unauthenticated")
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, common.ErrEmailTaken.Error())
	case errors.Is(err, password.ErrSecretTooLong):
		return status.Error(codes.InvalidArgument, "password too long")
	case errors.Is(err, common.ErrDirectory):
		return status.Error(codes.Unavailable, "user directory unavailable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
