// Package users is the user directory: storage of user records and their
// credentials. The authenticator depends only on Repository.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository looks up and creates users. Implementations return
// common.ErrorNotFound for missing records and common.ErrEmailTaken when
// the email already belongs to another user. Returned values are copies.
type Repository interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)

	// FindCredentialByEmail returns the credential hash joined with its user.
	FindCredentialByEmail(ctx context.Context, email string) (*models.Account, error)

	// CreateUserWithCredential stores the user and its credential hash
	// atomically: either both records exist afterwards or neither does.
	CreateUserWithCredential(ctx context.Context, email, name, hash string) (*models.User, error)
}
