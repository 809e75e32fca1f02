// Package services contains server-side business logic. This file implements
// AuthService, which registers users, logs them in and resolves bearer
// tokens back to directory users.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/password"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

// AuthService authenticates users against a directory.
//
// It keeps no per-call state and is safe for concurrent use.
type AuthService struct {
	users     users.Repository
	hasher    password.Hasher
	jwtSecret []byte
	validity  time.Duration
	logger    logging.Logger

	decoyOnce sync.Once
	decoy     string
}

// NewAuthService constructs an AuthService. A validity <= 0 issues tokens
// without expiry.
func NewAuthService(repo users.Repository, hasher password.Hasher, secret []byte, validity time.Duration, l logging.Logger) *AuthService {
	return &AuthService{
		users:     repo,
		hasher:    hasher,
		jwtSecret: secret,
		validity:  validity,
		logger:    l.With("module", "auth_service"),
	}
}

// ResolveIdentity maps an authorization header value of the form
// "Bearer <token>" to the user the token was issued for.
func (s *AuthService) ResolveIdentity(ctx context.Context, header string) (*models.User, error) {
	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok || token == "" {
		return nil, common.ErrUnauthenticated
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "error", err)
		return nil, common.ErrUnauthenticated
	}

	u, err := s.users.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		s.logger.Error(ctx, "find user failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrDirectory, err)
	}

	return u, nil
}

// Register creates a user with a hashed credential and returns it together
// with a freshly issued token.
func (s *AuthService) Register(ctx context.Context, email, secret, name string) (*models.AuthResult, error) {
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	u, err := s.users.CreateUserWithCredential(ctx, email, name, hash)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		s.logger.Error(ctx, "create user failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrDirectory, err)
	}

	return s.issue(u)
}

// Login checks secret against the credential stored for email. Unknown
// email and wrong secret fail the same way.
func (s *AuthService) Login(ctx context.Context, email, secret string) (*models.AuthResult, error) {
	acc, err := s.users.FindCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep the cost of a miss close to the cost of a hit
			s.hasher.Verify(secret, s.decoyHash())
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "find credential failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrDirectory, err)
	}

	if !s.hasher.Verify(secret, acc.Hash) {
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(&acc.User)
}

func (s *AuthService) issue(u *models.User) (*models.AuthResult, error) {
	token, err := auth.GenerateToken(auth.ClaimsFor(*u), s.jwtSecret, s.validity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return &models.AuthResult{User: *u, Token: token}, nil
}

func (s *AuthService) decoyHash() string {
	s.decoyOnce.Do(func() {
		h, err := s.hasher.Hash(string(common.GenerateRandByteArray(16)))
		if err == nil {
			s.decoy = h
		}
	})
	return s.decoy
}
