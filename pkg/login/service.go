package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shif-works/conduit/pkg/password"
	"github.com/shif-works/conduit/pkg/token"
	"github.com/shif-works/conduit/pkg/user"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password. Callers must not distinguish the two in responses.
var ErrInvalidCredentials = errors.New("email or password is invalid")

// UserFinder is the identity lookup the login flow consumes. It is
// satisfied by user.Repository.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (user.User, error)
}

// Result is a successful login: the resolved user plus a fresh token.
type Result struct {
	User  user.User
	Token string
}

// Service decides login attempts
type Service struct {
	users  UserFinder
	hasher password.Hasher
	tokens *token.Service
}

// NewService creates a new login service
func NewService(users UserFinder, hasher password.Hasher, tokens *token.Service) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login verifies the email/password pair and mints a token on success.
// The credential record is read once, so a concurrent password change is
// observed as either entirely old or entirely new.
func (s *Service) Login(ctx context.Context, email, plaintext string) (Result, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return Result{}, ErrInvalidCredentials
		}
		return Result{}, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := s.hasher.Verify(plaintext, u.Salt, u.Digest)
	if err != nil {
		// Malformed stored credential: a data-integrity fault, not a
		// failed attempt. Never mapped to invalid credentials.
		slog.Error("Stored credential is unusable", "user_id", u.ID, "err", err)
		return Result{}, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return Result{}, ErrInvalidCredentials
	}

	tok, _, err := s.tokens.Issue(u.ID.String(), u.Username)
	if err != nil {
		return Result{}, fmt.Errorf("issuing token: %w", err)
	}

	slog.Info("User logged in", "username", u.Username, "id", u.ID)
	return Result{User: u, Token: tok}, nil
}
