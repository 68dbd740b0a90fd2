package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/shif-works/conduit/pkg/password"
)

// DefaultAvatarURL is assigned to new accounts until an avatar is uploaded
const DefaultAvatarURL = "https://shif-bucket.s3.eu-central-1.amazonaws.com/avatar.png"

// Service holds the user business rules
type Service struct {
	repo   Repository
	hasher password.Hasher
}

// NewService creates a new user service
func NewService(repo Repository, hasher password.Hasher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
	}
}

// RegisterParams represents parameters for registering a user
type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// Register creates a new account. The password is hashed with a fresh
// salt before anything is persisted; the plaintext never leaves this
// call.
func (s *Service) Register(ctx context.Context, params RegisterParams) (User, error) {
	params.Username = strings.ToLower(strings.TrimSpace(params.Username))
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))

	salt, digest, err := s.hasher.Hash(params.Password)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, params.Username, params.Email)
	if err != nil {
		return User{}, fmt.Errorf("checking existing user: %w", err)
	}
	if exists {
		return User{}, DuplicateUserError{Username: params.Username, Email: params.Email}
	}

	createParams := CreateUserParams{}
	copier.Copy(&createParams, params)
	createParams.Avatar = DefaultAvatarURL
	createParams.Salt = salt
	createParams.Digest = digest

	u, err := s.repo.Create(ctx, createParams)
	if err != nil {
		return User{}, fmt.Errorf("creating user: %w", err)
	}

	slog.Info("Registered user", "username", u.Username, "id", u.ID)
	return u, nil
}

// Profile returns the user with the given username
func (s *Service) Profile(ctx context.Context, username string) (User, error) {
	return s.repo.FindByUsername(ctx, strings.ToLower(username))
}

// ChangePassword replaces the stored credential. The salt is regenerated,
// never extended or reused.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	salt, digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.repo.UpdateCredential(ctx, UpdateCredentialParams{ID: id, Salt: salt, Digest: digest}); err != nil {
		return fmt.Errorf("updating credential: %w", err)
	}
	return nil
}
