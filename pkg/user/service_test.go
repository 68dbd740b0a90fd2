package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shif-works/conduit/pkg/password"
)

func newTestService() (*Service, *InMemoryRepository, password.Hasher) {
	repo := NewInMemoryRepository()
	hasher := password.NewPbkdf2Hasher(password.WithIterations(1000), password.WithKeyLength(64))
	return NewService(repo, hasher), repo, hasher
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("StoresHashedCredential", func(t *testing.T) {
		svc, repo, hasher := newTestService()

		u, err := svc.Register(ctx, RegisterParams{
			Username: "Jake",
			Email:    "Jake@Example.com",
			Password: "jakejake",
		})
		require.NoError(t, err)

		assert.Equal(t, "jake", u.Username, "username is stored lowercase")
		assert.Equal(t, "jake@example.com", u.Email, "email is stored lowercase")
		assert.Equal(t, DefaultAvatarURL, u.Avatar)

		stored, err := repo.FindByEmail(ctx, "jake@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, stored.Salt)
		assert.NotEmpty(t, stored.Digest)
		assert.NotContains(t, stored.Digest, "jakejake", "plaintext must not be stored")

		ok, err := hasher.Verify("jakejake", stored.Salt, stored.Digest)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Register(ctx, RegisterParams{Username: "jake", Email: "jake@example.com", Password: "jakejake"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, RegisterParams{Username: "jake", Email: "other@example.com", Password: "jakejake"})
		var duplicate DuplicateUserError
		assert.ErrorAs(t, err, &duplicate)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Register(ctx, RegisterParams{Username: "jake", Email: "jake@example.com", Password: "jakejake"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, RegisterParams{Username: "other", Email: "jake@example.com", Password: "jakejake"})
		var duplicate DuplicateUserError
		assert.ErrorAs(t, err, &duplicate)
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Register(ctx, RegisterParams{Username: "jake", Email: "jake@example.com", Password: ""})
		assert.Error(t, err)
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Register(ctx, RegisterParams{Username: "jake", Email: "jake@example.com", Password: "jakejake"})
	require.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		u, err := svc.Profile(ctx, "Jake")
		require.NoError(t, err)
		assert.Equal(t, "jake", u.Username)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := svc.Profile(ctx, "nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, repo, hasher := newTestService()

	u, err := svc.Register(ctx, RegisterParams{Username: "jake", Email: "jake@example.com", Password: "oldpassword"})
	require.NoError(t, err)

	before, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, u.ID, "newpassword"))

	after, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)

	assert.NotEqual(t, before.Salt, after.Salt, "the salt must be regenerated on password change")
	assert.NotEqual(t, before.Digest, after.Digest)

	ok, err := hasher.Verify("newpassword", after.Salt, after.Digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("oldpassword", after.Salt, after.Digest)
	require.NoError(t, err)
	assert.False(t, ok)
}
