package authn

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shif-works/conduit/pkg/token"
)

type capture struct {
	called bool
	user   *AuthUser
	ok     bool
}

func captureHandler(c *capture) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.user, c.ok = GetAuthUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func issueFor(t *testing.T, ts *token.Service, userID, username string) string {
	t.Helper()
	tok, _, err := ts.Issue(userID, username)
	require.NoError(t, err)
	return tok
}

func TestRequired(t *testing.T) {
	ts := token.NewService([]byte("test-secret"))

	t.Run("NoToken", func(t *testing.T) {
		var c capture
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)

		Required(ts)(captureHandler(&c)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, c.called, "the downstream handler must not run")
		assert.JSONEq(t, `{"message":"unauthorized"}`, rec.Body.String())
	})

	t.Run("ValidToken", func(t *testing.T) {
		userID := uuid.New().String()
		var c capture
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issueFor(t, ts, userID, "jake"))

		Required(ts)(captureHandler(&c)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, c.called)
		require.True(t, c.ok)
		assert.Equal(t, userID, c.user.UserID)
		assert.Equal(t, "jake", c.user.Username)
	})

	t.Run("TamperedToken", func(t *testing.T) {
		tok := issueFor(t, ts, uuid.New().String(), "jake")
		parts := strings.Split(tok, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}

		var c capture
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+parts[0]+"."+parts[1]+"."+string(sig))

		Required(ts)(captureHandler(&c)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, c.called)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		past := time.Now().Add(-90 * 24 * time.Hour)
		expiredIssuer := token.NewService([]byte("test-secret"),
			token.WithClock(func() time.Time { return past }))

		var c capture
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issueFor(t, expiredIssuer, uuid.New().String(), "jake"))

		Required(ts)(captureHandler(&c)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, c.called)
	})

	t.Run("WrongScheme", func(t *testing.T) {
		var c capture
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token "+issueFor(t, ts, uuid.New().String(), "jake"))

		Required(ts)(captureHandler(&c)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, c.called)
	})
}

func TestOptional(t *testing.T) {
	ts := token.NewService([]byte("test-secret"))

	t.Run("NoToken", func(t *testing.T) {
		var c capture
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/public", nil)

		Optional(ts)(captureHandler(&c)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, c.called)
		assert.False(t, c.ok, "the request should proceed anonymously")
	})

	t.Run("ValidToken", func(t *testing.T) {
		userID := uuid.New().String()
		var c capture
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set("Authorization", "Bearer "+issueFor(t, ts, userID, "jake"))

		Optional(ts)(captureHandler(&c)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, c.called)
		require.True(t, c.ok)
		assert.Equal(t, userID, c.user.UserID)
	})

	t.Run("ExpiredTokenIsAnonymous", func(t *testing.T) {
		past := time.Now().Add(-90 * 24 * time.Hour)
		expiredIssuer := token.NewService([]byte("test-secret"),
			token.WithClock(func() time.Time { return past }))

		var c capture
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set("Authorization", "Bearer "+issueFor(t, expiredIssuer, uuid.New().String(), "jake"))

		Optional(ts)(captureHandler(&c)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, c.called, "an expired token must not block an optional endpoint")
		assert.False(t, c.ok)
	})

	t.Run("GarbageTokenIsAnonymous", func(t *testing.T) {
		var c capture
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		Optional(ts)(captureHandler(&c)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, c.called)
		assert.False(t, c.ok)
	})
}

func TestGetAuthUser_EmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	user, ok := GetAuthUser(req.Context())
	assert.False(t, ok)
	assert.Nil(t, user)
}
