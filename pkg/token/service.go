package token

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultLifetime is how long an issued token stays valid. Tokens are
	// long-lived by design: there is no refresh flow, so the lifetime
	// trades revocability for statelessness.
	DefaultLifetime = 60 * 24 * time.Hour

	// DefaultIssuer is the iss claim stamped on issued tokens
	DefaultIssuer = "conduit"
)

// Verification failures. Middleware treats all three as unauthenticated
// but logs signature failures separately for security auditing.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrBadSignature   = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
)

// Claims is the fixed claims shape embedded in every access token.
// Tokens whose payload does not decode into it are rejected.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed access tokens. The signing secret is
// injected at construction and immutable afterwards, so a Service is safe
// for concurrent use.
type Service struct {
	secret   []byte
	lifetime time.Duration
	issuer   string
	now      func() time.Time
}

// Option is a function that configures a Service
type Option func(*Service)

// WithLifetime sets the token validity duration
func WithLifetime(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lifetime = d
		}
	}
}

// WithIssuer sets the iss claim for issued tokens
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		s.issuer = issuer
	}
}

// WithClock overrides the time source, used by tests to control expiry
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a token service signing with the given secret
func NewService(secret []byte, opts ...Option) *Service {
	s := &Service{
		secret:   secret,
		lifetime: DefaultLifetime,
		issuer:   DefaultIssuer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue mints a signed token for the user and returns it with its expiry.
func (s *Service) Issue(userID, username string) (string, time.Time, error) {
	now := s.now().UTC()
	expiry := now.Add(s.lifetime)

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		slog.Error("Failed to sign access token", "err", err)
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiry, nil
}

// Verify parses the token, checks its signature and expiry, and returns
// the embedded claims. Failures are mapped onto the package sentinels.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		return nil, ErrTokenMalformed
	}

	// Enforce the fixed claims shape: a signed token without a subject
	// user id is not one of ours.
	if claims.UserID == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
