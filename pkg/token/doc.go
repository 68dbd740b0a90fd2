// Package token mints and verifies the signed access tokens that carry a
// user's identity between requests.
//
// Tokens are HS256 JWTs with a fixed claims shape: the user id, the
// username, and an expiry. There is no refresh or revocation mechanism;
// a token stays valid until its expiry, and rotating the signing secret
// invalidates every outstanding token at once.
//
// The signing secret is injected at construction so independent Service
// instances (and their tests) can use distinct keys:
//
//	svc := token.NewService([]byte(cfg.JwtSecret))
//	tok, expiry, err := svc.Issue(user.ID.String(), user.Username)
//	claims, err := svc.Verify(tok)
//
// Verify reports failures through the ErrTokenMalformed, ErrBadSignature
// and ErrTokenExpired sentinels so callers can log signature failures
// distinctly from the rest.
package token
