package authn

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shif-works/conduit/pkg/httputil"
	"github.com/shif-works/conduit/pkg/token"
)

const bearerScheme = "Bearer "

// TokenFromHeader reads a bearer token from the Authorization header.
// An absent header, or one with a different scheme, yields the empty
// string; that is "no credential", not an error.
func TokenFromHeader(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > len(bearerScheme) && strings.EqualFold(header[:len(bearerScheme)], bearerScheme) {
		return header[len(bearerScheme):]
	}
	return ""
}

// Required returns middleware that rejects the request with 401 unless a
// valid token is presented. The downstream handler never runs without a
// verified identity in the request context.
func Required(ts *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := TokenFromHeader(r)
			if tokenStr == "" {
				slog.Debug("Unauthenticated request to protected resource", "path", r.URL.Path)
				httputil.Error(w, r, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := ts.Verify(tokenStr)
			if err != nil {
				logVerifyFailure(r, err)
				httputil.Error(w, r, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := WithAuthUser(r.Context(), &AuthUser{UserID: claims.UserID, Username: claims.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Optional returns middleware that attaches an identity when a valid
// token is presented and continues anonymously otherwise. An invalid or
// expired token counts as "no credential supplied" so public endpoints
// degrade gracefully instead of blocking.
func Optional(ts *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := TokenFromHeader(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := ts.Verify(tokenStr)
			if err != nil {
				logVerifyFailure(r, err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithAuthUser(r.Context(), &AuthUser{UserID: claims.UserID, Username: claims.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Signature failures get a distinct warning for security auditing;
// expired and malformed tokens are routine client noise.
func logVerifyFailure(r *http.Request, err error) {
	switch {
	case errors.Is(err, token.ErrBadSignature):
		slog.Warn("Token signature verification failed", "path", r.URL.Path, "remote", r.RemoteAddr)
	case errors.Is(err, token.ErrTokenExpired):
		slog.Debug("Expired token presented", "path", r.URL.Path)
	default:
		slog.Debug("Malformed token presented", "path", r.URL.Path)
	}
}
