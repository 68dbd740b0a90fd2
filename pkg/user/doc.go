// Package user provides user accounts: registration, profile lookup and
// credential management.
//
// The package follows the repository pattern: a Repository interface with
// PostgreSQL and in-memory implementations, a Service holding the
// business rules, and an HTTP Handle registering the routes.
//
//	repo := user.NewPostgresRepository(pool)
//	service := user.NewService(repo, hasher)
//	handle := user.NewHandle(service, tokens)
//	handle.RegisterRoutes(r)
//
// Registration hashes the password with a fresh salt and returns the new
// account together with an access token. Passwords are never stored or
// logged in plaintext; only the salt/digest pair is persisted, and the
// salt is regenerated on every password change.
package user
