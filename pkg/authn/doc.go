// Package authn provides the request authentication middleware.
//
// Handlers declare whether authentication is mandatory or optional by
// choosing the middleware mode:
//
//	r.Group(func(r chi.Router) {
//		r.Use(authn.Required(tokenService))
//		r.Post("/api/articles", handle.CreateArticle)
//	})
//
//	r.Group(func(r chi.Router) {
//		r.Use(authn.Optional(tokenService))
//		r.Get("/api/articles/feed", handle.Feed)
//	})
//
// Required rejects with 401 before the downstream handler runs unless a
// valid bearer token is presented. Optional treats a missing, malformed
// or expired token as "no credential supplied" and continues anonymously.
//
// On success an AuthUser is attached to the request context, read-only
// for the rest of the request:
//
//	user, ok := authn.GetAuthUser(r.Context())
package authn
