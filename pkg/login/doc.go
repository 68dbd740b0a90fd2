// Package login orchestrates the login flow: resolve the identity by
// email, verify the password against the stored credential, and mint an
// access token on success.
//
// An unknown email and a wrong password fail identically with
// ErrInvalidCredentials so responses do not reveal whether an account
// exists. The flow is read-then-decide: it never writes.
package login
