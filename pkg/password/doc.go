// Package password provides salted one-way password hashing.
//
// The package defines a Hasher interface with a PBKDF2-SHA512
// implementation whose parameters match the credentials already in
// storage: a 16-byte random salt and a 512-byte derived key over 10000
// iterations, both hex encoded.
//
// # Basic Usage
//
//	hasher := password.NewPbkdf2Hasher()
//
//	// Hashing generates a fresh salt every time
//	salt, digest, err := hasher.Hash("secret")
//
//	// Verification recomputes the digest with the stored salt
//	ok, err := hasher.Verify("secret", salt, digest)
//
// A wrong password is reported as (false, nil). An error return means
// the stored material itself is unusable and indicates a data-integrity
// problem, not user input.
package password
