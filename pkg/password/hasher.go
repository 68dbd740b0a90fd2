package password

// Hasher defines the interface for password hashing implementations
type Hasher interface {
	// Hash generates a fresh salt and hashes the password with it.
	// Both return values are hex encoded.
	Hash(password string) (salt, digest string, err error)

	// Verify checks if the provided password matches the stored salt and digest.
	// A mismatch returns (false, nil); an error means the stored
	// credential material is malformed.
	Verify(password, salt, digest string) (bool, error)
}
