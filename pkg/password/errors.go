package password

import "fmt"

// MalformedCredentialError is returned when a stored salt or digest cannot
// be decoded. It indicates corrupted credential data, never a wrong
// password, and callers should surface it as an internal fault.
type MalformedCredentialError struct {
	Field string
}

func (e MalformedCredentialError) Error() string {
	return fmt.Sprintf("malformed stored credential: %s", e.Field)
}
