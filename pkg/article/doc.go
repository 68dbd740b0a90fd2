// Package article provides articles and their comments: the public feed,
// article creation, and commenting.
//
// Reads are public (optional authentication); writes require a verified
// identity. The package follows the repository pattern with PostgreSQL
// and in-memory implementations.
package article
