package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shif-works/conduit/pkg/database"
)

// User represents a user account in the domain model. Salt and Digest are
// the stored credential pair; Digest is never persisted without Salt.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Bio       string
	Avatar    string
	Salt      string
	Digest    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserParams represents parameters for creating a user
type CreateUserParams struct {
	Username string
	Email    string
	Bio      string
	Avatar   string
	Salt     string
	Digest   string
}

// UpdateCredentialParams represents parameters for replacing a user's
// stored credential. Salt must be freshly generated, never reused.
type UpdateCredentialParams struct {
	ID     uuid.UUID
	Salt   string
	Digest string
}

// Repository defines the interface for user persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, params CreateUserParams) (User, error)
	UpdateCredential(ctx context.Context, params UpdateCredentialParams) error
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository creates a new PostgreSQL-based user repository
func NewPostgresRepository(db database.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, email, bio, avatar, salt, digest, created_at, updated_at`

func (r *PostgresRepository) scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Bio, &u.Avatar, &u.Salt, &u.Digest, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *PostgresRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Postgres unique_violation, raised by the username/email constraints.
const uniqueViolationCode = "23505"

func (r *PostgresRepository) Create(ctx context.Context, params CreateUserParams) (User, error) {
	query := `INSERT INTO users (id, username, email, bio, avatar, salt, digest)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING ` + userColumns
	u, err := r.scanUser(r.db.QueryRow(ctx, query,
		uuid.New(), params.Username, params.Email, params.Bio, params.Avatar, params.Salt, params.Digest))
	if err != nil {
		// A registration racing past the service's existence pre-check
		// lands on the unique constraints instead.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return User{}, DuplicateUserError{Username: params.Username, Email: params.Email}
		}
		return User{}, err
	}
	return u, nil
}

// UpdateCredential replaces the stored salt/digest pair in one statement
// so a concurrent login observes either the old or the new credential,
// never a torn one.
func (r *PostgresRepository) UpdateCredential(ctx context.Context, params UpdateCredentialParams) error {
	query := `UPDATE users SET salt = $2, digest = $3, updated_at = now() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, params.ID, params.Salt, params.Digest)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
