package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shif-works/conduit/pkg/database"
)

// Article represents an article in the domain model
type Article struct {
	ID        uuid.UUID
	Title     string
	Body      string
	ImageURL  string
	TagList   []string
	AuthorID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment represents a comment on an article
type Comment struct {
	ID        uuid.UUID
	ArticleID uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	CreatedAt time.Time
}

// CreateArticleParams represents parameters for creating an article
type CreateArticleParams struct {
	Title    string
	Body     string
	ImageURL string
	TagList  []string
	AuthorID uuid.UUID
}

// CreateCommentParams represents parameters for creating a comment
type CreateCommentParams struct {
	ArticleID uuid.UUID
	AuthorID  uuid.UUID
	Body      string
}

// Repository defines the interface for article persistence
type Repository interface {
	CreateArticle(ctx context.Context, params CreateArticleParams) (Article, error)
	GetArticle(ctx context.Context, id uuid.UUID) (Article, error)
	ListArticles(ctx context.Context) ([]Article, error)
	CreateComment(ctx context.Context, params CreateCommentParams) (Comment, error)
	ListComments(ctx context.Context, articleID uuid.UUID) ([]Comment, error)
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository creates a new PostgreSQL-based article repository
func NewPostgresRepository(db database.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const articleColumns = `id, title, body, image_url, tag_list, author_id, created_at, updated_at`

func scanArticle(row pgx.Row) (Article, error) {
	var a Article
	err := row.Scan(&a.ID, &a.Title, &a.Body, &a.ImageURL, &a.TagList, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Article{}, ErrArticleNotFound
		}
		return Article{}, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) CreateArticle(ctx context.Context, params CreateArticleParams) (Article, error) {
	query := `INSERT INTO articles (id, title, body, image_url, tag_list, author_id)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + articleColumns
	return scanArticle(r.db.QueryRow(ctx, query,
		uuid.New(), params.Title, params.Body, params.ImageURL, params.TagList, params.AuthorID))
}

func (r *PostgresRepository) GetArticle(ctx context.Context, id uuid.UUID) (Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	return scanArticle(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) ListArticles(ctx context.Context) ([]Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (r *PostgresRepository) CreateComment(ctx context.Context, params CreateCommentParams) (Comment, error) {
	query := `INSERT INTO comments (id, article_id, author_id, body)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, article_id, author_id, body, created_at`
	var c Comment
	err := r.db.QueryRow(ctx, query, uuid.New(), params.ArticleID, params.AuthorID, params.Body).
		Scan(&c.ID, &c.ArticleID, &c.AuthorID, &c.Body, &c.CreatedAt)
	if err != nil {
		return Comment{}, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) ListComments(ctx context.Context, articleID uuid.UUID) ([]Comment, error) {
	query := `SELECT id, article_id, author_id, body, created_at
	          FROM comments WHERE article_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ArticleID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
