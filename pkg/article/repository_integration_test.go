package article

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shif-works/conduit/pkg/database"
	"github.com/shif-works/conduit/pkg/user"
)

func setupTestDatabase(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("conduit_db"),
		postgres.WithUsername("conduit"),
		postgres.WithPassword("pwd"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.NewPool(ctx, connString)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(pool, "../../migrations"))

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
	return pool, cleanup
}

func seedAuthor(t *testing.T, pool *pgxpool.Pool) user.User {
	t.Helper()
	author, err := user.NewPostgresRepository(pool).Create(context.Background(), user.CreateUserParams{
		Username: "jake",
		Email:    "jake@example.com",
		Salt:     "00112233445566778899aabbccddeeff",
		Digest:   "deadbeef",
	})
	require.NoError(t, err)
	return author
}

func TestPostgresRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewPostgresRepository(pool)
	author := seedAuthor(t, pool)

	first, err := repo.CreateArticle(ctx, CreateArticleParams{
		Title:    "How to train your dragon",
		Body:     "Very carefully.",
		ImageURL: DefaultImageBaseURL + "/dragon.jpg",
		TagList:  []string{"dragons", "training"},
		AuthorID: author.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"dragons", "training"}, first.TagList)
	assert.False(t, first.CreatedAt.IsZero())

	// created_at drives feed ordering, keep the two inserts apart.
	time.Sleep(10 * time.Millisecond)

	second, err := repo.CreateArticle(ctx, CreateArticleParams{
		Title:    "Dragon feeding schedules",
		Body:     "Twice a day.",
		AuthorID: author.ID,
	})
	require.NoError(t, err)

	t.Run("get article", func(t *testing.T) {
		found, err := repo.GetArticle(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Title, found.Title)
		assert.Equal(t, author.ID, found.AuthorID)
	})

	t.Run("get missing article", func(t *testing.T) {
		_, err := repo.GetArticle(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrArticleNotFound)
	})

	t.Run("list articles newest first", func(t *testing.T) {
		articles, err := repo.ListArticles(ctx)
		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, second.ID, articles[0].ID)
		assert.Equal(t, first.ID, articles[1].ID)
	})

	t.Run("article requires existing author", func(t *testing.T) {
		_, err := repo.CreateArticle(ctx, CreateArticleParams{
			Title:    "Orphaned",
			Body:     "No author row.",
			AuthorID: uuid.New(),
		})
		assert.Error(t, err)
	})

	t.Run("comments round trip", func(t *testing.T) {
		created, err := repo.CreateComment(ctx, CreateCommentParams{
			ArticleID: first.ID,
			AuthorID:  author.ID,
			Body:      "Great advice!",
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, created.ArticleID)

		comments, err := repo.ListComments(ctx, first.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "Great advice!", comments[0].Body)

		comments, err = repo.ListComments(ctx, second.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
