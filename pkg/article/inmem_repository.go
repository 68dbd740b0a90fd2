package article

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu       sync.RWMutex
	articles map[uuid.UUID]Article
	comments map[uuid.UUID][]Comment
}

// NewInMemoryRepository creates a new in-memory article repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		articles: make(map[uuid.UUID]Article),
		comments: make(map[uuid.UUID][]Comment),
	}
}

func (r *InMemoryRepository) CreateArticle(ctx context.Context, params CreateArticleParams) (Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	a := Article{
		ID:        uuid.New(),
		Title:     params.Title,
		Body:      params.Body,
		ImageURL:  params.ImageURL,
		TagList:   append([]string(nil), params.TagList...),
		AuthorID:  params.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.articles[a.ID] = a
	return a, nil
}

func (r *InMemoryRepository) GetArticle(ctx context.Context, id uuid.UUID) (Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.articles[id]
	if !ok {
		return Article{}, ErrArticleNotFound
	}
	return a, nil
}

func (r *InMemoryRepository) ListArticles(ctx context.Context) ([]Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	articles := make([]Article, 0, len(r.articles))
	for _, a := range r.articles {
		articles = append(articles, a)
	}
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles, nil
}

func (r *InMemoryRepository) CreateComment(ctx context.Context, params CreateCommentParams) (Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := Comment{
		ID:        uuid.New(),
		ArticleID: params.ArticleID,
		AuthorID:  params.AuthorID,
		Body:      params.Body,
		CreatedAt: time.Now().UTC(),
	}
	r.comments[params.ArticleID] = append(r.comments[params.ArticleID], c)
	return c, nil
}

func (r *InMemoryRepository) ListComments(ctx context.Context, articleID uuid.UUID) ([]Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Comment(nil), r.comments[articleID]...), nil
}
