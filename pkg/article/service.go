package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/shif-works/conduit/pkg/user"
)

// DefaultImageBaseURL is the public bucket prefix uploaded images live
// under; article image URLs must point inside it.
const DefaultImageBaseURL = "https://shif-bucket.s3.amazonaws.com"

// AuthorLookup resolves article and comment authors. It is satisfied by
// user.Repository.
type AuthorLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (user.User, error)
}

// Author is the public author view embedded in feed and comment payloads
type Author struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// FeedArticle is an article joined with its author
type FeedArticle struct {
	Article
	Author Author
}

// CommentWithAuthor is a comment joined with its author
type CommentWithAuthor struct {
	Comment
	Author Author
}

// Service holds the article business rules
type Service struct {
	repo         Repository
	authors      AuthorLookup
	imageBaseURL string
}

// Option is a function that configures a Service
type Option func(*Service)

// WithImageBaseURL sets the public bucket prefix accepted for article images
func WithImageBaseURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.imageBaseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// NewService creates a new article service
func NewService(repo Repository, authors AuthorLookup, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		authors:      authors,
		imageBaseURL: DefaultImageBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Feed returns all articles, newest first, with their authors embedded
func (s *Service) Feed(ctx context.Context) ([]FeedArticle, error) {
	articles, err := s.repo.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	authors := make(map[uuid.UUID]Author)
	feed := make([]FeedArticle, 0, len(articles))
	for _, a := range articles {
		author, ok := authors[a.AuthorID]
		if !ok {
			u, err := s.authors.FindByID(ctx, a.AuthorID)
			if err != nil {
				if !errors.Is(err, user.ErrUserNotFound) {
					return nil, fmt.Errorf("resolving author: %w", err)
				}
				slog.Warn("Article has no resolvable author", "article_id", a.ID, "author_id", a.AuthorID)
			}
			author = Author{ID: a.AuthorID, Username: u.Username}
			authors[a.AuthorID] = author
		}
		feed = append(feed, FeedArticle{Article: a, Author: author})
	}
	return feed, nil
}

// Uploaded objects get bare word-character keys, so anything after the
// bucket prefix beyond one such segment is not one of ours.
var imageKeyPattern = regexp.MustCompile(`^\w+$`)

// Create creates an article for the given author. The image URL, when
// present, must be a single uploaded object inside the public bucket.
func (s *Service) Create(ctx context.Context, params CreateArticleParams) (FeedArticle, error) {
	if params.ImageURL != "" {
		key, ok := strings.CutPrefix(params.ImageURL, s.imageBaseURL+"/")
		if !ok || !imageKeyPattern.MatchString(key) {
			return FeedArticle{}, InvalidImageURLError{URL: params.ImageURL}
		}
	}

	author, err := s.authors.FindByID(ctx, params.AuthorID)
	if err != nil {
		return FeedArticle{}, fmt.Errorf("resolving author: %w", err)
	}

	a, err := s.repo.CreateArticle(ctx, params)
	if err != nil {
		return FeedArticle{}, fmt.Errorf("creating article: %w", err)
	}

	slog.Info("Created article", "article_id", a.ID, "author", author.Username)
	return FeedArticle{Article: a, Author: Author{ID: author.ID, Username: author.Username}}, nil
}

// AddComment attaches a comment to an existing article
func (s *Service) AddComment(ctx context.Context, params CreateCommentParams) (CommentWithAuthor, error) {
	author, err := s.authors.FindByID(ctx, params.AuthorID)
	if err != nil {
		return CommentWithAuthor{}, fmt.Errorf("resolving author: %w", err)
	}

	if _, err := s.repo.GetArticle(ctx, params.ArticleID); err != nil {
		return CommentWithAuthor{}, err
	}

	c, err := s.repo.CreateComment(ctx, params)
	if err != nil {
		return CommentWithAuthor{}, fmt.Errorf("creating comment: %w", err)
	}
	return CommentWithAuthor{Comment: c, Author: Author{ID: author.ID, Username: author.Username}}, nil
}

// Comments returns an article's comments with their authors embedded
func (s *Service) Comments(ctx context.Context, articleID uuid.UUID) ([]CommentWithAuthor, error) {
	if _, err := s.repo.GetArticle(ctx, articleID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	authors := make(map[uuid.UUID]Author)
	result := make([]CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		author, ok := authors[c.AuthorID]
		if !ok {
			u, err := s.authors.FindByID(ctx, c.AuthorID)
			if err != nil && !errors.Is(err, user.ErrUserNotFound) {
				return nil, fmt.Errorf("resolving author: %w", err)
			}
			author = Author{ID: c.AuthorID, Username: u.Username}
			authors[c.AuthorID] = author
		}
		result = append(result, CommentWithAuthor{Comment: c, Author: author})
	}
	return result, nil
}
