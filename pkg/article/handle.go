package article

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/shif-works/conduit/pkg/authn"
	"github.com/shif-works/conduit/pkg/httputil"
	"github.com/shif-works/conduit/pkg/token"
	"github.com/shif-works/conduit/pkg/user"
)

// Handle handles HTTP requests for articles and comments
type Handle struct {
	articleService *Service
	tokens         *token.Service
}

// NewHandle creates a new article handler
func NewHandle(articleService *Service, tokens *token.Service) *Handle {
	return &Handle{
		articleService: articleService,
		tokens:         tokens,
	}
}

// RegisterRoutes registers the article routes. Reads are optional-auth,
// writes are required-auth.
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Route("/articles", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authn.Optional(h.tokens))
			r.Get("/feed", h.Feed)
			r.Get("/{articleID}/comments", h.ListComments)
		})

		r.Group(func(r chi.Router) {
			r.Use(authn.Required(h.tokens))
			r.Post("/", h.CreateArticle)
			r.Post("/{articleID}/comments", h.CreateComment)
		})
	})
}

// CreateArticleRequest is the body of POST /articles
type CreateArticleRequest struct {
	Article struct {
		Title    string   `json:"title" validate:"required"`
		Body     string   `json:"body" validate:"required,min=3"`
		ImageURL string   `json:"imageUrl" validate:"omitempty,url"`
		TagList  []string `json:"tagList"`
	} `json:"article"`
}

// CreateCommentRequest is the body of POST /articles/{articleID}/comments
type CreateCommentRequest struct {
	Comment struct {
		Body string `json:"body" validate:"required,min=3"`
	} `json:"comment"`
}

// ArticleJSON is the wire shape of an article with its author
type ArticleJSON struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	TagList   []string  `json:"tagList"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    Author    `json:"author"`
}

// CommentJSON is the wire shape of a comment with its author
type CommentJSON struct {
	ID        uuid.UUID `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	Author    Author    `json:"author"`
}

func toArticleJSON(f FeedArticle) ArticleJSON {
	return ArticleJSON{
		ID:        f.ID,
		Title:     f.Title,
		Body:      f.Body,
		ImageURL:  f.ImageURL,
		TagList:   f.TagList,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
		Author:    f.Author,
	}
}

func toCommentJSON(c CommentWithAuthor) CommentJSON {
	return CommentJSON{
		ID:        c.ID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		Author:    c.Author,
	}
}

// Feed handles GET /articles/feed
func (h *Handle) Feed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.articleService.Feed(r.Context())
	if err != nil {
		slog.Error("Failed to load feed", "err", err)
		httputil.InternalError(w, r)
		return
	}

	payload := make([]ArticleJSON, 0, len(feed))
	for _, f := range feed {
		payload = append(payload, toArticleJSON(f))
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, payload)
}

// CreateArticle handles POST /articles
func (h *Handle) CreateArticle(w http.ResponseWriter, r *http.Request) {
	authorID, ok := requestAuthorID(r)
	if !ok {
		httputil.Error(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	data := CreateArticleRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		httputil.Error(w, r, http.StatusBadRequest, "unable to parse body")
		return
	}
	if err := httputil.Validate.Struct(data); err != nil {
		httputil.ValidationError(w, r, err)
		return
	}

	created, err := h.articleService.Create(r.Context(), CreateArticleParams{
		Title:    data.Article.Title,
		Body:     data.Article.Body,
		ImageURL: data.Article.ImageURL,
		TagList:  data.Article.TagList,
		AuthorID: authorID,
	})
	if err != nil {
		var badImage InvalidImageURLError
		switch {
		case errors.As(err, &badImage):
			httputil.Error(w, r, http.StatusBadRequest, badImage.Error())
		case errors.Is(err, user.ErrUserNotFound):
			// Valid token for an account that no longer exists.
			httputil.Error(w, r, http.StatusUnauthorized, "unauthorized")
		default:
			slog.Error("Failed to create article", "err", err)
			httputil.InternalError(w, r)
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toArticleJSON(created))
}

// CreateComment handles POST /articles/{articleID}/comments
func (h *Handle) CreateComment(w http.ResponseWriter, r *http.Request) {
	authorID, ok := requestAuthorID(r)
	if !ok {
		httputil.Error(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		httputil.Error(w, r, http.StatusNotFound, "article not found")
		return
	}

	data := CreateCommentRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		httputil.Error(w, r, http.StatusBadRequest, "unable to parse body")
		return
	}
	if err := httputil.Validate.Struct(data); err != nil {
		httputil.ValidationError(w, r, err)
		return
	}

	created, err := h.articleService.AddComment(r.Context(), CreateCommentParams{
		ArticleID: articleID,
		AuthorID:  authorID,
		Body:      data.Comment.Body,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrArticleNotFound):
			httputil.Error(w, r, http.StatusNotFound, "article not found")
		case errors.Is(err, user.ErrUserNotFound):
			httputil.Error(w, r, http.StatusUnauthorized, "unauthorized")
		default:
			slog.Error("Failed to create comment", "err", err)
			httputil.InternalError(w, r)
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toCommentJSON(created))
}

// ListComments handles GET /articles/{articleID}/comments
func (h *Handle) ListComments(w http.ResponseWriter, r *http.Request) {
	articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		httputil.Error(w, r, http.StatusNotFound, "article not found")
		return
	}

	comments, err := h.articleService.Comments(r.Context(), articleID)
	if err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			httputil.Error(w, r, http.StatusNotFound, "article not found")
			return
		}
		slog.Error("Failed to list comments", "err", err)
		httputil.InternalError(w, r)
		return
	}

	payload := make([]CommentJSON, 0, len(comments))
	for _, c := range comments {
		payload = append(payload, toCommentJSON(c))
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, payload)
}

// requestAuthorID resolves the authenticated user id from the request
// context. Required middleware guarantees presence; the uuid parse guards
// against tokens minted for non-uuid subjects.
func requestAuthorID(r *http.Request) (uuid.UUID, bool) {
	authUser, ok := authn.GetAuthUser(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(authUser.UserID)
	if err != nil {
		slog.Warn("Token subject is not a valid user id", "user_id", authUser.UserID)
		return uuid.Nil, false
	}
	return id, true
}
