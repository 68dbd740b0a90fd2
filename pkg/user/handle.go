package user

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/shif-works/conduit/pkg/authn"
	"github.com/shif-works/conduit/pkg/httputil"
	"github.com/shif-works/conduit/pkg/token"
)

// Handle handles HTTP requests for user accounts
type Handle struct {
	userService *Service
	tokens      *token.Service
}

// NewHandle creates a new user handler
func NewHandle(userService *Service, tokens *token.Service) *Handle {
	return &Handle{
		userService: userService,
		tokens:      tokens,
	}
}

// RegisterRoutes registers the user routes
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Post("/users", h.Register)

	r.Group(func(r chi.Router) {
		r.Use(authn.Optional(h.tokens))
		r.Get("/users/{username}", h.GetProfile)
	})
}

// RegisterRequest is the body of POST /users
type RegisterRequest struct {
	User struct {
		Username string `json:"username" validate:"required,min=3"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=3"`
	} `json:"user"`
}

// AuthUserJSON is the authenticated-user payload returned by
// registration and login, token included.
type AuthUserJSON struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	Token    string `json:"token"`
}

// AuthUserResponse wraps AuthUserJSON under the conventional "user" key
type AuthUserResponse struct {
	User AuthUserJSON `json:"user"`
}

// ProfileJSON is the public view of a user. Credential fields never
// appear here.
type ProfileJSON struct {
	Username  string    `json:"username"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileResponse wraps ProfileJSON under the conventional "user" key
type ProfileResponse struct {
	User ProfileJSON `json:"user"`
}

// Register handles POST /users
func (h *Handle) Register(w http.ResponseWriter, r *http.Request) {
	data := RegisterRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		httputil.Error(w, r, http.StatusBadRequest, "unable to parse body")
		return
	}
	if err := httputil.Validate.Struct(data); err != nil {
		httputil.ValidationError(w, r, err)
		return
	}

	u, err := h.userService.Register(r.Context(), RegisterParams{
		Username: data.User.Username,
		Email:    data.User.Email,
		Password: data.User.Password,
	})
	if err != nil {
		var duplicate DuplicateUserError
		if errors.As(err, &duplicate) {
			httputil.Error(w, r, http.StatusBadRequest, duplicate.Error())
			return
		}
		slog.Error("Failed to register user", "err", err)
		httputil.InternalError(w, r)
		return
	}

	tok, _, err := h.tokens.Issue(u.ID.String(), u.Username)
	if err != nil {
		slog.Error("Failed to issue token after registration", "err", err)
		httputil.InternalError(w, r)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, AuthUserResponse{User: AuthUserJSON{
		Username: u.Username,
		Email:    u.Email,
		Bio:      u.Bio,
		Avatar:   u.Avatar,
		Token:    tok,
	}})
}

// GetProfile handles GET /users/{username}
func (h *Handle) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	u, err := h.userService.Profile(r.Context(), username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			httputil.Error(w, r, http.StatusNotFound, "user not found")
			return
		}
		slog.Error("Failed to load profile", "username", username, "err", err)
		httputil.InternalError(w, r)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ProfileResponse{User: ProfileJSON{
		Username:  u.Username,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}})
}
