package login

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/shif-works/conduit/pkg/httputil"
	"github.com/shif-works/conduit/pkg/user"
)

// Handle handles HTTP requests for login
type Handle struct {
	loginService *Service
}

// NewHandle creates a new login handler
func NewHandle(loginService *Service) *Handle {
	return &Handle{
		loginService: loginService,
	}
}

// RegisterRoutes registers the login routes
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Post("/users/login", h.PostLogin)
}

// LoginRequest is the body of POST /users/login
type LoginRequest struct {
	User struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=3"`
	} `json:"user"`
}

// PostLogin handles POST /users/login. A failed login is a client input
// problem, not a missing-authorization problem, so it returns 400 rather
// than 401.
func (h *Handle) PostLogin(w http.ResponseWriter, r *http.Request) {
	data := LoginRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		httputil.Error(w, r, http.StatusBadRequest, "unable to parse body")
		return
	}
	if err := httputil.Validate.Struct(data); err != nil {
		httputil.ValidationError(w, r, err)
		return
	}

	result, err := h.loginService.Login(r.Context(), data.User.Email, data.User.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httputil.Error(w, r, http.StatusBadRequest, ErrInvalidCredentials.Error())
			return
		}
		slog.Error("Login failed with internal error", "err", err)
		httputil.InternalError(w, r)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, user.AuthUserResponse{User: user.AuthUserJSON{
		Username: result.User.Username,
		Email:    result.User.Email,
		Bio:      result.User.Bio,
		Avatar:   result.User.Avatar,
		Token:    result.Token,
	}})
}
