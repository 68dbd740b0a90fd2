package upload

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/shif-works/conduit/pkg/authn"
	"github.com/shif-works/conduit/pkg/httputil"
	"github.com/shif-works/conduit/pkg/token"
)

// maxUploadBytes bounds multipart parsing memory per request
const maxUploadBytes = 10 << 20

// Handle handles HTTP requests for image upload
type Handle struct {
	uploadService *Service
	tokens        *token.Service
}

// NewHandle creates a new upload handler
func NewHandle(uploadService *Service, tokens *token.Service) *Handle {
	return &Handle{
		uploadService: uploadService,
		tokens:        tokens,
	}
}

// RegisterRoutes registers the upload routes
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(authn.Required(h.tokens))
		r.Post("/articles/upload-image", h.UploadImage)
	})
}

// UploadImageResponse is the body returned after a successful upload
type UploadImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImage handles POST /articles/upload-image. The image arrives as
// the multipart field "image".
func (h *Handle) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.Error(w, r, http.StatusBadRequest, "unable to parse multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.Error(w, r, http.StatusBadRequest, "missing image field")
		return
	}
	defer file.Close()

	url, err := h.uploadService.Upload(r.Context(), header.Header.Get("Content-Type"), file)
	if err != nil {
		var unsupported UnsupportedTypeError
		if errors.As(err, &unsupported) {
			httputil.Error(w, r, http.StatusUnprocessableEntity, unsupported.Error())
			return
		}
		slog.Error("Failed to upload image", "err", err)
		httputil.InternalError(w, r)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, UploadImageResponse{ImageURL: url})
}
