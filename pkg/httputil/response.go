// Package httputil holds the canonical JSON error envelope shared by
// every handler so that no failure shape varies across endpoints.
package httputil

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrorResponse is the one error envelope the API uses. Validation
// failures, login failures and not-found responses all share it.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Error writes the canonical error envelope with the given status
func Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Message: message})
}

// InternalError writes a generic 500 envelope. Details belong in logs,
// never in the response body.
func InternalError(w http.ResponseWriter, r *http.Request) {
	Error(w, r, http.StatusInternalServerError, "internal server error")
}
