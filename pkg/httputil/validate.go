package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the process-wide validator for request bodies
var Validate = validator.New()

// ValidationError writes a 400 with the canonical envelope, joining the
// individual field failures into one message.
func ValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	reasons := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		reasons = append(reasons, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
	}
	Error(w, r, http.StatusBadRequest, strings.Join(reasons, "; "))
}
