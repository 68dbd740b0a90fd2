package article

import (
	"errors"
	"fmt"
)

// ErrArticleNotFound is returned when no article matches the lookup
var ErrArticleNotFound = errors.New("article not found")

// InvalidImageURLError is returned when an article's image URL does not
// point at the configured public bucket
type InvalidImageURLError struct {
	URL string
}

func (e InvalidImageURLError) Error() string {
	return fmt.Sprintf("image url is not an uploaded image: %s", e.URL)
}
