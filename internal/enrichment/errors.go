// filepath: internal/enrichment/errors.go
package enrichment

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoAPIKey         = errors.New("enrichment API key is not configured")
	ErrInvalidAPIKey    = errors.New("invalid enrichment API key")
	ErrInvalidKeyFormat = errors.New("API key must start with \"sk-\" and be at least 20 characters")
	ErrNetwork          = errors.New("network error")
	ErrNoResponse       = errors.New("no response from enrichment service")
)

// APIError is a non-success HTTP answer from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Message)
}

// IsQuota reports whether the service rejected the call for rate or quota reasons.
func (e *APIError) IsQuota() bool { return e.Status == http.StatusTooManyRequests }

func (e *APIError) transient() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}
