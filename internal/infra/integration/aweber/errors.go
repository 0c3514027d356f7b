package aweber

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is any non-2xx answer from the provider, body kept for
// classification and logging.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("aweber api error (status %d): %s", e.StatusCode, e.Body)
}

// IsPermission reports 401/403-class failures: app not approved, token
// expired, custom field not provisioned. These are logged and swallowed.
func IsPermission(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// IsConflict reports the provider's duplicate answers ("already subscribed",
// tag already present). Redundant writes are safe to ignore.
func IsConflict(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusBadRequest && strings.Contains(apiErr.Body, "already")
}
