package api

import "fmt"

// ValidationError is raised before any network call when a request is
// structurally unusable (empty script text, missing URL, missing file).
// It is never retried and its message is safe to surface verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// APIError carries a non-2xx backend response. The adapter performs no
// retries and no special handling for auth expiry; callers that care can
// inspect Status.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}
