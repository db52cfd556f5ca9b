package pinbox

import "fmt"

// AuthError means the access token is malformed or lacks the claims
// needed to derive API endpoint paths. Fatal to any API call.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return "auth: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError is a non-2xx response from the bookmark API.
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pinbox api: %s returned status %d", e.Endpoint, e.StatusCode)
}
