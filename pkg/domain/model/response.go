package model

// APIResponse is the raw outcome of one GitHub API call. Status handling is left to
// the caller, so non-2xx responses are returned here rather than as errors.
type APIResponse struct {
	StatusCode int
	Body       []byte
}
