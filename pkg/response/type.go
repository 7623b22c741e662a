package response

// Resp is the standard JSON response body.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

// StatusResp is the body the relay endpoints return on success.
type StatusResp struct {
	Status string `json:"status"`
}

// ErrorResp is the flat error body used by the relay endpoints.
type ErrorResp struct {
	Error string `json:"error"`
}
