package contracts

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse documents the body written by every failed request.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
