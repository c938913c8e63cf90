package model

// APIError is the structured error carried by a failed backend response.
// Message may be empty; consumers must fall back to their own message.
type APIError struct {
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Response is the backend's uniform envelope.
// When Success is true, Data is meaningful. When false, Error may be nil
// or carry an empty message and both cases must be tolerated.
type Response[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}
