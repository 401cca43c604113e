package api

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the successful login body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title string `json:"title"`
}

// UpdateTaskRequest carries the optional update fields. Absent fields
// stay nil, so "not supplied" and "empty string" are distinguishable.
type UpdateTaskRequest struct {
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
}

// ErrorResponse is the error body of the task endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the error body of the login endpoint.
type MessageResponse struct {
	Msg string `json:"msg"`
}
