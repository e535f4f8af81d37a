package api

// TextRequest carries one assistant reply to be processed.
type TextRequest struct {
	Text string `json:"text" example:"Day 1: Arrive in Paris"` // Raw assistant reply.
}

// Response represents a generic API response for success or error messages.
type Response struct {
	Success bool   `json:"success" example:"true"`                           // Indicates if the operation was successful.
	Message string `json:"message,omitempty" example:"Operation successful"` // Optional success message.
	Error   string `json:"error,omitempty" example:"Resource not found"`     // Optional error message.
}
