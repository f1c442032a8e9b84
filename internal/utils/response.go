package utils

import "time"

type APIResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Data      interface{}       `json:"data,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// ErrorResponse maps field names to human-readable messages; non-field
// errors go under "detail".
func ErrorResponse(message string, fields map[string]string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Errors:    fields,
		Timestamp: time.Now(),
	}
}
