package model

import "time"

// ErrorResponse is the error body of every endpoint. Detail is either a
// message or a list of FieldError for request validation failures.
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

// FieldError describes one invalid request field
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// MessageResponse carries a plain confirmation message
type MessageResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	Cache     string    `json:"cache"`
}
