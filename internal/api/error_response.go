package api

import "time"

var timeNow = time.Now

// ErrorResponse is the body of every non-2xx response.
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Error string    `json:"error" example:"Invalid credentials"`
	Time  time.Time `json:"time" example:"2025-05-09T15:04:05Z"`
}

// NewError stamps msg with the current time.
func NewError(msg string) ErrorResponse {
	return ErrorResponse{Error: msg, Time: timeNow().UTC()}
}
