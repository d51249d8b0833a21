package api

import "time"

// swagger:model api.LoginResponse
type LoginResponse struct {
	User      string     `json:"user" example:"username"`
	Token     string     `json:"token" example:"eyJhbGciOi..."`
	ExpiresAt *time.Time `json:"expires_at,omitempty" example:"2025-05-09T15:04:05Z"`
}
