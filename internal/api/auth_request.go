package api

// AuthRequest identifies the account to act on. Authorization carries a
// token issued by the login endpoint; when empty the Authorization header
// is used instead.
// swagger:model api.AuthRequest
type AuthRequest struct {
	Email         string `json:"email" form:"email" validate:"required" example:"email@mail.com"`
	Authorization string `json:"authorization,omitempty" form:"authorization" example:"eyJhbGciOi..."`
}
