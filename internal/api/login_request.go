package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email          string `json:"email" form:"email" validate:"required" example:"email@mail.com"`
	HashedPassword string `json:"hashed_password" form:"hashed_password" validate:"required" example:"hashed_password"`
}
