package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Username       string `json:"username" form:"username" validate:"required,max=50" example:"username"`
	Email          string `json:"email" form:"email" validate:"required,max=50" example:"email@mail.com"`
	HashedPassword string `json:"hashed_password" form:"hashed_password" validate:"required,max=50" example:"hashed_password"`
}
