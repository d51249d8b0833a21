// File: internal/model/user.go
package model

// User is a registered account. HashedPassword is opaque: it is stored and
// compared exactly as the client sent it.
type User struct {
	ID             int    `db:"id" json:"id"`
	Username       string `db:"username" json:"username"`
	Email          string `db:"email" json:"email"`
	HashedPassword string `db:"hashed_password" json:"hashed_password"`
}
