package model

// User is a registered account. PasswordHash is never serialized.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
}
