package domain

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string  // pbkdf2-sha256, base64 encoded
	Salt         string  // base64 encoded random salt
	Role         string  // e.g. "User", "Admin"
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time // nil until the first successful login
}
