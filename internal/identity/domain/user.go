package domain

import "time"

type User struct {
	ID            string
	Username      string
	Email         string
	PasswordHash  string // argon2 encoded
	Enabled       bool
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
