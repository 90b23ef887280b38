package domain

import "time"

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

type UserRepository interface {
	GetUserByID(userID string) (*User, error)
	GetUserByEmail(email string) (*User, error)
}
