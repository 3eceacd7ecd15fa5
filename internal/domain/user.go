package domain

import (
	"context"
	"time"
)

// RecoveryQuestion is the single recovery question offered at registration.
const RecoveryQuestion = "What was your elementary school teacher's name?"

// User represents a registered user of the application.
type User struct {
	ID               int64
	Username         string
	PasswordHash     string
	RecoveryQuestion string
	RecoveryAnswer   string // Stored verbatim; compared case-insensitively
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}
