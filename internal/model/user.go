package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}

type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}
