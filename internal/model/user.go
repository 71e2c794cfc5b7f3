package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles form a closed set. The first user ever created is the admin;
// everyone after that starts as regular.
const (
	RoleAdmin   = "admin"
	RoleRegular = "regular"
)

// ValidRole reports whether r belongs to the closed role set.
func ValidRole(r string) bool { return r == RoleAdmin || r == RoleRegular }

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'regular'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
