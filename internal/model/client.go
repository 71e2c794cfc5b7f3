package model

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer record owned by a single user. CPF and email are
// unique per owner, not globally: two users can register the same person.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Email     string    `gorm:"not null;uniqueIndex:idx_clients_email_owner"`
	CPF       string    `gorm:"not null;uniqueIndex:idx_clients_cpf_owner;column:cpf"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_clients_cpf_owner;uniqueIndex:idx_clients_email_owner"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner *User `gorm:"foreignKey:OwnerID"`
}
