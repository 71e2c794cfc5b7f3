package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is shared, unowned inventory: any authenticated user manages the
// catalog. InitialStock is the live remaining-stock counter (the name is
// historical) — order placement decrements it and it never goes negative.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Description string          `gorm:"index;not null"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Barcode     string          `gorm:"uniqueIndex;not null"`
	// Session is the catalog category label ("A", "bakery", ...).
	Session        string `gorm:"index;not null"`
	InitialStock   int    `gorm:"not null;default:0"`
	ExpirationDate *time.Time
	// Images stores image URLs or paths.
	Images    *string
	Available bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
