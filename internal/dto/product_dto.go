package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Description    string          `json:"description"     validate:"required,min=1,max=200"`
	SalePrice      decimal.Decimal `json:"sale_price"      validate:"min=0"`
	Barcode        string          `json:"barcode"         validate:"required,min=1,max=48"`
	Session        string          `json:"session"         validate:"required"`
	InitialStock   int             `json:"initial_stock"   validate:"min=0"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	Images         *string         `json:"images"`
	Available      *bool           `json:"available"`
}

// UpdateProductRequest applies only the fields explicitly supplied: unset
// fields are left untouched, not nulled.
type UpdateProductRequest struct {
	Description    *string          `json:"description"     validate:"omitempty,min=1,max=200"`
	SalePrice      *decimal.Decimal `json:"sale_price"      validate:"omitempty,min=0"`
	Barcode        *string          `json:"barcode"         validate:"omitempty,min=1,max=48"`
	Session        *string          `json:"session"`
	InitialStock   *int             `json:"initial_stock"   validate:"omitempty,min=0"`
	ExpirationDate *time.Time       `json:"expiration_date"`
	Images         *string          `json:"images"`
	Available      *bool            `json:"available"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Description string `form:"description"`
	Session     string `form:"session"`
	Available   *bool  `form:"available"`
	Skip        int    `form:"skip,default=0"   validate:"min=0"`
	Limit       int    `form:"limit,default=10" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID             string          `json:"id"`
	Description    string          `json:"description"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	Barcode        string          `json:"barcode"`
	Session        string          `json:"session"`
	InitialStock   int             `json:"initial_stock"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	Images         *string         `json:"images"`
	Available      bool            `json:"available"`
}
