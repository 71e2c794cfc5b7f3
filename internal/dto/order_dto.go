package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type CreateOrderRequest struct {
	ClientID string             `json:"client_id" validate:"required,uuid"`
	Items    []OrderItemRequest `json:"items"     validate:"required,min=1,dive"`
}

// UpdateOrderRequest revises an order. ClientID and Status apply only when
// supplied. Items, when present, is the full desired item set expressed as a
// diff: existing products get their quantity updated, new products are
// appended, and items whose product is absent are removed.
type UpdateOrderRequest struct {
	ClientID *string            `json:"client_id" validate:"omitempty,uuid"`
	Status   *string            `json:"status"`
	Items    []OrderItemRequest `json:"items"     validate:"omitempty,dive"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// OrderFilter is bound from the query string of GET /.
type OrderFilter struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date"   time_format:"2006-01-02"`
	// Section filters by product session through the items→products join.
	Section  string `form:"section"`
	OrderID  string `form:"order_id" validate:"omitempty,uuid"`
	Status   string `form:"status"`
	ClientID string `form:"client_id" validate:"omitempty,uuid"`
	Skip     int    `form:"skip,default=0"   validate:"min=0"`
	Limit    int    `form:"limit,default=10" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	Number          int                 `json:"number"`
	ClientID        string              `json:"client_id"`
	Status          string              `json:"status"`
	TotalOrderPrice decimal.Decimal     `json:"total_order_price"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
}
