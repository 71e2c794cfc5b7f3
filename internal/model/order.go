package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses form a closed set. Transitions are caller-driven, but
// cancelled is terminal: once there, neither items nor status may change.
const (
	OrderStatusPending   = "pending"
	OrderStatusFulfilled = "fulfilled"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s belongs to the closed status set.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusFulfilled || s == OrderStatusCancelled
}

type Order struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Number is a sequential human-facing reference; listings sort by it
	// ascending since uuid ids carry no order.
	Number   int       `gorm:"autoIncrement;uniqueIndex;not null"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status   string    `gorm:"type:varchar(20);not null;default:'pending'"`
	// TotalPrice is derived: always Σ(item.Subtotal) after any mutation.
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Client *Client     `gorm:"foreignKey:ClientID"`
	Items  []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem denormalizes the product price at transaction time: later price
// changes on the product never rewrite historical subtotals.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
