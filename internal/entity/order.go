package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// OrderStatus is the fulfillment state of a direct order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a direct purchase of one product by a retailer, outside of any
// group campaign. Unit price is snapshotted at placement time.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID         int64       `bun:",pk,autoincrement"`
	Number     string      `bun:"number"`
	RetailerID string      `bun:"retailer_id"`
	ProductID  int64       `bun:"product_id"`
	Quantity   int         `bun:"quantity"`
	UnitPrice  float64     `bun:"unit_price"`
	Total      float64     `bun:"total"`
	Status     OrderStatus `bun:"status"`
	CreatedAt  time.Time   `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time   `bun:"updated_at,nullzero"`
}
