package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// GroupOrderStatus is the lifecycle state of a bulk-buying campaign.
type GroupOrderStatus string

const (
	GroupOrderActive    GroupOrderStatus = "active"
	GroupOrderCompleted GroupOrderStatus = "completed"
	GroupOrderExpired   GroupOrderStatus = "expired"
)

// GroupOrder is a bulk-buying campaign for a single raw material. Retailers
// enroll until the minimum vendor count is reached or the deadline passes.
// Status moves forward only: active -> completed or active -> expired.
type GroupOrder struct {
	bun.BaseModel `bun:"table:group_orders"`

	ID          int64            `bun:",pk,autoincrement"`
	Reference   string           `bun:"reference"`
	ItemName    string           `bun:"item_name"`
	Category    Category         `bun:"category"`
	TargetPrice float64          `bun:"target_price"`
	Unit        Unit             `bun:"unit"`
	MinVendors  int              `bun:"min_vendors"`
	Deadline    time.Time        `bun:"deadline"`
	Status      GroupOrderStatus `bun:"status"`
	CreatedAt   time.Time        `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`

	Memberships []Membership `bun:"rel:has-many,join:id=group_order_id"`
}

// Membership is one retailer's enrollment in a group order. At most one row
// exists per (group order, user); re-joining replaces the quantity.
type Membership struct {
	bun.BaseModel `bun:"table:group_order_memberships"`

	ID           int64     `bun:",pk,autoincrement"`
	GroupOrderID int64     `bun:"group_order_id"`
	UserID       string    `bun:"user_id"`
	Quantity     int       `bun:"quantity"`
	JoinedAt     time.Time `bun:"joined_at"`
}
