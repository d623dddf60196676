package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Product is a supplier's raw-material listing.
type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID           int64     `bun:",pk,autoincrement"`
	SupplierID   string    `bun:"supplier_id"`
	Name         string    `bun:"name"`
	Category     Category  `bun:"category"`
	Unit         Unit      `bun:"unit"`
	PricePerUnit float64   `bun:"price_per_unit"`
	StockQty     int       `bun:"stock_qty"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero"`
}
