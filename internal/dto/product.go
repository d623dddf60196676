package dto

import "time"

// ProductResponse represents a catalog listing as exposed via transport layers.
type ProductResponse struct {
	ID           int64     `json:"id"`
	SupplierID   string    `json:"supplier_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Unit         string    `json:"unit"`
	PricePerUnit float64   `json:"price_per_unit"`
	StockQty     int       `json:"stock_qty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
