package dto

import "time"

// OrderResponse represents a direct order as exposed via transport layers.
type OrderResponse struct {
	ID         int64     `json:"id"`
	Number     string    `json:"number"`
	RetailerID string    `json:"retailer_id"`
	ProductID  int64     `json:"product_id"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
