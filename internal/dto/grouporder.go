package dto

import "time"

// GroupOrderResponse represents a campaign as exposed via transport layers,
// including the display-oriented derived fields.
type GroupOrderResponse struct {
	ID              int64                `json:"id"`
	Reference       string               `json:"reference"`
	ItemName        string               `json:"item_name"`
	Category        string               `json:"category"`
	TargetPrice     float64              `json:"target_price"`
	Unit            string               `json:"unit"`
	MinVendors      int                  `json:"min_vendors"`
	Deadline        time.Time            `json:"deadline"`
	Status          string               `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
	Members         []MembershipResponse `json:"members"`
	MemberCount     int                  `json:"member_count"`
	TotalQuantity   int                  `json:"total_quantity"`
	ProgressPercent int                  `json:"progress_percent"`
	TimeRemaining   string               `json:"time_remaining"`
	IsMember        bool                 `json:"is_member"`
}

// MembershipResponse is one enrollment inside a campaign.
type MembershipResponse struct {
	UserID   string    `json:"user_id"`
	Quantity int       `json:"quantity"`
	JoinedAt time.Time `json:"joined_at"`
}
