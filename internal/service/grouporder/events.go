package grouporder

import "time"

// Event types published to the message bus as campaigns change.
const (
	EventCreated   = "group_order.created"
	EventJoined    = "group_order.joined"
	EventCompleted = "group_order.completed"
	EventExpired   = "group_order.expired"
)

// Event is the envelope emitted for every group order state change.
type Event struct {
	Type         string    `json:"type"`
	GroupOrderID int64     `json:"group_order_id"`
	Reference    string    `json:"reference"`
	ItemName     string    `json:"item_name"`
	Status       string    `json:"status"`
	UserID       string    `json:"user_id,omitempty"`
	Quantity     int       `json:"quantity,omitempty"`
	MemberCount  int       `json:"member_count"`
	OccurredAt   time.Time `json:"occurred_at"`
}
