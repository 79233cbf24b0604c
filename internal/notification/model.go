package notification

import "time"

// Entity types a notification can point at
const (
	EntityExpense = "expense"
	EntityPayment = "payment"
	EntityGroup   = "group"
)

// Notification represents an in-app message for a member
type Notification struct {
	ID         int64     `json:"id"`
	MemberID   int64     `json:"member_id"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	EntityType *string   `json:"entity_type,omitempty"`
	EntityID   *int64    `json:"entity_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationResponse represents the response for a notification
type NotificationResponse struct {
	ID         int64   `json:"id"`
	MemberID   int64   `json:"member_id"`
	Message    string  `json:"message"`
	IsRead     bool    `json:"is_read"`
	EntityType *string `json:"entity_type,omitempty"`
	EntityID   *int64  `json:"entity_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// ToResponse converts a Notification model to a NotificationResponse DTO
func (n *Notification) ToResponse() *NotificationResponse {
	return &NotificationResponse{
		ID:         n.ID,
		MemberID:   n.MemberID,
		Message:    n.Message,
		IsRead:     n.IsRead,
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
		CreatedAt:  n.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
