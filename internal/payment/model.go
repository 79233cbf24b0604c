package payment

import (
	"time"

	"github.com/tripcrew/tripcrew/internal/money"
)

// Payment represents a direct repayment between two group members. Amount is
// in minor currency units.
type Payment struct {
	ID          int64       `json:"id"`
	GroupID     int64       `json:"group_id"`
	SenderID    int64       `json:"sender_id"`
	ReceiverID  int64       `json:"receiver_id"`
	Amount      money.Cents `json:"amount"`
	Currency    string      `json:"currency"`
	Description string      `json:"description,omitempty"`
	PaidAt      time.Time   `json:"paid_at"`
	CreatedBy   int64       `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`

	// Populated via JOIN
	SenderUsername   string `json:"sender_username,omitempty"`
	ReceiverUsername string `json:"receiver_username,omitempty"`
}
