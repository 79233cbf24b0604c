package payment

// RecordPaymentRequest represents the request to record a payment
type RecordPaymentRequest struct {
	GroupID     int64   `json:"group_id" validate:"required"`
	SenderID    int64   `json:"sender_id" validate:"required"`
	ReceiverID  int64   `json:"receiver_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3"`
	Description string  `json:"description" validate:"omitempty,max=255"`
	PaidAt      *string `json:"paid_at,omitempty"` // RFC 3339; defaults to now
}

// PaymentResponse represents the response for a payment. Amount is in major
// units.
type PaymentResponse struct {
	ID               int64   `json:"id"`
	GroupID          int64   `json:"group_id"`
	SenderID         int64   `json:"sender_id"`
	SenderUsername   string  `json:"sender_username,omitempty"`
	ReceiverID       int64   `json:"receiver_id"`
	ReceiverUsername string  `json:"receiver_username,omitempty"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	Description      string  `json:"description,omitempty"`
	PaidAt           string  `json:"paid_at"`
	CreatedAt        string  `json:"created_at"`
}

// ToResponse converts a Payment model to a PaymentResponse DTO
func (p *Payment) ToResponse() *PaymentResponse {
	return &PaymentResponse{
		ID:               p.ID,
		GroupID:          p.GroupID,
		SenderID:         p.SenderID,
		SenderUsername:   p.SenderUsername,
		ReceiverID:       p.ReceiverID,
		ReceiverUsername: p.ReceiverUsername,
		Amount:           p.Amount.Float64(),
		Currency:         p.Currency,
		Description:      p.Description,
		PaidAt:           p.PaidAt.Format("2006-01-02T15:04:05Z"),
		CreatedAt:        p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
