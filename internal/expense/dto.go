package expense

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	GroupID      int64               `json:"group_id" validate:"required"`
	Description  string              `json:"description" validate:"required,min=1,max=255"`
	Amount       float64             `json:"amount" validate:"required,gt=0"`
	Currency     string              `json:"currency" validate:"required,len=3"`
	Category     string              `json:"category" validate:"omitempty,max=50"`
	SplitPolicy  string              `json:"split_policy" validate:"required,oneof=EQUAL PERCENTAGE CUSTOM"`
	Participants []*SplitParticipant `json:"participants" validate:"required,min=1,dive"`
}

// UpdateExpenseRequest represents the request to update an expense. When the
// amount, policy or participants change, all three must be supplied and the
// splits are replaced wholesale.
type UpdateExpenseRequest struct {
	Description  *string             `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	Category     *string             `json:"category,omitempty" validate:"omitempty,max=50"`
	Amount       *float64            `json:"amount,omitempty" validate:"omitempty,gt=0"`
	SplitPolicy  *string             `json:"split_policy,omitempty" validate:"omitempty,oneof=EQUAL PERCENTAGE CUSTOM"`
	Participants []*SplitParticipant `json:"participants,omitempty" validate:"omitempty,min=1,dive"`
}

// Resplits reports whether the update replaces the expense's splits.
func (r *UpdateExpenseRequest) Resplits() bool {
	return r.Amount != nil || r.SplitPolicy != nil || len(r.Participants) > 0
}

// ExpenseResponse represents the response for an expense. Amounts are in
// major units.
type ExpenseResponse struct {
	ID            int64            `json:"id"`
	GroupID       int64            `json:"group_id"`
	PayerID       int64            `json:"payer_id"`
	PayerUsername string           `json:"payer_username,omitempty"`
	Description   string           `json:"description"`
	Amount        float64          `json:"amount"`
	Currency      string           `json:"currency"`
	Category      string           `json:"category"`
	SplitPolicy   string           `json:"split_policy"`
	CreatedAt     string           `json:"created_at"`
	Splits        []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID             int64    `json:"id"`
	ExpenseID      int64    `json:"expense_id"`
	MemberID       int64    `json:"member_id"`
	MemberUsername string   `json:"member_username,omitempty"`
	AmountOwed     float64  `json:"amount_owed"`
	Percentage     *float64 `json:"percentage,omitempty"`
	Settled        bool     `json:"settled"`
	SettledAt      *string  `json:"settled_at,omitempty"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		GroupID:       e.GroupID,
		PayerID:       e.PayerID,
		PayerUsername: e.PayerUsername,
		Description:   e.Description,
		Amount:        e.Amount.Float64(),
		Currency:      e.Currency,
		Category:      e.Category,
		SplitPolicy:   e.SplitPolicy,
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	resp := &SplitResponse{
		ID:             s.ID,
		ExpenseID:      s.ExpenseID,
		MemberID:       s.MemberID,
		MemberUsername: s.MemberUsername,
		AmountOwed:     s.AmountOwed.Float64(),
		Percentage:     s.Percentage,
		Settled:        s.Settled,
	}
	if s.SettledAt != nil {
		formatted := s.SettledAt.Format("2006-01-02T15:04:05Z")
		resp.SettledAt = &formatted
	}
	return resp
}
