package expense

import (
	"time"

	"github.com/tripcrew/tripcrew/internal/expense/split"
	"github.com/tripcrew/tripcrew/internal/money"
)

// Expense represents a shared expense in a trip group. Amount is in minor
// currency units.
type Expense struct {
	ID          int64       `json:"id"`
	GroupID     int64       `json:"group_id"`
	PayerID     int64       `json:"payer_id"`
	Description string      `json:"description"`
	Amount      money.Cents `json:"amount"`
	Currency    string      `json:"currency"`
	Category    string      `json:"category"`
	SplitPolicy string      `json:"split_policy"` // EQUAL, PERCENTAGE, CUSTOM
	CreatedAt   time.Time   `json:"created_at"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
}

// Split represents one member's owed share of an expense. The payer's own
// split is created settled.
type Split struct {
	ID         int64       `json:"id"`
	ExpenseID  int64       `json:"expense_id"`
	MemberID   int64       `json:"member_id"`
	AmountOwed money.Cents `json:"amount_owed"`
	Percentage *float64    `json:"percentage,omitempty"`
	Settled    bool        `json:"settled"`
	SettledAt  *time.Time  `json:"settled_at,omitempty"`

	// Populated via JOIN
	MemberUsername string `json:"member_username,omitempty"`
}

// ExpenseWithSplits combines an expense with its splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}

// SplitParticipant is one participant in a create/update request. Amount is
// in major units as submitted by the client.
type SplitParticipant struct {
	MemberID   int64    `json:"member_id" validate:"required"`
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE policy
	Amount     *float64 `json:"amount,omitempty"`     // For CUSTOM policy
}

// ToSplitInput converts to the split package's input type, moving major
// units to cents at the boundary.
func (p *SplitParticipant) ToSplitInput() split.Input {
	in := split.Input{
		MemberID:   p.MemberID,
		Percentage: p.Percentage,
	}
	if p.Amount != nil {
		cents := money.FromFloat(*p.Amount)
		in.Amount = &cents
	}
	return in
}
