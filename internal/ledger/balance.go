// Package ledger computes balances and settlement suggestions for a group.
// Both computations are pure: they consume a point-in-time snapshot of
// expenses and payments loaded by the caller and perform no writes.
package ledger

import "github.com/tripcrew/tripcrew/internal/money"

// Expense is the slice of an expense the ledger needs.
type Expense struct {
	PayerID int64
	Amount  money.Cents
	Splits  []Split
}

// Split is one member's owed share of an expense.
type Split struct {
	MemberID   int64
	AmountOwed money.Cents
}

// Payment is a direct settlement transfer between two members.
type Payment struct {
	SenderID   int64
	ReceiverID int64
	Amount     money.Cents
}

// Balance is one member's net position. Net is paid minus owed, adjusted by
// payments: a payment discharges debt, so it moves the sender's net up and
// the receiver's net down without touching historical spend.
type Balance struct {
	MemberID int64       `json:"member_id"`
	Paid     money.Cents `json:"paid"`
	Owed     money.Cents `json:"owed"`
	Net      money.Cents `json:"net"`
	Settled  bool        `json:"settled"`
}

// ComputeBalances aggregates expenses, splits and payments into one balance
// per member. All inputs must already be restricted to a single group and
// currency. Members with no activity appear with zero balances.
func ComputeBalances(expenses []Expense, payments []Payment, memberIDs []int64) map[int64]*Balance {
	balances := make(map[int64]*Balance, len(memberIDs))
	get := func(id int64) *Balance {
		b, ok := balances[id]
		if !ok {
			b = &Balance{MemberID: id}
			balances[id] = b
		}
		return b
	}

	for _, id := range memberIDs {
		get(id)
	}

	for _, e := range expenses {
		get(e.PayerID).Paid += e.Amount
		for _, s := range e.Splits {
			get(s.MemberID).Owed += s.AmountOwed
		}
	}

	for _, b := range balances {
		b.Net = b.Paid - b.Owed
	}

	for _, p := range payments {
		get(p.SenderID).Net += p.Amount
		get(p.ReceiverID).Net -= p.Amount
	}

	for _, b := range balances {
		b.Settled = b.Net == 0
	}

	return balances
}
