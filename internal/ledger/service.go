package ledger

import (
	"context"
	"sort"

	"github.com/tripcrew/tripcrew/internal/expense"
	"github.com/tripcrew/tripcrew/internal/group"
	"github.com/tripcrew/tripcrew/internal/payment"
)

// GroupSource resolves a group and its membership
type GroupSource interface {
	GetByID(ctx context.Context, id int64) (*group.Group, error)
	MemberIDs(ctx context.Context, groupID int64) ([]int64, error)
}

// ExpenseSource loads a group's expenses with splits in one currency
type ExpenseSource interface {
	ListWithSplitsByGroup(ctx context.Context, groupID int64, currency string) ([]*expense.ExpenseWithSplits, error)
}

// PaymentSource loads a group's payments in one currency
type PaymentSource interface {
	ListByGroupAndCurrency(ctx context.Context, groupID int64, currency string) ([]*payment.Payment, error)
}

// Service assembles point-in-time snapshots and runs the ledger computations
// over them. It holds no state of its own.
type Service struct {
	groups   GroupSource
	expenses ExpenseSource
	payments PaymentSource
}

// NewService creates a new ledger service
func NewService(groups GroupSource, expenses ExpenseSource, payments PaymentSource) *Service {
	return &Service{groups: groups, expenses: expenses, payments: payments}
}

// Balances computes per-member balances for a group in one currency. An empty
// currency falls back to the group's default. Balances in different
// currencies never mix.
func (s *Service) Balances(ctx context.Context, groupID int64, currency string) ([]*Balance, string, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, "", err
	}
	if currency == "" {
		currency = g.Currency
	}

	balances, err := s.compute(ctx, groupID, currency)
	if err != nil {
		return nil, "", err
	}

	sorted := make([]*Balance, 0, len(balances))
	for _, b := range balances {
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MemberID < sorted[j].MemberID })

	return sorted, currency, nil
}

// Settlements suggests the transfers that would settle a group's balances in
// one currency.
func (s *Service) Settlements(ctx context.Context, groupID int64, currency string) ([]Transfer, string, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, "", err
	}
	if currency == "" {
		currency = g.Currency
	}

	balances, err := s.compute(ctx, groupID, currency)
	if err != nil {
		return nil, "", err
	}

	return ComputeSettlements(balances), currency, nil
}

func (s *Service) compute(ctx context.Context, groupID int64, currency string) (map[int64]*Balance, error) {
	memberIDs, err := s.groups.MemberIDs(ctx, groupID)
	if err != nil {
		return nil, err
	}

	withSplits, err := s.expenses.ListWithSplitsByGroup(ctx, groupID, currency)
	if err != nil {
		return nil, err
	}

	recorded, err := s.payments.ListByGroupAndCurrency(ctx, groupID, currency)
	if err != nil {
		return nil, err
	}

	expenses := make([]Expense, len(withSplits))
	for i, ews := range withSplits {
		e := Expense{
			PayerID: ews.Expense.PayerID,
			Amount:  ews.Expense.Amount,
			Splits:  make([]Split, len(ews.Splits)),
		}
		for j, sp := range ews.Splits {
			e.Splits[j] = Split{MemberID: sp.MemberID, AmountOwed: sp.AmountOwed}
		}
		expenses[i] = e
	}

	payments := make([]Payment, len(recorded))
	for i, p := range recorded {
		payments[i] = Payment{SenderID: p.SenderID, ReceiverID: p.ReceiverID, Amount: p.Amount}
	}

	return ComputeBalances(expenses, payments, memberIDs), nil
}
