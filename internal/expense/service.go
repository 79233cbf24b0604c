package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tripcrew/tripcrew/internal/expense/split"
	"github.com/tripcrew/tripcrew/internal/money"
	"github.com/tripcrew/tripcrew/internal/writecoord"
	"github.com/tripcrew/tripcrew/pkg/metrics"
)

// Common errors
var (
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrSplitNotFound     = errors.New("split not found")
	ErrNotSplitMember    = errors.New("only the owing member can settle a split")
	ErrNotPayer          = errors.New("only the payer can modify this expense")
	ErrIncompleteResplit = errors.New("amount, split policy and participants must all be supplied to change the splits")
)

// Store is the persistence surface the expense service needs. The concrete
// Repository satisfies it; tests substitute a fake to exercise the rollback
// paths without a database.
type Store interface {
	InsertExpense(ctx context.Context, e *Expense) error
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	GetExpenseByID(ctx context.Context, id int64) (*Expense, error)
	ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error)
	ListWithSplitsByGroup(ctx context.Context, groupID int64, currency string) ([]*ExpenseWithSplits, error)

	InsertSplit(ctx context.Context, s *Split) error
	DeleteSplit(ctx context.Context, id int64) error
	DeleteSplitsByExpenseID(ctx context.Context, expenseID int64) error
	GetSplitByID(ctx context.Context, id int64) (*Split, error)
	GetSplitsByExpenseID(ctx context.Context, expenseID int64) ([]*Split, error)
	MarkSplitSettled(ctx context.Context, id int64, settledAt time.Time) (*Split, error)
}

// Notifier lets the expense feature raise notifications without depending
// on the notification package directly.
type Notifier interface {
	ExpenseAdded(ctx context.Context, recipientID, expenseID int64, description string)
}

// Service handles expense business logic
type Service struct {
	store    Store
	splits   *split.Factory
	coord    *writecoord.Coordinator
	notifier Notifier
}

// NewService creates a new expense service
func NewService(store Store, splits *split.Factory, coord *writecoord.Coordinator, notifier Notifier) *Service {
	return &Service{store: store, splits: splits, coord: coord, notifier: notifier}
}

// Create validates the request, materializes the splits and persists the
// expense and its splits as one coordinated write. A failure partway leaves
// no trace: the expense row is compensated away along with any splits that
// made it in.
func (s *Service) Create(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	outputs, err := s.calculate(req.SplitPolicy, req.Amount, payerID, req.Participants)
	if err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = "general"
	}
	exp := &Expense{
		GroupID:     req.GroupID,
		PayerID:     payerID,
		Description: req.Description,
		Amount:      money.FromFloat(req.Amount),
		Currency:    req.Currency,
		Category:    category,
		SplitPolicy: req.SplitPolicy,
	}
	splits := buildSplits(outputs)

	steps := []writecoord.Step{{
		Name: "insert expense",
		Run: func(ctx context.Context) error {
			return s.store.InsertExpense(ctx, exp)
		},
		Compensate: func(ctx context.Context) error {
			return s.store.DeleteExpense(ctx, exp.ID)
		},
	}}
	for _, sp := range splits {
		steps = append(steps, s.insertSplitStep(exp, sp))
	}

	if err := s.coord.Execute(ctx, "expense.create", steps...); err != nil {
		return nil, err
	}

	metrics.ExpensesCreated.Inc()
	s.notifySplitMembers(ctx, exp, splits)

	return &ExpenseWithSplits{Expense: exp, Splits: splits}, nil
}

// Update modifies an expense. When the amount, policy or participants
// change, the splits are replaced wholesale (delete-then-reinsert) under the
// coordinator, so a concurrent settle of a removed split cannot leave a
// patched hybrid behind.
func (s *Service) Update(ctx context.Context, id, actorID int64, req *UpdateExpenseRequest) (*ExpenseWithSplits, error) {
	existing, err := s.store.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}
	if existing.PayerID != actorID {
		return nil, ErrNotPayer
	}

	previous := *existing
	updated := *existing
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}

	if !req.Resplits() {
		if err := s.store.UpdateExpense(ctx, &updated); err != nil {
			return nil, err
		}
		splits, err := s.store.GetSplitsByExpenseID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &ExpenseWithSplits{Expense: &updated, Splits: splits}, nil
	}

	if req.Amount == nil || req.SplitPolicy == nil || len(req.Participants) == 0 {
		return nil, ErrIncompleteResplit
	}

	outputs, err := s.calculate(*req.SplitPolicy, *req.Amount, existing.PayerID, req.Participants)
	if err != nil {
		return nil, err
	}
	updated.Amount = money.FromFloat(*req.Amount)
	updated.SplitPolicy = *req.SplitPolicy

	oldSplits, err := s.store.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}
	newSplits := buildSplits(outputs)

	steps := []writecoord.Step{
		{
			Name: "update expense",
			Run: func(ctx context.Context) error {
				return s.store.UpdateExpense(ctx, &updated)
			},
			Compensate: func(ctx context.Context) error {
				return s.store.UpdateExpense(ctx, &previous)
			},
		},
		{
			Name: "delete old splits",
			Run: func(ctx context.Context) error {
				return s.store.DeleteSplitsByExpenseID(ctx, id)
			},
			Compensate: func(ctx context.Context) error {
				for _, sp := range oldSplits {
					restored := *sp
					if err := s.store.InsertSplit(ctx, &restored); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
	for _, sp := range newSplits {
		steps = append(steps, s.insertSplitStep(&updated, sp))
	}

	if err := s.coord.Execute(ctx, "expense.update", steps...); err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: &updated, Splits: newSplits}, nil
}

// GetByID retrieves an expense with its splits
func (s *Service) GetByID(ctx context.Context, id int64) (*ExpenseWithSplits, error) {
	exp, err := s.store.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.store.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: exp, Splits: splits}, nil
}

// ListByGroupID retrieves expenses for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListByGroupID(ctx, groupID, perPage, offset)
}

// ListWithSplitsByGroup loads a snapshot of a group's expenses and splits in
// one currency, for the ledger.
func (s *Service) ListWithSplitsByGroup(ctx context.Context, groupID int64, currency string) ([]*ExpenseWithSplits, error) {
	return s.store.ListWithSplitsByGroup(ctx, groupID, currency)
}

// MarkSplitSettled lets the owing member mark their split as settled
func (s *Service) MarkSplitSettled(ctx context.Context, splitID, memberID int64) (*Split, error) {
	sp, err := s.store.GetSplitByID(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, ErrSplitNotFound
	}
	if sp.MemberID != memberID {
		return nil, ErrNotSplitMember
	}
	if sp.Settled {
		return sp, nil
	}

	return s.store.MarkSplitSettled(ctx, splitID, time.Now().UTC())
}

// Delete removes an expense; its splits go with it
func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	exp, err := s.store.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if exp == nil {
		return ErrExpenseNotFound
	}
	if exp.PayerID != actorID {
		return ErrNotPayer
	}

	return s.store.DeleteExpense(ctx, id)
}

func (s *Service) calculate(policy string, amount float64, payerID int64, participants []*SplitParticipant) ([]split.Output, error) {
	strategy, err := s.splits.CreateFromString(policy)
	if err != nil {
		return nil, err
	}

	inputs := make([]split.Input, len(participants))
	for i, p := range participants {
		inputs[i] = p.ToSplitInput()
	}

	return strategy.Calculate(money.FromFloat(amount), payerID, inputs)
}

func (s *Service) insertSplitStep(exp *Expense, sp *Split) writecoord.Step {
	return writecoord.Step{
		Name: fmt.Sprintf("insert split for member %d", sp.MemberID),
		Run: func(ctx context.Context) error {
			sp.ExpenseID = exp.ID
			return s.store.InsertSplit(ctx, sp)
		},
		Compensate: func(ctx context.Context) error {
			return s.store.DeleteSplit(ctx, sp.ID)
		},
	}
}

func (s *Service) notifySplitMembers(ctx context.Context, exp *Expense, splits []*Split) {
	if s.notifier == nil {
		return
	}
	for _, sp := range splits {
		if sp.MemberID == exp.PayerID {
			continue
		}
		s.notifier.ExpenseAdded(ctx, sp.MemberID, exp.ID, exp.Description)
	}
}

func buildSplits(outputs []split.Output) []*Split {
	now := time.Now().UTC()
	splits := make([]*Split, len(outputs))
	for i, out := range outputs {
		sp := &Split{
			MemberID:   out.MemberID,
			AmountOwed: out.AmountOwed,
			Percentage: out.Percentage,
			Settled:    out.Settled,
		}
		if out.Settled {
			sp.SettledAt = &now
		}
		splits[i] = sp
	}
	return splits
}
