package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcrew/tripcrew/internal/expense/split"
	"github.com/tripcrew/tripcrew/internal/money"
	"github.com/tripcrew/tripcrew/internal/writecoord"
)

// fakeStore is an in-memory Store with per-method failure injection.
type fakeStore struct {
	expenses map[int64]*Expense
	splits   map[int64]*Split

	nextExpenseID int64
	nextSplitID   int64

	failInsertSplitAfter int // fail once, on the Nth+1 InsertSplit; -1 disables
	insertSplitCalls     int
	failUpdateExpense    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		expenses:             make(map[int64]*Expense),
		splits:               make(map[int64]*Split),
		failInsertSplitAfter: -1,
	}
}

func (f *fakeStore) InsertExpense(_ context.Context, e *Expense) error {
	f.nextExpenseID++
	e.ID = f.nextExpenseID
	e.CreatedAt = time.Now().UTC()
	stored := *e
	f.expenses[e.ID] = &stored
	return nil
}

func (f *fakeStore) UpdateExpense(_ context.Context, e *Expense) error {
	if f.failUpdateExpense {
		return errors.New("update failed")
	}
	stored := *e
	f.expenses[e.ID] = &stored
	return nil
}

func (f *fakeStore) DeleteExpense(_ context.Context, id int64) error {
	delete(f.expenses, id)
	for sid, sp := range f.splits {
		if sp.ExpenseID == id {
			delete(f.splits, sid)
		}
	}
	return nil
}

func (f *fakeStore) GetExpenseByID(_ context.Context, id int64) (*Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (f *fakeStore) ListByGroupID(_ context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var out []*Expense
	for _, e := range f.expenses {
		if e.GroupID == groupID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (f *fakeStore) ListWithSplitsByGroup(_ context.Context, groupID int64, currency string) ([]*ExpenseWithSplits, error) {
	var out []*ExpenseWithSplits
	for _, e := range f.expenses {
		if e.GroupID != groupID || e.Currency != currency {
			continue
		}
		copied := *e
		ews := &ExpenseWithSplits{Expense: &copied}
		for _, sp := range f.splits {
			if sp.ExpenseID == e.ID {
				sc := *sp
				ews.Splits = append(ews.Splits, &sc)
			}
		}
		out = append(out, ews)
	}
	return out, nil
}

func (f *fakeStore) InsertSplit(_ context.Context, s *Split) error {
	if f.failInsertSplitAfter >= 0 && f.insertSplitCalls >= f.failInsertSplitAfter {
		f.failInsertSplitAfter = -1
		return errors.New("split insert failed")
	}
	f.insertSplitCalls++
	f.nextSplitID++
	s.ID = f.nextSplitID
	stored := *s
	f.splits[s.ID] = &stored
	return nil
}

func (f *fakeStore) DeleteSplit(_ context.Context, id int64) error {
	delete(f.splits, id)
	return nil
}

func (f *fakeStore) DeleteSplitsByExpenseID(_ context.Context, expenseID int64) error {
	for id, sp := range f.splits {
		if sp.ExpenseID == expenseID {
			delete(f.splits, id)
		}
	}
	return nil
}

func (f *fakeStore) GetSplitByID(_ context.Context, id int64) (*Split, error) {
	sp, ok := f.splits[id]
	if !ok {
		return nil, nil
	}
	copied := *sp
	return &copied, nil
}

func (f *fakeStore) GetSplitsByExpenseID(_ context.Context, expenseID int64) ([]*Split, error) {
	var out []*Split
	for _, sp := range f.splits {
		if sp.ExpenseID == expenseID {
			copied := *sp
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkSplitSettled(_ context.Context, id int64, settledAt time.Time) (*Split, error) {
	sp, ok := f.splits[id]
	if !ok {
		return nil, nil
	}
	sp.Settled = true
	sp.SettledAt = &settledAt
	copied := *sp
	return &copied, nil
}

func (f *fakeStore) splitsFor(expenseID int64) []*Split {
	var out []*Split
	for _, sp := range f.splits {
		if sp.ExpenseID == expenseID {
			out = append(out, sp)
		}
	}
	return out
}

func newTestService(store Store) *Service {
	return NewService(store, split.NewFactory(), writecoord.New(nil), nil)
}

func TestServiceCreate(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	req := &CreateExpenseRequest{
		GroupID:     1,
		Description: "Hotel",
		Amount:      100.00,
		Currency:    "USD",
		SplitPolicy: string(split.PolicyEqual),
		Participants: []*SplitParticipant{
			{MemberID: 1}, {MemberID: 2}, {MemberID: 3},
		},
	}

	result, err := svc.Create(context.Background(), 1, req)
	require.NoError(t, err)
	require.Len(t, result.Splits, 3)

	var sum money.Cents
	for _, sp := range result.Splits {
		sum += sp.AmountOwed
		if sp.MemberID == 1 {
			assert.True(t, sp.Settled, "payer's split starts settled")
			assert.NotNil(t, sp.SettledAt)
		} else {
			assert.False(t, sp.Settled)
		}
	}
	assert.Equal(t, money.Cents(10000), sum, "splits must sum to the total")

	assert.Len(t, store.expenses, 1)
	assert.Len(t, store.splits, 3)
	assert.Equal(t, money.Cents(10000), store.expenses[result.Expense.ID].Amount)
}

func TestServiceCreateValidationFailureWritesNothing(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	pct := 60.0
	req := &CreateExpenseRequest{
		GroupID:     1,
		Description: "Dinner",
		Amount:      50.00,
		Currency:    "USD",
		SplitPolicy: string(split.PolicyPercentage),
		Participants: []*SplitParticipant{
			{MemberID: 1, Percentage: &pct},
			{MemberID: 2, Percentage: &pct}, // sums to 120
		},
	}

	_, err := svc.Create(context.Background(), 1, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, split.ErrPercentageSum)
	assert.Empty(t, store.expenses)
	assert.Empty(t, store.splits)
}

func TestServiceCreateSplitFailureRollsBackExpense(t *testing.T) {
	store := newFakeStore()
	store.failInsertSplitAfter = 1 // first split lands, second fails
	svc := newTestService(store)

	req := &CreateExpenseRequest{
		GroupID:     1,
		Description: "Car rental",
		Amount:      90.00,
		Currency:    "USD",
		SplitPolicy: string(split.PolicyEqual),
		Participants: []*SplitParticipant{
			{MemberID: 1}, {MemberID: 2}, {MemberID: 3},
		},
	}

	_, err := svc.Create(context.Background(), 1, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expense.create")

	assert.Empty(t, store.expenses, "expense row must be compensated away")
	assert.Empty(t, store.splits, "inserted splits must be compensated away")
}

func TestServiceUpdateDescriptionOnly(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), 1, &CreateExpenseRequest{
		GroupID:     1,
		Description: "Taxi",
		Amount:      30.00,
		Currency:    "USD",
		SplitPolicy: string(split.PolicyEqual),
		Participants: []*SplitParticipant{
			{MemberID: 1}, {MemberID: 2},
		},
	})
	require.NoError(t, err)

	desc := "Airport taxi"
	result, err := svc.Update(context.Background(), created.Expense.ID, 1, &UpdateExpenseRequest{
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, "Airport taxi", result.Expense.Description)
	assert.Equal(t, money.Cents(3000), result.Expense.Amount)
	assert.Len(t, store.splitsFor(created.Expense.ID), 2, "splits untouched")
}

func TestServiceUpdateResplit(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), 1, &CreateExpenseRequest{
		GroupID:     1,
		Description: "Groceries",
		Amount:      60.00,
		Currency:    "USD",
		SplitPolicy: string(split.PolicyEqual),
		Participants: []*SplitParticipant{
			{MemberID: 1}, {MemberID: 2},
		},
	})
	require.NoError(t, err)

	amount := 90.00
	policy := string(split.PolicyEqual)
	result, err := svc.Update(context.Background(), created.Expense.ID, 1, &UpdateExpenseRequest{
		Amount:      &amount,
		SplitPolicy: &policy,
		Participants: []*SplitParticipant{
			{MemberID: 1}, {MemberID: 2}, {MemberID: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(9000), result.Expense.Amount)
	require.Len(t, result.Splits, 3)

	stored := store.splitsFor(created.Expense.ID)
	assert.Len(t, stored, 3, "old splits replaced wholesale")
	var sum money.Cents
	for _, sp := range stored {
		sum += sp.AmountOwed
	}
	assert.Equal(t, money.Cents(9000), sum)
}

func TestServiceUpdateResplitRollbackRestoresOldState(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), 1, &CreateExpenseRequest{
		GroupID:     1,
		Description: "Museum tickets",
		Amount:      40.00,
		Currency:    "USD",
		SplitPolicy: string(split.PolicyEqual),
		Participants: []*SplitParticipant{
			{MemberID: 1}, {MemberID: 2},
		},
	})
	require.NoError(t, err)
	oldAmounts := make(map[int64]money.Cents)
	for _, sp := range store.splitsFor(created.Expense.ID) {
		oldAmounts[sp.MemberID] = sp.AmountOwed
	}

	// Let the update and delete succeed, then fail on the second new split.
	store.failInsertSplitAfter = store.insertSplitCalls + 1

	amount := 99.00
	policy := string(split.PolicyEqual)
	_, err = svc.Update(context.Background(), created.Expense.ID, 1, &UpdateExpenseRequest{
		Amount:      &amount,
		SplitPolicy: &policy,
		Participants: []*SplitParticipant{
			{MemberID: 1}, {MemberID: 2}, {MemberID: 3},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expense.update")

	// The lone landed new split was compensated, the delete was compensated
	// by reinsertion, and the expense row was restored.
	exp := store.expenses[created.Expense.ID]
	require.NotNil(t, exp)
	assert.Equal(t, money.Cents(4000), exp.Amount, "expense amount restored")

	restored := store.splitsFor(created.Expense.ID)
	require.Len(t, restored, 2, "old splits restored")
	for _, sp := range restored {
		assert.Equal(t, oldAmounts[sp.MemberID], sp.AmountOwed)
	}
}

func TestServiceUpdateGuards(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), 1, &CreateExpenseRequest{
		GroupID:     1,
		Description: "Ferry",
		Amount:      20.00,
		Currency:    "USD",
		SplitPolicy: string(split.PolicyEqual),
		Participants: []*SplitParticipant{
			{MemberID: 1}, {MemberID: 2},
		},
	})
	require.NoError(t, err)

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 999, 1, &UpdateExpenseRequest{})
		assert.ErrorIs(t, err, ErrExpenseNotFound)
	})

	t.Run("not payer", func(t *testing.T) {
		desc := "nope"
		_, err := svc.Update(context.Background(), created.Expense.ID, 2, &UpdateExpenseRequest{Description: &desc})
		assert.ErrorIs(t, err, ErrNotPayer)
	})

	t.Run("incomplete resplit", func(t *testing.T) {
		amount := 25.00
		_, err := svc.Update(context.Background(), created.Expense.ID, 1, &UpdateExpenseRequest{Amount: &amount})
		assert.ErrorIs(t, err, ErrIncompleteResplit)
	})
}

func TestServiceMarkSplitSettled(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), 1, &CreateExpenseRequest{
		GroupID:     1,
		Description: "Lunch",
		Amount:      24.00,
		Currency:    "USD",
		SplitPolicy: string(split.PolicyEqual),
		Participants: []*SplitParticipant{
			{MemberID: 1}, {MemberID: 2},
		},
	})
	require.NoError(t, err)

	var target *Split
	for _, sp := range created.Splits {
		if sp.MemberID == 2 {
			target = sp
		}
	}
	require.NotNil(t, target)

	t.Run("wrong member", func(t *testing.T) {
		_, err := svc.MarkSplitSettled(context.Background(), target.ID, 3)
		assert.ErrorIs(t, err, ErrNotSplitMember)
	})

	t.Run("owing member settles", func(t *testing.T) {
		sp, err := svc.MarkSplitSettled(context.Background(), target.ID, 2)
		require.NoError(t, err)
		assert.True(t, sp.Settled)
		require.NotNil(t, sp.SettledAt)
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := svc.MarkSplitSettled(context.Background(), target.ID, 2)
		require.NoError(t, err)
		second, err := svc.MarkSplitSettled(context.Background(), target.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, first.SettledAt, second.SettledAt, "settling twice keeps the original timestamp")
	})

	t.Run("missing split", func(t *testing.T) {
		_, err := svc.MarkSplitSettled(context.Background(), 999, 2)
		assert.ErrorIs(t, err, ErrSplitNotFound)
	})
}

func TestServiceDelete(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), 1, &CreateExpenseRequest{
		GroupID:     1,
		Description: "Snacks",
		Amount:      12.00,
		Currency:    "USD",
		SplitPolicy: string(split.PolicyEqual),
		Participants: []*SplitParticipant{
			{MemberID: 1}, {MemberID: 2},
		},
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.Expense.ID, 2)
	assert.ErrorIs(t, err, ErrNotPayer)

	err = svc.Delete(context.Background(), created.Expense.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, store.expenses)
	assert.Empty(t, store.splits)
}
