package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InsertExpense inserts a new expense, filling in its id and timestamp
func (r *Repository) InsertExpense(ctx context.Context, e *Expense) error {
	query := `
		INSERT INTO expenses (group_id, payer_id, description, amount, currency, category, split_policy)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		e.GroupID, e.PayerID, e.Description, int64(e.Amount), e.Currency, e.Category, e.SplitPolicy,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// UpdateExpense writes the mutable columns of an expense back
func (r *Repository) UpdateExpense(ctx context.Context, e *Expense) error {
	query := `
		UPDATE expenses
		SET description = $2, amount = $3, category = $4, split_policy = $5
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, e.ID, e.Description, int64(e.Amount), e.Category, e.SplitPolicy)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.currency, e.category, e.split_policy, e.created_at, m.username
		FROM expenses e
		JOIN members m ON e.payer_id = m.id
		WHERE e.id = $1
	`

	e := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.GroupID, &e.PayerID, &e.Description, &e.Amount,
		&e.Currency, &e.Category, &e.SplitPolicy, &e.CreatedAt, &e.PayerUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

// ListByGroupID retrieves expenses for a group, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.currency, e.category, e.split_policy, e.created_at, m.username
		FROM expenses e
		JOIN members m ON e.payer_id = m.id
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(
			&e.ID, &e.GroupID, &e.PayerID, &e.Description, &e.Amount,
			&e.Currency, &e.Category, &e.SplitPolicy, &e.CreatedAt, &e.PayerUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, total, nil
}

// ListWithSplitsByGroup loads all expenses of a group in one currency,
// splits included, for balance computation.
func (r *Repository) ListWithSplitsByGroup(ctx context.Context, groupID int64, currency string) ([]*ExpenseWithSplits, error) {
	query := `
		SELECT id, group_id, payer_id, description, amount, currency, category, split_policy, created_at
		FROM expenses
		WHERE group_id = $1 AND currency = $2
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var result []*ExpenseWithSplits
	byID := make(map[int64]*ExpenseWithSplits)
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(
			&e.ID, &e.GroupID, &e.PayerID, &e.Description, &e.Amount,
			&e.Currency, &e.Category, &e.SplitPolicy, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		ews := &ExpenseWithSplits{Expense: e}
		byID[e.ID] = ews
		result = append(result, ews)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	splitQuery := `
		SELECT s.id, s.expense_id, s.member_id, s.amount_owed, s.percentage, s.settled, s.settled_at
		FROM expense_splits s
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.group_id = $1 AND e.currency = $2
		ORDER BY s.id
	`

	splitRows, err := r.db.QueryContext(ctx, splitQuery, groupID, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		s := &Split{}
		if err := splitRows.Scan(
			&s.ID, &s.ExpenseID, &s.MemberID, &s.AmountOwed, &s.Percentage, &s.Settled, &s.SettledAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if ews, ok := byID[s.ExpenseID]; ok {
			ews.Splits = append(ews.Splits, s)
		}
	}

	return result, nil
}

// InsertSplit inserts a new split, filling in its id
func (r *Repository) InsertSplit(ctx context.Context, s *Split) error {
	query := `
		INSERT INTO expense_splits (expense_id, member_id, amount_owed, percentage, settled, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		s.ExpenseID, s.MemberID, int64(s.AmountOwed), s.Percentage, s.Settled, s.SettledAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create split: %w", err)
	}

	return nil
}

// DeleteSplit removes a single split
func (r *Repository) DeleteSplit(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expense_splits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete split: %w", err)
	}
	return nil
}

// DeleteSplitsByExpenseID removes every split of an expense
func (r *Repository) DeleteSplitsByExpenseID(ctx context.Context, expenseID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expense_splits WHERE expense_id = $1`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}
	return nil
}

// GetSplitByID retrieves a split by its ID
func (r *Repository) GetSplitByID(ctx context.Context, id int64) (*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.member_id, s.amount_owed, s.percentage, s.settled, s.settled_at, m.username
		FROM expense_splits s
		JOIN members m ON s.member_id = m.id
		WHERE s.id = $1
	`

	s := &Split{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.ExpenseID, &s.MemberID, &s.AmountOwed, &s.Percentage, &s.Settled, &s.SettledAt,
		&s.MemberUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get split: %w", err)
	}

	return s, nil
}

// GetSplitsByExpenseID retrieves all splits for an expense
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID int64) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.member_id, s.amount_owed, s.percentage, s.settled, s.settled_at, m.username
		FROM expense_splits s
		JOIN members m ON s.member_id = m.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(
			&s.ID, &s.ExpenseID, &s.MemberID, &s.AmountOwed, &s.Percentage, &s.Settled, &s.SettledAt,
			&s.MemberUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}

	return splits, nil
}

// MarkSplitSettled flips the settled flag and records when
func (r *Repository) MarkSplitSettled(ctx context.Context, id int64, settledAt time.Time) (*Split, error) {
	query := `
		UPDATE expense_splits
		SET settled = TRUE, settled_at = $2
		WHERE id = $1
		RETURNING id, expense_id, member_id, amount_owed, percentage, settled, settled_at
	`

	s := &Split{}
	err := r.db.QueryRowContext(ctx, query, id, settledAt).Scan(
		&s.ID, &s.ExpenseID, &s.MemberID, &s.AmountOwed, &s.Percentage, &s.Settled, &s.SettledAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to settle split: %w", err)
	}

	return s, nil
}

// DeleteExpense deletes an expense and its splits. Splits go first: the
// store has no multi-table transaction, and an expense without splits is
// recoverable while orphaned splits are not.
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expense_splits WHERE expense_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}
