package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"kakeibo/internal/models"
)

type ExpenseSQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewExpenseSQLite(db *sql.DB) *ExpenseSQLite {
	return &ExpenseSQLite{db: db, now: time.Now}
}

var _ ExpenseRepo = (*ExpenseSQLite)(nil)

const expenseColumns = `id, user_id, spent_on, category, title, amount, memo, created_at`

const (
	insertExpenseSQL = `
		INSERT INTO expenses (user_id, spent_on, category, title, amount, memo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectExpenseSQL = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = ? AND user_id = ?`
	updateExpenseSQL = `
		UPDATE expenses SET spent_on = ?, category = ?, title = ?, amount = ?, memo = ?
		WHERE id = ? AND user_id = ?
	`
	deleteExpenseSQL = `DELETE FROM expenses WHERE id = ? AND user_id = ?`
	listExpensesSQL  = `
		SELECT ` + expenseColumns + ` FROM expenses
		WHERE user_id = ? AND spent_on >= ? AND spent_on < ?
		ORDER BY spent_on DESC, id DESC
	`
)

// nullableMemo maps a nil or empty memo to SQL NULL.
func nullableMemo(memo *string) sql.NullString {
	if memo == nil || *memo == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *memo, Valid: true}
}

// Create inserts e for e.UserID and returns the new row id. CreatedAt is set here.
func (r *ExpenseSQLite) Create(ctx context.Context, e models.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertExpenseSQL,
		e.UserID,
		e.SpentOn.Format(models.DateLayout),
		e.Category,
		e.Title,
		e.Amount,
		nullableMemo(e.Memo),
		r.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense for user %d: %w", e.UserID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for expense: %w", err)
	}
	return id, nil
}

// Get fetches one expense owned by userID. Returns (nil, nil) if not found.
func (r *ExpenseSQLite) Get(ctx context.Context, userID, id int64) (*models.Expense, error) {
	e, err := scanExpense(r.db.QueryRowContext(ctx, selectExpenseSQL, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select expense %d: %w", id, err)
	}
	return &e, nil
}

// Update overwrites the mutable fields of e, matched by e.ID and e.UserID.
// It returns the number of affected rows (0 for missing or foreign ids).
func (r *ExpenseSQLite) Update(ctx context.Context, e models.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx, updateExpenseSQL,
		e.SpentOn.Format(models.DateLayout),
		e.Category,
		e.Title,
		e.Amount,
		nullableMemo(e.Memo),
		e.ID,
		e.UserID,
	)
	if err != nil {
		return 0, fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for expense %d: %w", e.ID, err)
	}
	return n, nil
}

// Delete removes the expense if it is owned by userID; otherwise it is a no-op.
func (r *ExpenseSQLite) Delete(ctx context.Context, userID, id int64) error {
	if _, err := r.db.ExecContext(ctx, deleteExpenseSQL, id, userID); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return nil
}

// ListBetween returns expenses of userID with spent_on in [from, to), newest first.
func (r *ExpenseSQLite) ListBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, listExpensesSQL,
		userID,
		from.Format(models.DateLayout),
		upperDateBound(to),
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Expense, 0, 32)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// upperDateBound formats the exclusive end of a date range. spent_on is compared
// as text, so a five-digit year would sort before "9999-12-31"; past year 9999 the
// bound becomes a string greater than every storable date.
func upperDateBound(to time.Time) string {
	if to.Year() > 9999 {
		return "9999-12-32"
	}
	return to.Format(models.DateLayout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (models.Expense, error) {
	var (
		e                  models.Expense
		spentOn, createdAt string
		memo               sql.NullString
	)
	if err := row.Scan(&e.ID, &e.UserID, &spentOn, &e.Category, &e.Title, &e.Amount, &memo, &createdAt); err != nil {
		return models.Expense{}, err
	}
	d, err := time.Parse(models.DateLayout, spentOn)
	if err != nil {
		return models.Expense{}, fmt.Errorf("parse spent_on %q: %w", spentOn, err)
	}
	e.SpentOn = d
	if memo.Valid {
		m := memo.String
		e.Memo = &m
	}
	e.CreatedAt = parseTimestamp(createdAt)
	return e, nil
}
