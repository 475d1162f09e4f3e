package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/repository"
)

var (
	datePattern      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearMonthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	amountPattern    = regexp.MustCompile(`^[0-9]+$`)
)

// MaxAmount bounds a single expense so month totals cannot overflow int64.
const MaxAmount int64 = 1_000_000_000_000

type ExpenseService struct {
	repo repository.ExpenseRepo
	now  func() time.Time
}

func NewExpenseService(repo repository.ExpenseRepo) *ExpenseService {
	return &ExpenseService{repo: repo, now: time.Now}
}

var _ Expenses = (*ExpenseService)(nil)

// Create validates in and stores it for userID.
func (s *ExpenseService) Create(ctx context.Context, userID int64, in ExpenseInput) (models.Expense, error) {
	e, err := in.validate()
	if err != nil {
		return models.Expense{}, err
	}
	e.UserID = userID
	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return models.Expense{}, err
	}
	e.ID = id
	return e, nil
}

// Update overwrites the user's expense id. Returns ErrNotFound if nothing matched.
func (s *ExpenseService) Update(ctx context.Context, userID, id int64, in ExpenseInput) (models.Expense, error) {
	if id <= 0 {
		return models.Expense{}, &ValidationError{Field: "id", Message: "invalid id"}
	}
	e, err := in.validate()
	if err != nil {
		return models.Expense{}, err
	}
	e.ID = id
	e.UserID = userID
	n, err := s.repo.Update(ctx, e)
	if err != nil {
		return models.Expense{}, err
	}
	if n == 0 {
		return models.Expense{}, ErrNotFound
	}
	return e, nil
}

// Delete removes the user's expense id. Missing or foreign ids are silently ignored.
func (s *ExpenseService) Delete(ctx context.Context, userID, id int64) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Message: "invalid id"}
	}
	return s.repo.Delete(ctx, userID, id)
}

// FindForEdit loads one of the user's expenses.
func (s *ExpenseService) FindForEdit(ctx context.Context, userID, id int64) (models.Expense, error) {
	if id <= 0 {
		return models.Expense{}, ErrNotFound
	}
	e, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return models.Expense{}, err
	}
	if e == nil {
		return models.Expense{}, ErrNotFound
	}
	return *e, nil
}

// ListForMonth returns the user's expenses within ym (YYYY-MM).
// An empty or malformed ym falls back to the current month.
func (s *ExpenseService) ListForMonth(ctx context.Context, userID int64, ym string) (MonthListing, error) {
	from := ParseYearMonth(ym, s.now())
	to := from.AddDate(0, 1, 0)

	rows, err := s.repo.ListBetween(ctx, userID, from, to)
	if err != nil {
		return MonthListing{}, err
	}
	var total int64
	for _, r := range rows {
		total += r.Amount
	}
	return MonthListing{
		Month: from,
		Rows:  rows,
		Total: total,
		Prev:  from.AddDate(0, -1, 0),
		Next:  to,
	}, nil
}

// ParseYearMonth returns the first day (UTC) of the month named by ym,
// or of now's month when ym isn't a valid YYYY-MM.
func ParseYearMonth(ym string, now time.Time) time.Time {
	if m := yearMonthPattern.FindStringSubmatch(strings.TrimSpace(ym)); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ParseID parses a positive record id from a form or query value.
func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if !amountPattern.MatchString(raw) {
		return 0, &ValidationError{Field: "id", Message: "invalid id"}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Field: "id", Message: "invalid id"}
	}
	return id, nil
}

func (in ExpenseInput) validate() (models.Expense, error) {
	var e models.Expense

	spentOn := strings.TrimSpace(in.SpentOn)
	if !datePattern.MatchString(spentOn) {
		return e, &ValidationError{Field: "spent_on", Message: "date must be YYYY-MM-DD"}
	}
	d, err := time.Parse(models.DateLayout, spentOn)
	if err != nil {
		return e, &ValidationError{Field: "spent_on", Message: "date is not a valid calendar day"}
	}
	e.SpentOn = d

	e.Category = strings.TrimSpace(in.Category)
	if e.Category == "" {
		return e, &ValidationError{Field: "category", Message: "category is required"}
	}
	e.Title = strings.TrimSpace(in.Title)
	if e.Title == "" {
		return e, &ValidationError{Field: "title", Message: "title is required"}
	}

	amount := strings.TrimSpace(in.Amount)
	if !amountPattern.MatchString(amount) {
		return e, &ValidationError{Field: "amount", Message: "amount must be a positive integer"}
	}
	n, err := strconv.ParseInt(amount, 10, 64)
	if err != nil || n <= 0 {
		return e, &ValidationError{Field: "amount", Message: "amount must be a positive integer"}
	}
	if n > MaxAmount {
		return e, &ValidationError{Field: "amount", Message: "amount is too large"}
	}
	e.Amount = n

	if memo := strings.TrimSpace(in.Memo); memo != "" {
		e.Memo = &memo
	}
	return e, nil
}
