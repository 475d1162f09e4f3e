package repository

import (
	"context"
	"database/sql"
	"time"

	"kakeibo/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, email, hash string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ExpenseRepo persists expenses. Every method is scoped by the owning user id.
type ExpenseRepo interface {
	Create(ctx context.Context, e models.Expense) (int64, error)
	Get(ctx context.Context, userID, id int64) (*models.Expense, error)
	Update(ctx context.Context, e models.Expense) (int64, error)
	Delete(ctx context.Context, userID, id int64) error
	ListBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.Expense, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string, now time.Time) (*models.Session, error)
	SetCSRFToken(ctx context.Context, id, token string) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Repository struct {
	Auth        Authorization
	ExpenseRepo ExpenseRepo
	SessionRepo SessionRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:        NewUserRepository(db),
		ExpenseRepo: NewExpenseSQLite(db),
		SessionRepo: NewSessionSQLite(db),
	}
}
