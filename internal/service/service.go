package service

import (
	"context"
	"time"

	"kakeibo/internal/logger"
	"kakeibo/internal/models"
	"kakeibo/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, email, password string) (int64, error)
	Login(ctx context.Context, email, password string) (int64, error)
}

// Sessions is the server-side session store plus CSRF handling.
type Sessions interface {
	Start(ctx context.Context) (*models.Session, error)
	Load(ctx context.Context, cookie string) (*models.Session, error)
	BindUser(ctx context.Context, s *models.Session, userID int64) (*models.Session, error)
	Destroy(ctx context.Context, s *models.Session) error
	CSRFToken(ctx context.Context, s *models.Session) (string, error)
	VerifyCSRF(s *models.Session, supplied string) error
	Cookie(s *models.Session) (string, error)
	TTL() time.Duration
}

// Expenses exposes owner-scoped CRUD over the ledger.
type Expenses interface {
	Create(ctx context.Context, userID int64, in ExpenseInput) (models.Expense, error)
	Update(ctx context.Context, userID, id int64, in ExpenseInput) (models.Expense, error)
	Delete(ctx context.Context, userID, id int64) error
	FindForEdit(ctx context.Context, userID, id int64) (models.Expense, error)
	ListForMonth(ctx context.Context, userID int64, ym string) (MonthListing, error)
}

// Janitor removes expired sessions in the background.
// Stop via context cancellation in main() for graceful shutdown.
type Janitor interface {
	Run(ctx context.Context, tick time.Duration)
	Sweep(ctx context.Context) (int64, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Sessions
	Expenses
	Janitor
}

// NewService wires repository layer into concrete services.
func NewService(repos *repository.Repository, cfg SessionConfig, log *logger.Logger) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth),
		Sessions:      NewSessionService(repos.SessionRepo, cfg),
		Expenses:      NewExpenseService(repos.ExpenseRepo),
		Janitor:       NewSessionJanitor(repos.SessionRepo, log),
	}
}
