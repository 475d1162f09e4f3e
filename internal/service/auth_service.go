package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"kakeibo/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows. Their text is shown to users as-is.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRegistrationFailed = errors.New("could not register")
)

// AuthService handles user auth logic
type AuthService struct {
	authRepo repository.Authorization
}

func NewAuthService(repo repository.Authorization) *AuthService {
	return &AuthService{authRepo: repo}
}

var _ Authorization = (*AuthService)(nil)

// Register hashes password and creates a new user.
// Every insert failure, duplicate email included, is reported as ErrRegistrationFailed.
func (s *AuthService) Register(ctx context.Context, email, password string) (int64, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, &ValidationError{Field: "email", Message: "email and password are required"}
	}
	if strings.TrimSpace(password) == "" {
		return 0, &ValidationError{Field: "password", Message: "email and password are required"}
	}

	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}
	id, err := s.authRepo.Create(ctx, email, hash)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}
	return id, nil
}

// Login validates credentials and returns the user id.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (int64, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return 0, ErrInvalidCredentials
	}

	u, err := s.authRepo.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if u == nil {
		// burn the same bcrypt cost as a real comparison
		_ = verifyPassword(dummyHash(), password)
		return 0, ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return 0, ErrInvalidCredentials
	}
	return u.ID, nil
}

var (
	dummyHashOnce sync.Once
	dummyHashStr  string
)

func dummyHash() string {
	dummyHashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("kakeibo-dummy-password"), bcrypt.DefaultCost)
		if err == nil {
			dummyHashStr = string(h)
		}
	})
	return dummyHashStr
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
