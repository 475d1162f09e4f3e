package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrCSRF is returned when a state-changing request lacks a matching token.
var ErrCSRF = errors.New("invalid csrf token")

const csrfTokenBytes = 32

// SessionConfig configures cookie signing and session lifetime.
type SessionConfig struct {
	Secret []byte
	TTL    time.Duration
}

// SessionService keeps sessions in storage and hands out signed cookie values.
type SessionService struct {
	repo   repository.SessionRepo
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(repo repository.SessionRepo, cfg SessionConfig) *SessionService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &SessionService{
		repo:   repo,
		secret: cfg.Secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

var _ Sessions = (*SessionService)(nil)

func (s *SessionService) TTL() time.Duration { return s.ttl }

// Start creates a fresh anonymous session.
func (s *SessionService) Start(ctx context.Context) (*models.Session, error) {
	return s.create(ctx, nil)
}

func (s *SessionService) create(ctx context.Context, userID *int64) (*models.Session, error) {
	now := s.now()
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Load resolves a cookie value to a live session.
// Returns (nil, nil) when the cookie is empty, forged, expired or unknown.
func (s *SessionService) Load(ctx context.Context, cookie string) (*models.Session, error) {
	if cookie == "" {
		return nil, nil
	}
	sid, err := s.parseCookie(cookie)
	if err != nil {
		return nil, nil
	}
	return s.repo.Get(ctx, sid, s.now())
}

// BindUser replaces s with a new session owned by userID.
// The old session row is removed so its id can't be replayed.
func (s *SessionService) BindUser(ctx context.Context, old *models.Session, userID int64) (*models.Session, error) {
	if old != nil {
		if err := s.repo.Delete(ctx, old.ID); err != nil {
			return nil, err
		}
	}
	uid := userID
	return s.create(ctx, &uid)
}

// Destroy deletes the session row. A nil session is a no-op.
func (s *SessionService) Destroy(ctx context.Context, sess *models.Session) error {
	if sess == nil {
		return nil
	}
	return s.repo.Delete(ctx, sess.ID)
}

// CSRFToken returns the session's token, creating and storing one on first use.
func (s *SessionService) CSRFToken(ctx context.Context, sess *models.Session) (string, error) {
	if sess == nil {
		return "", errors.New("csrf token: no session")
	}
	if sess.CSRFToken != "" {
		return sess.CSRFToken, nil
	}
	tok, err := newCSRFToken()
	if err != nil {
		return "", err
	}
	if err := s.repo.SetCSRFToken(ctx, sess.ID, tok); err != nil {
		return "", err
	}
	sess.CSRFToken = tok
	return tok, nil
}

// VerifyCSRF compares supplied against the stored token in constant time.
// Missing session, missing stored token or empty input all fail.
func (s *SessionService) VerifyCSRF(sess *models.Session, supplied string) error {
	if sess == nil || sess.CSRFToken == "" || supplied == "" {
		return ErrCSRF
	}
	if subtle.ConstantTimeCompare([]byte(sess.CSRFToken), []byte(supplied)) != 1 {
		return ErrCSRF
	}
	return nil
}

// Cookie signs the session id into the value stored in the browser.
func (s *SessionService) Cookie(sess *models.Session) (string, error) {
	if sess == nil {
		return "", errors.New("cookie: no session")
	}
	claims := jwt.RegisteredClaims{
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

func (s *SessionService) parseCookie(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errors.New("session cookie without id")
	}
	return claims.ID, nil
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
