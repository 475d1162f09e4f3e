package service

import (
	"context"
	"errors"
	"time"

	"kakeibo/internal/models"
)

// memSessionRepo is an in-memory repository.SessionRepo.
type memSessionRepo struct {
	rows      map[string]models.Session
	failWith  error
	csrfCalls int
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{rows: map[string]models.Session{}}
}

func (m *memSessionRepo) Create(_ context.Context, s models.Session) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.rows[s.ID] = s
	return nil
}

func (m *memSessionRepo) Get(_ context.Context, id string, now time.Time) (*models.Session, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	s, ok := m.rows[id]
	if !ok || !s.ExpiresAt.After(now) {
		return nil, nil
	}
	return &s, nil
}

func (m *memSessionRepo) SetCSRFToken(_ context.Context, id, token string) error {
	m.csrfCalls++
	s, ok := m.rows[id]
	if !ok {
		return errors.New("no such session")
	}
	s.CSRFToken = token
	m.rows[id] = s
	return nil
}

func (m *memSessionRepo) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	var n int64
	for id, s := range m.rows {
		if !s.ExpiresAt.After(now) {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

// stubExpenseRepo records calls to repository.ExpenseRepo.
type stubExpenseRepo struct {
	created  []models.Expense
	updated  []models.Expense
	deleted  [][2]int64
	rows     []models.Expense
	get      *models.Expense
	affected int64
	err      error

	listFrom, listTo time.Time
	listUser         int64
}

func (s *stubExpenseRepo) Create(_ context.Context, e models.Expense) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.created = append(s.created, e)
	return int64(len(s.created)), nil
}

func (s *stubExpenseRepo) Get(_ context.Context, userID, id int64) (*models.Expense, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.get == nil || s.get.UserID != userID || s.get.ID != id {
		return nil, nil
	}
	e := *s.get
	return &e, nil
}

func (s *stubExpenseRepo) Update(_ context.Context, e models.Expense) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.updated = append(s.updated, e)
	return s.affected, nil
}

func (s *stubExpenseRepo) Delete(_ context.Context, userID, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, [2]int64{userID, id})
	return nil
}

func (s *stubExpenseRepo) ListBetween(_ context.Context, userID int64, from, to time.Time) ([]models.Expense, error) {
	s.listUser, s.listFrom, s.listTo = userID, from, to
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}
