package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  int64
	registerErr error
	loginID     int64
	loginErr    error

	registerCalls int
	loginCalls    int
	lastEmail     string
}

func (m *mockAuth) Register(_ context.Context, email, password string) (int64, error) {
	m.registerCalls++
	m.lastEmail = email
	return m.registerID, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, email, password string) (int64, error) {
	m.loginCalls++
	m.lastEmail = email
	return m.loginID, m.loginErr
}

// mockSessions keeps sessions in memory; the cookie value is the session id.
type mockSessions struct {
	rows    map[string]*models.Session
	seq     int
	loadErr error
}

func newMockSessions() *mockSessions {
	return &mockSessions{rows: map[string]*models.Session{}}
}

func (m *mockSessions) add(userID *int64) *models.Session {
	m.seq++
	s := &models.Session{ID: fmt.Sprintf("sid-%d", m.seq), UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}
	m.rows[s.ID] = s
	return s
}

func (m *mockSessions) Start(context.Context) (*models.Session, error) {
	return m.add(nil), nil
}

func (m *mockSessions) Load(_ context.Context, cookie string) (*models.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.rows[cookie], nil
}

func (m *mockSessions) BindUser(_ context.Context, old *models.Session, userID int64) (*models.Session, error) {
	if old != nil {
		delete(m.rows, old.ID)
	}
	uid := userID
	return m.add(&uid), nil
}

func (m *mockSessions) Destroy(_ context.Context, s *models.Session) error {
	if s != nil {
		delete(m.rows, s.ID)
	}
	return nil
}

func (m *mockSessions) CSRFToken(_ context.Context, s *models.Session) (string, error) {
	if s.CSRFToken == "" {
		s.CSRFToken = "tok" + strings.TrimPrefix(s.ID, "sid-") + "abcdef"
	}
	return s.CSRFToken, nil
}

func (m *mockSessions) VerifyCSRF(s *models.Session, supplied string) error {
	if s == nil || s.CSRFToken == "" || supplied != s.CSRFToken {
		return service.ErrCSRF
	}
	return nil
}

func (m *mockSessions) Cookie(s *models.Session) (string, error) {
	if s == nil {
		return "", errors.New("no session")
	}
	return s.ID, nil
}

func (m *mockSessions) TTL() time.Duration { return time.Hour }

// login returns cookie and csrf token of a fresh session for userID.
func (m *mockSessions) login(userID int64) (string, string) {
	uid := userID
	s := m.add(&uid)
	tok, _ := m.CSRFToken(context.Background(), s)
	return s.ID, tok
}

// anonymous returns cookie and csrf token of a fresh anonymous session.
func (m *mockSessions) anonymous() (string, string) {
	s := m.add(nil)
	tok, _ := m.CSRFToken(context.Background(), s)
	return s.ID, tok
}

type mockExpenses struct {
	createResult models.Expense
	createErr    error
	updateResult models.Expense
	updateErr    error
	deleteErr    error
	findResult   models.Expense
	findErr      error
	listing      service.MonthListing
	listErr      error

	createCalls int
	updateCalls int
	deleteCalls int
	lastUserID  int64
	lastID      int64
	lastInput   service.ExpenseInput
	lastListYM  string
}

func (m *mockExpenses) Create(_ context.Context, userID int64, in service.ExpenseInput) (models.Expense, error) {
	m.createCalls++
	m.lastUserID, m.lastInput = userID, in
	return m.createResult, m.createErr
}

func (m *mockExpenses) Update(_ context.Context, userID, id int64, in service.ExpenseInput) (models.Expense, error) {
	m.updateCalls++
	m.lastUserID, m.lastID, m.lastInput = userID, id, in
	return m.updateResult, m.updateErr
}

func (m *mockExpenses) Delete(_ context.Context, userID, id int64) error {
	m.deleteCalls++
	m.lastUserID, m.lastID = userID, id
	return m.deleteErr
}

func (m *mockExpenses) FindForEdit(_ context.Context, userID, id int64) (models.Expense, error) {
	m.lastUserID, m.lastID = userID, id
	return m.findResult, m.findErr
}

func (m *mockExpenses) ListForMonth(_ context.Context, userID int64, ym string) (service.MonthListing, error) {
	m.lastUserID, m.lastListYM = userID, ym
	return m.listing, m.listErr
}

// ---- Shared Test Helpers ----

type testDeps struct {
	auth     *mockAuth
	sessions *mockSessions
	expenses *mockExpenses
}

func newTestDeps() *testDeps {
	return &testDeps{auth: &mockAuth{}, sessions: newMockSessions(), expenses: &mockExpenses{}}
}

func newTestRouter(d *testDeps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := &service.Service{Authorization: d.auth, Sessions: d.sessions, Expenses: d.expenses}
	h := NewHandler(s, nil, Options{})
	return h.InitRoutes()
}

func doGet(r http.Handler, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doPost(r http.Handler, path, cookie string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookieFrom(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}
