package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"kakeibo/internal/service"
)

func TestShowLogin_IssuesSessionAndToken(t *testing.T) {
	d := newTestDeps()
	r := newTestRouter(d)

	w := doGet(r, "/login", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	c := sessionCookieFrom(w)
	if c == nil {
		t.Fatalf("expected a session cookie")
	}
	if !c.HttpOnly || c.Path != "/" || c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie attributes: %+v", c)
	}
	sess := d.sessions.rows[c.Value]
	if sess == nil || sess.CSRFToken == "" {
		t.Fatalf("session should carry a csrf token")
	}
	want := fmt.Sprintf(`name="csrf_token" value="%s"`, sess.CSRFToken)
	if !strings.Contains(w.Body.String(), want) {
		t.Fatalf("login form should embed the token")
	}
}

func TestShowLogin_LoggedInRedirectsToList(t *testing.T) {
	d := newTestDeps()
	r := newTestRouter(d)
	cookie, _ := d.sessions.login(3)

	w := doGet(r, "/login", cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/list" {
		t.Fatalf("got %d -> %q", w.Code, w.Header().Get("Location"))
	}
}

func TestLogin_InvalidCredentialsRerendersWithEmail(t *testing.T) {
	d := newTestDeps()
	d.auth.loginErr = service.ErrInvalidCredentials
	r := newTestRouter(d)
	cookie, tok := d.sessions.anonymous()

	w := doPost(r, "/login", cookie, url.Values{"csrf_token": {tok}, "email": {" a@example.com "}, "password": {"x"}})

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "invalid email or password") {
		t.Fatalf("missing error message: %s", body)
	}
	if !strings.Contains(body, `value="a@example.com"`) {
		t.Fatalf("email should be echoed")
	}
	if d.auth.lastEmail != "a@example.com" {
		t.Fatalf("email should be trimmed, got %q", d.auth.lastEmail)
	}
}

func TestLogin_SuccessRotatesSession(t *testing.T) {
	d := newTestDeps()
	d.auth.loginID = 9
	r := newTestRouter(d)
	oldCookie, tok := d.sessions.anonymous()

	w := doPost(r, "/login", oldCookie, url.Values{"csrf_token": {tok}, "email": {"a@example.com"}, "password": {"pw"}})

	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/list" {
		t.Fatalf("got %d -> %q", w.Code, w.Header().Get("Location"))
	}
	c := sessionCookieFrom(w)
	if c == nil || c.Value == oldCookie {
		t.Fatalf("expected a new session cookie, got %+v", c)
	}
	if _, ok := d.sessions.rows[oldCookie]; ok {
		t.Fatalf("old session should be gone")
	}
	if s := d.sessions.rows[c.Value]; !s.LoggedIn() || *s.UserID != 9 {
		t.Fatalf("new session not bound: %+v", s)
	}
}

func TestLogin_StorageErrorIs500(t *testing.T) {
	d := newTestDeps()
	d.auth.loginErr = errors.New("select user: disk I/O error")
	r := newTestRouter(d)
	cookie, tok := d.sessions.anonymous()

	w := doPost(r, "/login", cookie, url.Values{"csrf_token": {tok}, "email": {"a@example.com"}, "password": {"pw"}})
	if w.Code != http.StatusInternalServerError || strings.Contains(w.Body.String(), "disk") {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestRegister_Outcomes(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"duplicate", fmt.Errorf("%w: %w", service.ErrRegistrationFailed, errors.New("UNIQUE constraint failed")), http.StatusOK, "could not register"},
		{"validation", &service.ValidationError{Field: "email", Message: "email and password are required"}, http.StatusOK, "email and password are required"},
		{"storage", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDeps()
			d.auth.registerErr = tc.err
			r := newTestRouter(d)
			cookie, tok := d.sessions.anonymous()

			w := doPost(r, "/register", cookie, url.Values{"csrf_token": {tok}, "email": {"a@example.com"}, "password": {"pw"}})
			if w.Code != tc.wantCode || !strings.Contains(w.Body.String(), tc.wantBody) {
				t.Fatalf("got %d %q", w.Code, w.Body.String())
			}
			if strings.Contains(w.Body.String(), "UNIQUE") {
				t.Fatalf("storage detail leaked")
			}
		})
	}
}

func TestRegister_SuccessLogsIn(t *testing.T) {
	d := newTestDeps()
	d.auth.registerID = 4
	r := newTestRouter(d)
	cookie, tok := d.sessions.anonymous()

	w := doPost(r, "/register", cookie, url.Values{"csrf_token": {tok}, "email": {"new@example.com"}, "password": {"pw"}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/list" {
		t.Fatalf("got %d -> %q", w.Code, w.Header().Get("Location"))
	}
	c := sessionCookieFrom(w)
	if c == nil || !d.sessions.rows[c.Value].LoggedIn() {
		t.Fatalf("expected logged-in session after register")
	}
}

func TestLogout_DestroysSessionAndClearsCookie(t *testing.T) {
	d := newTestDeps()
	r := newTestRouter(d)
	cookie, tok := d.sessions.login(2)

	w := doPost(r, "/logout", cookie, url.Values{"csrf_token": {tok}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("got %d -> %q", w.Code, w.Header().Get("Location"))
	}
	if _, ok := d.sessions.rows[cookie]; ok {
		t.Fatalf("session should be destroyed")
	}
	c := sessionCookieFrom(w)
	if c == nil || c.MaxAge >= 0 {
		t.Fatalf("cookie should be cleared, got %+v", c)
	}
}
