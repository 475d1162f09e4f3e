package handlers

import (
	"html/template"
	"net/http"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/service"
	"kakeibo/web"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

const (
	msgInternal = "internal server error"
	msgNotFound = "not found"
	msgBadID    = "invalid id"
)

// pageData is shared by every HTML template.
type pageData struct {
	Title    string
	LoggedIn bool
	CSRF     string
	Error    string

	// login
	Email string

	// form
	Action string
	ID     int64
	Form   service.ExpenseInput

	// list
	Listing service.MonthListing
}

var templateFuncs = template.FuncMap{
	"formatAmount": formatAmount,
	"formatDate":   func(t time.Time) string { return t.Format(models.DateLayout) },
	"memo": func(m *string) string {
		if m == nil {
			return ""
		}
		return *m
	},
}

func formatAmount(n int64) string {
	return humanize.Comma(n) + "円"
}

func mustTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(web.TemplatesFS, "templates/*.html"))
}

// render issues the CSRF token for the session (creating the session if needed) and renders name.
func (h *Handler) render(c *gin.Context, status int, name string, data pageData) {
	sess, err := h.ensureSession(c)
	if err != nil {
		h.internalError(c, "session_start_failed", err)
		return
	}
	tok, err := h.services.Sessions.CSRFToken(c.Request.Context(), sess)
	if err != nil {
		h.internalError(c, "csrf_issue_failed", err)
		return
	}
	data.CSRF = tok
	data.LoggedIn = sess.LoggedIn()
	c.HTML(status, name, data)
}

func (h *Handler) internalError(c *gin.Context, event string, err error, kv ...any) {
	if h.log != nil {
		h.log.Errorw(event, append([]any{"err", err}, kv...)...)
	}
	c.String(http.StatusInternalServerError, msgInternal)
}

func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, msgNotFound)
}
