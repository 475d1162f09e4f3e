package handlers

import (
	"net/http"
	"time"

	"kakeibo/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "kakeibo_session"
	csrfFieldName     = "csrf_token"
	ctxSessionKey     = "session"
)

// sessionMiddleware loads the caller's session, if any, into the gin context.
// It never creates one; pages that need a CSRF token do that lazily.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	cookie, _ := c.Cookie(sessionCookieName)
	sess, err := h.services.Sessions.Load(c.Request.Context(), cookie)
	if err != nil {
		h.internalError(c, "session_load_failed", err)
		c.Abort()
		return
	}
	if sess != nil {
		c.Set(ctxSessionKey, sess)
	}
	c.Next()
}

func currentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*models.Session)
	return sess
}

func currentUserID(c *gin.Context) (int64, bool) {
	sess := currentSession(c)
	if !sess.LoggedIn() {
		return 0, false
	}
	return *sess.UserID, true
}

func (h *Handler) csrfGuard(c *gin.Context) {
	supplied := c.PostForm(csrfFieldName)
	if err := h.services.Sessions.VerifyCSRF(currentSession(c), supplied); err != nil {
		if h.log != nil {
			h.log.Warnw("csrf_rejected", "path", c.Request.URL.Path, "client_ip", c.ClientIP())
		}
		c.String(http.StatusBadRequest, err.Error())
		c.Abort()
		return
	}
	c.Next()
}

func (h *Handler) requireLogin(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		c.Redirect(http.StatusFound, "/"+string(pageLogin))
		c.Abort()
		return
	}
	c.Next()
}

func (h *Handler) requireLoginJSON(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.Next()
}

// ensureSession returns the request's session, starting an anonymous one if needed.
func (h *Handler) ensureSession(c *gin.Context) (*models.Session, error) {
	if sess := currentSession(c); sess != nil {
		return sess, nil
	}
	sess, err := h.services.Sessions.Start(c.Request.Context())
	if err != nil {
		return nil, err
	}
	if err := h.setSessionCookie(c, sess); err != nil {
		return nil, err
	}
	c.Set(ctxSessionKey, sess)
	return sess, nil
}

func (h *Handler) setSessionCookie(c *gin.Context, sess *models.Session) error {
	value, err := h.services.Sessions.Cookie(sess)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, value, int(h.services.Sessions.TTL().Seconds()), "/", "", h.opts.SecureCookie, true)
	return nil
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.opts.SecureCookie, true)
}

// requestLogger logs one line per request; level follows the status class.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}

	status := c.Writer.Status()
	fields := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	}
	switch {
	case status >= http.StatusInternalServerError:
		h.log.Errorw("http_request", fields...)
	case status >= http.StatusBadRequest:
		h.log.Warnw("http_request", fields...)
	default:
		h.log.Infow("http_request", fields...)
	}
}
