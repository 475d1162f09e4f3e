package handlers

import (
	"errors"
	"net/http"
	"strings"

	"kakeibo/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) showLogin(c *gin.Context) {
	if _, ok := currentUserID(c); ok {
		c.Redirect(http.StatusFound, "/"+string(pageList))
		return
	}
	h.render(c, http.StatusOK, "login.html", pageData{Title: "ログイン"})
}

func (h *Handler) login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	userID, err := h.services.Authorization.Login(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("auth_login_failed", "email", email)
			}
			h.render(c, http.StatusOK, "login.html", pageData{Title: "ログイン", Error: err.Error(), Email: email})
			return
		}
		h.internalError(c, "auth_login_error", err)
		return
	}

	h.startUserSession(c, userID)
}

func (h *Handler) register(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	userID, err := h.services.Authorization.Register(c.Request.Context(), email, password)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			h.render(c, http.StatusOK, "login.html", pageData{Title: "ログイン", Error: ve.Message, Email: email})
		case errors.Is(err, service.ErrRegistrationFailed):
			if h.log != nil {
				h.log.Infow("auth_register_failed", "email", email, "err", err)
			}
			h.render(c, http.StatusOK, "login.html", pageData{Title: "ログイン", Error: service.ErrRegistrationFailed.Error(), Email: email})
		default:
			h.internalError(c, "auth_register_error", err)
		}
		return
	}

	if h.log != nil {
		h.log.Infow("auth_registered", "user_id", userID)
	}
	h.startUserSession(c, userID)
}

// startUserSession swaps the current session for one bound to userID.
func (h *Handler) startUserSession(c *gin.Context, userID int64) {
	sess, err := h.services.Sessions.BindUser(c.Request.Context(), currentSession(c), userID)
	if err != nil {
		h.internalError(c, "session_bind_failed", err, "user_id", userID)
		return
	}
	if err := h.setSessionCookie(c, sess); err != nil {
		h.internalError(c, "session_cookie_failed", err, "user_id", userID)
		return
	}
	c.Redirect(http.StatusSeeOther, "/"+string(pageList))
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.services.Sessions.Destroy(c.Request.Context(), currentSession(c)); err != nil {
		h.internalError(c, "session_destroy_failed", err)
		return
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/"+string(pageLogin))
}
