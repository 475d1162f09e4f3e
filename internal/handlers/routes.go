package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// page names a screen of the app. Its path is "/" + page.
type page string

const (
	pageLogin    page = "login"
	pageRegister page = "register"
	pageLogout   page = "logout"
	pageNew      page = "new"
	pageCreate   page = "create"
	pageEdit     page = "edit"
	pageUpdate   page = "update"
	pageDelete   page = "delete"
	pageList     page = "list"
)

var allPages = []page{
	pageLogin, pageRegister, pageLogout,
	pageNew, pageCreate, pageEdit, pageUpdate, pageDelete, pageList,
}

type route struct {
	method        string
	page          page
	requiresLogin bool
	mutating      bool
	handler       gin.HandlerFunc
}

func (h *Handler) routes() []route {
	return []route{
		{method: http.MethodGet, page: pageLogin, handler: h.showLogin},
		{method: http.MethodPost, page: pageLogin, mutating: true, handler: h.login},
		{method: http.MethodPost, page: pageRegister, mutating: true, handler: h.register},
		{method: http.MethodPost, page: pageLogout, mutating: true, requiresLogin: true, handler: h.logout},

		{method: http.MethodGet, page: pageNew, requiresLogin: true, handler: h.newExpense},
		{method: http.MethodPost, page: pageCreate, mutating: true, requiresLogin: true, handler: h.createExpense},
		{method: http.MethodGet, page: pageEdit, requiresLogin: true, handler: h.editExpense},
		{method: http.MethodPost, page: pageUpdate, mutating: true, requiresLogin: true, handler: h.updateExpense},
		{method: http.MethodPost, page: pageDelete, mutating: true, requiresLogin: true, handler: h.deleteExpense},
		{method: http.MethodGet, page: pageList, requiresLogin: true, handler: h.listExpenses},
	}
}
