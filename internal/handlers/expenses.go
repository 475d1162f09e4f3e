package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/service"

	"github.com/gin-gonic/gin"
)

func expenseInputFromForm(c *gin.Context) service.ExpenseInput {
	return service.ExpenseInput{
		SpentOn:  c.PostForm("spent_on"),
		Category: c.PostForm("category"),
		Title:    c.PostForm("title"),
		Amount:   c.PostForm("amount"),
		Memo:     c.PostForm("memo"),
	}
}

func formFromExpense(e models.Expense) service.ExpenseInput {
	in := service.ExpenseInput{
		SpentOn:  e.SpentOn.Format(models.DateLayout),
		Category: e.Category,
		Title:    e.Title,
		Amount:   strconv.FormatInt(e.Amount, 10),
	}
	if e.Memo != nil {
		in.Memo = *e.Memo
	}
	return in
}

func listURL(month time.Time) string {
	return "/" + string(pageList) + "?" + url.Values{"ym": {month.Format(service.YearMonthLayout)}}.Encode()
}

func (h *Handler) newExpense(c *gin.Context) {
	h.render(c, http.StatusOK, "form.html", pageData{
		Title:  "追加",
		Action: "/" + string(pageCreate),
		Form:   service.ExpenseInput{SpentOn: time.Now().Format(models.DateLayout)},
	})
}

func (h *Handler) createExpense(c *gin.Context) {
	userID, _ := currentUserID(c)
	in := expenseInputFromForm(c)

	e, err := h.services.Expenses.Create(c.Request.Context(), userID, in)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			h.render(c, http.StatusOK, "form.html", pageData{
				Title: "追加", Action: "/" + string(pageCreate), Form: in, Error: ve.Message,
			})
			return
		}
		h.internalError(c, "expense_create_failed", err, "user_id", userID)
		return
	}

	if h.log != nil {
		h.log.Infow("expense_created", "user_id", userID, "id", e.ID)
	}
	c.Redirect(http.StatusSeeOther, listURL(e.SpentOn))
}

func (h *Handler) editExpense(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, err := service.ParseID(c.Query("id"))
	if err != nil {
		notFound(c)
		return
	}

	e, err := h.services.Expenses.FindForEdit(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			notFound(c)
			return
		}
		h.internalError(c, "expense_load_failed", err, "user_id", userID, "id", id)
		return
	}

	h.render(c, http.StatusOK, "form.html", pageData{
		Title: "編集", Action: "/" + string(pageUpdate), ID: e.ID, Form: formFromExpense(e),
	})
}

func (h *Handler) updateExpense(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, err := service.ParseID(c.PostForm("id"))
	if err != nil {
		c.String(http.StatusBadRequest, msgBadID)
		return
	}
	in := expenseInputFromForm(c)

	e, err := h.services.Expenses.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			h.render(c, http.StatusOK, "form.html", pageData{
				Title: "編集", Action: "/" + string(pageUpdate), ID: id, Form: in, Error: ve.Message,
			})
		case errors.Is(err, service.ErrNotFound):
			notFound(c)
		default:
			h.internalError(c, "expense_update_failed", err, "user_id", userID, "id", id)
		}
		return
	}

	if h.log != nil {
		h.log.Infow("expense_updated", "user_id", userID, "id", id)
	}
	c.Redirect(http.StatusSeeOther, listURL(e.SpentOn))
}

func (h *Handler) deleteExpense(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, err := service.ParseID(c.PostForm("id"))
	if err != nil {
		c.String(http.StatusBadRequest, msgBadID)
		return
	}

	if err := h.services.Expenses.Delete(c.Request.Context(), userID, id); err != nil {
		h.internalError(c, "expense_delete_failed", err, "user_id", userID, "id", id)
		return
	}

	if h.log != nil {
		h.log.Infow("expense_deleted", "user_id", userID, "id", id)
	}
	target := "/" + string(pageList)
	if ym := c.PostForm("ym"); ym != "" {
		target = listURL(service.ParseYearMonth(ym, time.Now()))
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *Handler) listExpenses(c *gin.Context) {
	userID, _ := currentUserID(c)

	listing, err := h.services.Expenses.ListForMonth(c.Request.Context(), userID, c.Query("ym"))
	if err != nil {
		h.internalError(c, "expense_list_failed", err, "user_id", userID)
		return
	}

	h.render(c, http.StatusOK, "list.html", pageData{Title: listing.YM(), Listing: listing})
}
