package handlers

import (
	"net/http"

	"kakeibo/internal/models"

	"github.com/gin-gonic/gin"
)

type expenseResponse struct {
	ID       int64   `json:"id" example:"12"`
	SpentOn  string  `json:"spent_on" example:"2024-02-10"`
	Category string  `json:"category" example:"food"`
	Title    string  `json:"title" example:"Lunch"`
	Amount   int64   `json:"amount" example:"1000"`
	Memo     *string `json:"memo,omitempty"`
}

type monthExpensesResponse struct {
	Month    string            `json:"month" example:"2024-02"`
	Total    int64             `json:"total" example:"3800"`
	Count    int               `json:"count" example:"3"`
	Expenses []expenseResponse `json:"expenses"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      List expenses of a month
// @Description  Expenses of the logged-in user for one month, newest first. Falls back to the current month when ym is missing or malformed.
// @Tags         expenses
// @Produce      json
// @Param        ym   query     string  false  "Month (YYYY-MM)"  example(2024-02)
// @Success      200  {object}  monthExpensesResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/expenses [get]
// @Security     SessionCookie
func (h *Handler) listExpensesJSON(c *gin.Context) {
	userID, _ := currentUserID(c)

	listing, err := h.services.Expenses.ListForMonth(c.Request.Context(), userID, c.Query("ym"))
	if err != nil {
		if h.log != nil {
			h.log.Errorw("api_expense_list_failed", "err", err, "user_id", userID)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}

	rows := make([]expenseResponse, 0, len(listing.Rows))
	for _, e := range listing.Rows {
		rows = append(rows, expenseResponse{
			ID:       e.ID,
			SpentOn:  e.SpentOn.Format(models.DateLayout),
			Category: e.Category,
			Title:    e.Title,
			Amount:   e.Amount,
			Memo:     e.Memo,
		})
	}
	c.JSON(http.StatusOK, monthExpensesResponse{
		Month:    listing.YM(),
		Total:    listing.Total,
		Count:    len(rows),
		Expenses: rows,
	})
}
