package service

import (
	"time"

	"kakeibo/internal/models"
)

// ExpenseInput is the raw form submission for create and update.
type ExpenseInput struct {
	SpentOn  string
	Category string
	Title    string
	Amount   string
	Memo     string
}

// MonthListing is one user's expenses for a single calendar month.
type MonthListing struct {
	Month time.Time // first day of the month, UTC
	Rows  []models.Expense
	Total int64
	Prev  time.Time
	Next  time.Time
}

const YearMonthLayout = "2006-01"

// YM formats the listed month as YYYY-MM.
func (l MonthListing) YM() string { return l.Month.Format(YearMonthLayout) }

func (l MonthListing) PrevYM() string { return l.Prev.Format(YearMonthLayout) }

func (l MonthListing) NextYM() string { return l.Next.Format(YearMonthLayout) }
