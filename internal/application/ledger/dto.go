package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/ledger/internal/domain/ledger"
)

// CreateLedgerRequest represents a request to create a new ledger
type CreateLedgerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	Currency    string `json:"currency" binding:"omitempty,currency"`
	IsDefault   bool   `json:"is_default"`
}

// UpdateLedgerRequest represents a request to update a ledger
type UpdateLedgerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	Currency    string `json:"currency" binding:"omitempty,currency"`
}

// LedgerResponse represents a ledger in API responses
type LedgerResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Currency    string    `json:"currency"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToLedgerResponse converts a domain Ledger to LedgerResponse
func ToLedgerResponse(l *ledger.Ledger) LedgerResponse {
	return LedgerResponse{
		ID:          l.GetID(),
		UserID:      l.UserID,
		Name:        l.Name,
		Description: l.Description,
		Currency:    l.Currency,
		IsDefault:   l.IsDefault,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// SummaryPeriod represents the period of a summary query
type SummaryPeriod struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// TotalSummaryResponse aggregates transaction totals across every ledger the
// user can read: owned ledgers plus ledgers shared with the user and accepted
type TotalSummaryResponse struct {
	LedgerCount  int             `json:"ledger_count"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=50"`
	Type     string `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Icon     string `json:"icon" binding:"max=50"`
	Color    string `json:"color" binding:"max=20"`
	ParentID *int64 `json:"parent_id"`
}

// UpdateCategoryRequest represents a request to update a category. Type and
// parent are fixed after creation.
type UpdateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Icon  string `json:"icon" binding:"max=50"`
	Color string `json:"color" binding:"max=20"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        int64     `json:"id"`
	LedgerID  int64     `json:"ledger_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	ParentID  *int64    `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *ledger.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.GetID(),
		LedgerID:  c.LedgerID,
		Name:      c.Name,
		Type:      c.Type.String(),
		Icon:      c.Icon,
		Color:     c.Color,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
