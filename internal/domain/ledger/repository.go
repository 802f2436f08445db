package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRepository defines persistence operations for ledgers.
// Create and Update run inside a transaction and drain the aggregate's
// pending domain events into the outbox. clearDefaultFirst demotes the
// user's other default ledger inside that same transaction, so a failed
// insert or save never leaves the user without a default.
type LedgerRepository interface {
	Create(ctx context.Context, l *Ledger, seed []*Category, clearDefaultFirst bool) error
	Update(ctx context.Context, l *Ledger, clearDefaultFirst bool) error
	FindByID(ctx context.Context, id int64) (*Ledger, error)
	FindByUserID(ctx context.Context, userID int64) ([]*Ledger, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*Ledger, error)
	FindDefaultByUserID(ctx context.Context, userID int64) (*Ledger, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	// DeleteWithChildren logically deletes a category and its direct children
	DeleteWithChildren(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindByLedgerID(ctx context.Context, ledgerID int64) ([]*Category, error)
	FindByLedgerIDAndType(ctx context.Context, ledgerID int64, catType TransactionType) ([]*Category, error)
	FindChildren(ctx context.Context, parentID int64) ([]*Category, error)
}

// UserRepository checks user existence against the mirrored user directory
type UserRepository interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// LedgerSummary aggregates transaction totals for one ledger over a period
type LedgerSummary struct {
	LedgerID     int64           `json:"ledger_id"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
}
