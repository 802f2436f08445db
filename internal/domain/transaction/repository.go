package transaction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/ledger/internal/domain/ledger"
)

// TypeTotal is one row of a per-type amount aggregation
type TypeTotal struct {
	Type  ledger.TransactionType
	Total decimal.Decimal
}

// TransactionRepository defines persistence operations for mirrored
// transactions. Lookups address the remote transaction ID, not the local row
// ID, and always exclude deleted rows.
type TransactionRepository interface {
	Create(ctx context.Context, t *Transaction) error
	Update(ctx context.Context, t *Transaction) error
	FindByTransactionID(ctx context.Context, transactionID int64) (*Transaction, error)
	ExistsByTransactionID(ctx context.Context, transactionID int64) (bool, error)
	FindByLedgerID(ctx context.Context, ledgerID int64, from, to time.Time) ([]*Transaction, error)
	// SumByType aggregates non-deleted amounts per transaction type across
	// the given ledgers and period
	SumByType(ctx context.Context, ledgerIDs []int64, from, to time.Time) ([]TypeTotal, error)
}
