package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/shared"
)

// ErrTransactionNotFound is returned when a mirrored transaction is missing
var ErrTransactionNotFound = shared.NewDomainError("TRANSACTION_NOT_FOUND", "Transaction not found")

// Transaction is a local mirror of a transaction owned by the remote
// transaction service. TransactionID is assigned remotely and is unique among
// non-deleted rows; CategoryID is the only locally owned field and survives
// remote updates. Rows are written exclusively by the sync consumer.
type Transaction struct {
	shared.BaseEntity
	TransactionID   int64                  `gorm:"not null;index" json:"transaction_id"`
	LedgerID        int64                  `gorm:"not null;index" json:"ledger_id"`
	CategoryID      *int64                 `gorm:"index" json:"category_id"`
	Type            ledger.TransactionType `gorm:"size:20;not null" json:"type"`
	Amount          decimal.Decimal        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description     string                 `gorm:"size:500" json:"description"`
	TransactionDate time.Time              `gorm:"not null" json:"transaction_date"`
	Memo            string                 `gorm:"size:1000" json:"memo"`
}

// TableName returns the database table name
func (Transaction) TableName() string {
	return "transactions"
}

// NewMirror creates a mirrored transaction from remote event fields
func NewMirror(transactionID, ledgerID int64, txType ledger.TransactionType, amount decimal.Decimal, description string, date time.Time, memo string) *Transaction {
	return &Transaction{
		BaseEntity:      shared.NewBaseEntity(),
		TransactionID:   transactionID,
		LedgerID:        ledgerID,
		Type:            txType,
		Amount:          amount,
		Description:     description,
		TransactionDate: date,
		Memo:            memo,
	}
}

// ApplyRemote overwrites the remote-owned fields with the latest payload.
// CategoryID is locally owned and deliberately untouched.
func (t *Transaction) ApplyRemote(ledgerID int64, txType ledger.TransactionType, amount decimal.Decimal, description string, date time.Time, memo string) {
	t.LedgerID = ledgerID
	t.Type = txType
	t.Amount = amount
	t.Description = description
	t.TransactionDate = date
	t.Memo = memo
	t.UpdatedAt = time.Now()
}

// AssignCategory sets the local category assignment
func (t *Transaction) AssignCategory(categoryID *int64) {
	t.CategoryID = categoryID
	t.UpdatedAt = time.Now()
}
