package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fintrack/ledger/internal/domain/transaction"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create inserts a mirrored transaction
func (r *GormTransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Update saves a mirrored transaction
func (r *GormTransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// FindByTransactionID finds a non-deleted mirror row by its remote transaction ID
func (r *GormTransactionRepository) FindByTransactionID(ctx context.Context, transactionID int64) (*transaction.Transaction, error) {
	var t transaction.Transaction
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ? AND is_deleted = ?", transactionID, false).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ExistsByTransactionID reports whether a non-deleted mirror row exists for
// the remote transaction ID
func (r *GormTransactionRepository) ExistsByTransactionID(ctx context.Context, transactionID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&transaction.Transaction{}).
		Where("transaction_id = ? AND is_deleted = ?", transactionID, false).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByLedgerID lists a ledger's non-deleted transactions within the period
func (r *GormTransactionRepository) FindByLedgerID(ctx context.Context, ledgerID int64, from, to time.Time) ([]*transaction.Transaction, error) {
	var transactions []*transaction.Transaction
	if err := r.db.WithContext(ctx).
		Where("ledger_id = ? AND is_deleted = ? AND transaction_date >= ? AND transaction_date <= ?",
			ledgerID, false, from, to).
		Order("transaction_date DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// SumByType aggregates non-deleted amounts per transaction type across the
// given ledgers and period
func (r *GormTransactionRepository) SumByType(ctx context.Context, ledgerIDs []int64, from, to time.Time) ([]transaction.TypeTotal, error) {
	if len(ledgerIDs) == 0 {
		return []transaction.TypeTotal{}, nil
	}

	var totals []transaction.TypeTotal
	if err := r.db.WithContext(ctx).
		Model(&transaction.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("ledger_id IN ? AND is_deleted = ? AND transaction_date >= ? AND transaction_date <= ?",
			ledgerIDs, false, from, to).
		Group("type").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ transaction.TransactionRepository = (*GormTransactionRepository)(nil)
