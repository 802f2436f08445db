package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/transaction"
)

func newTestMirror(transactionID, ledgerID int64, txType ledger.TransactionType, amount string, date time.Time) *transaction.Transaction {
	return transaction.NewMirror(transactionID, ledgerID, txType,
		decimal.RequireFromString(amount), "test", date, "")
}

func TestGormTransactionRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	m := newTestMirror(100, 1, ledger.TransactionTypeExpense, "12500.00", date)
	require.NoError(t, repo.Create(ctx, m))

	found, err := repo.FindByTransactionID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), found.TransactionID)
	assert.True(t, found.Amount.Equal(decimal.RequireFromString("12500.00")))

	exists, err := repo.ExistsByTransactionID(ctx, 100)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormTransactionRepository_FindByTransactionID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransactionRepository(db)

	_, err := repo.FindByTransactionID(context.Background(), 404)
	assert.ErrorIs(t, err, transaction.ErrTransactionNotFound)
}

func TestGormTransactionRepository_ExistsExcludesDeleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	m := newTestMirror(200, 1, ledger.TransactionTypeExpense, "100", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, m))

	m.SoftDelete()
	require.NoError(t, repo.Update(ctx, m))

	exists, err := repo.ExistsByTransactionID(ctx, 200)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormTransactionRepository_Update_PreservesCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	m := newTestMirror(300, 1, ledger.TransactionTypeExpense, "100", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, m))

	categoryID := int64(7)
	m.AssignCategory(&categoryID)
	require.NoError(t, repo.Update(ctx, m))

	m.ApplyRemote(1, ledger.TransactionTypeExpense, decimal.RequireFromString("250"), "updated", time.Now().UTC(), "memo")
	require.NoError(t, repo.Update(ctx, m))

	found, err := repo.FindByTransactionID(ctx, 300)
	require.NoError(t, err)
	require.NotNil(t, found.CategoryID)
	assert.Equal(t, int64(7), *found.CategoryID)
	assert.True(t, found.Amount.Equal(decimal.RequireFromString("250")))
}

func TestGormTransactionRepository_FindByLedgerID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newTestMirror(400, 5, ledger.TransactionTypeExpense, "10", march)))
	require.NoError(t, repo.Create(ctx, newTestMirror(401, 5, ledger.TransactionTypeExpense, "20", april)))
	require.NoError(t, repo.Create(ctx, newTestMirror(402, 6, ledger.TransactionTypeExpense, "30", march)))

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	transactions, err := repo.FindByLedgerID(ctx, 5, from, to)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, int64(400), transactions[0].TransactionID)
}

func TestGormTransactionRepository_SumByType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newTestMirror(500, 7, ledger.TransactionTypeIncome, "3000000", date)))
	require.NoError(t, repo.Create(ctx, newTestMirror(501, 7, ledger.TransactionTypeExpense, "45000", date)))
	require.NoError(t, repo.Create(ctx, newTestMirror(502, 8, ledger.TransactionTypeExpense, "15000", date)))

	// Deleted rows stay out of the totals
	deleted := newTestMirror(503, 7, ledger.TransactionTypeExpense, "99999", date)
	require.NoError(t, repo.Create(ctx, deleted))
	deleted.SoftDelete()
	require.NoError(t, repo.Update(ctx, deleted))

	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 5, 31, 23, 59, 59, 0, time.UTC)

	totals, err := repo.SumByType(ctx, []int64{7, 8}, from, to)
	require.NoError(t, err)

	byType := map[ledger.TransactionType]decimal.Decimal{}
	for _, tt := range totals {
		byType[tt.Type] = tt.Total
	}
	assert.True(t, byType[ledger.TransactionTypeIncome].Equal(decimal.RequireFromString("3000000")))
	assert.True(t, byType[ledger.TransactionTypeExpense].Equal(decimal.RequireFromString("60000")))
}

func TestGormTransactionRepository_SumByType_EmptyLedgers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransactionRepository(db)

	totals, err := repo.SumByType(context.Background(), nil, time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, totals)
}
