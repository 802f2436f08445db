package transaction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/ledger/internal/domain/ledger"
)

func TestNewMirror(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	tx := NewMirror(55, 10, ledger.TransactionTypeExpense, decimal.NewFromInt(12000), "점심", date, "")

	assert.Equal(t, int64(55), tx.TransactionID)
	assert.Equal(t, int64(10), tx.LedgerID)
	assert.Nil(t, tx.CategoryID)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(12000)))
	assert.False(t, tx.Deleted())
}

func TestTransaction_ApplyRemote_PreservesCategory(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	tx := NewMirror(55, 10, ledger.TransactionTypeExpense, decimal.NewFromInt(12000), "점심", date, "")

	categoryID := int64(7)
	tx.AssignCategory(&categoryID)

	newDate := time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)
	tx.ApplyRemote(10, ledger.TransactionTypeExpense, decimal.NewFromInt(15000), "저녁", newDate, "회식")

	require.NotNil(t, tx.CategoryID)
	assert.Equal(t, int64(7), *tx.CategoryID)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, "저녁", tx.Description)
	assert.Equal(t, newDate, tx.TransactionDate)
}
