package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/sharing"
	"github.com/fintrack/ledger/internal/domain/transaction"
	"github.com/fintrack/ledger/internal/interfaces/http/middleware"
)

// In-memory repository fakes backing real application services in handler
// tests.

type fakeLedgerRepository struct {
	ledgers   map[int64]*ledger.Ledger
	nextID    int64
	returnErr error
}

func newFakeLedgerRepository() *fakeLedgerRepository {
	return &fakeLedgerRepository{ledgers: make(map[int64]*ledger.Ledger), nextID: 1}
}

func (f *fakeLedgerRepository) Create(ctx context.Context, l *ledger.Ledger, seed []*ledger.Category, clearDefaultFirst bool) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	if clearDefaultFirst {
		for _, other := range f.ledgers {
			if other.UserID == l.UserID {
				other.IsDefault = false
			}
		}
	}
	l.ID = f.nextID
	f.nextID++
	f.ledgers[l.ID] = l
	return nil
}

func (f *fakeLedgerRepository) Update(ctx context.Context, l *ledger.Ledger, clearDefaultFirst bool) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	if clearDefaultFirst {
		for _, other := range f.ledgers {
			if other.UserID == l.UserID && other.ID != l.ID {
				other.IsDefault = false
			}
		}
	}
	f.ledgers[l.ID] = l
	return nil
}

func (f *fakeLedgerRepository) FindByID(ctx context.Context, id int64) (*ledger.Ledger, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	l, ok := f.ledgers[id]
	if !ok || l.IsDeleted {
		return nil, ledger.ErrLedgerNotFound
	}
	return l, nil
}

func (f *fakeLedgerRepository) FindByUserID(ctx context.Context, userID int64) ([]*ledger.Ledger, error) {
	var out []*ledger.Ledger
	for _, l := range f.ledgers {
		if l.UserID == userID && !l.IsDeleted {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepository) FindByIDs(ctx context.Context, ids []int64) ([]*ledger.Ledger, error) {
	var out []*ledger.Ledger
	for _, id := range ids {
		if l, ok := f.ledgers[id]; ok && !l.IsDeleted {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepository) FindDefaultByUserID(ctx context.Context, userID int64) (*ledger.Ledger, error) {
	for _, l := range f.ledgers {
		if l.UserID == userID && l.IsDefault && !l.IsDeleted {
			return l, nil
		}
	}
	return nil, ledger.ErrLedgerNotFound
}

func (f *fakeLedgerRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var n int64
	for _, l := range f.ledgers {
		if l.UserID == userID && !l.IsDeleted {
			n++
		}
	}
	return n, nil
}

type fakeShareRepository struct {
	shares map[int64]*sharing.LedgerShare
	nextID int64
}

func newFakeShareRepository() *fakeShareRepository {
	return &fakeShareRepository{shares: make(map[int64]*sharing.LedgerShare), nextID: 1}
}

func (f *fakeShareRepository) Create(ctx context.Context, s *sharing.LedgerShare) error {
	s.ID = f.nextID
	f.nextID++
	f.shares[s.ID] = s
	return nil
}

func (f *fakeShareRepository) Update(ctx context.Context, s *sharing.LedgerShare) error {
	f.shares[s.ID] = s
	return nil
}

func (f *fakeShareRepository) FindByID(ctx context.Context, id int64) (*sharing.LedgerShare, error) {
	s, ok := f.shares[id]
	if !ok || s.IsDeleted {
		return nil, sharing.ErrShareNotFound
	}
	return s, nil
}

func (f *fakeShareRepository) ExistsActive(ctx context.Context, ledgerID, sharedUserID int64) (bool, error) {
	for _, s := range f.shares {
		if s.LedgerID == ledgerID && s.SharedUserID == sharedUserID && !s.IsDeleted &&
			(s.Status == sharing.StatusPending || s.Status == sharing.StatusAccepted) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeShareRepository) FindByLedgerID(ctx context.Context, ledgerID int64) ([]*sharing.LedgerShare, error) {
	var out []*sharing.LedgerShare
	for _, s := range f.shares {
		if s.LedgerID == ledgerID && !s.IsDeleted {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShareRepository) FindAcceptedBySharedUser(ctx context.Context, sharedUserID int64) ([]*sharing.LedgerShare, error) {
	var out []*sharing.LedgerShare
	for _, s := range f.shares {
		if s.SharedUserID == sharedUserID && s.Status == sharing.StatusAccepted && !s.IsDeleted {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShareRepository) FindPendingBySharedUser(ctx context.Context, sharedUserID int64) ([]*sharing.LedgerShare, error) {
	var out []*sharing.LedgerShare
	for _, s := range f.shares {
		if s.SharedUserID == sharedUserID && s.Status == sharing.StatusPending && !s.IsDeleted {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShareRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*sharing.LedgerShare, error) {
	var out []*sharing.LedgerShare
	for _, s := range f.shares {
		if s.OwnerID == ownerID && !s.IsDeleted {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeTransactionRepository struct {
	totals []transaction.TypeTotal
}

func (f *fakeTransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	return nil
}

func (f *fakeTransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	return nil
}

func (f *fakeTransactionRepository) FindByTransactionID(ctx context.Context, transactionID int64) (*transaction.Transaction, error) {
	return nil, transaction.ErrTransactionNotFound
}

func (f *fakeTransactionRepository) ExistsByTransactionID(ctx context.Context, transactionID int64) (bool, error) {
	return false, nil
}

func (f *fakeTransactionRepository) FindByLedgerID(ctx context.Context, ledgerID int64, from, to time.Time) ([]*transaction.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionRepository) SumByType(ctx context.Context, ledgerIDs []int64, from, to time.Time) ([]transaction.TypeTotal, error) {
	if f.totals != nil {
		return f.totals, nil
	}
	return []transaction.TypeTotal{
		{Type: ledger.TransactionTypeIncome, Total: decimal.Zero},
		{Type: ledger.TransactionTypeExpense, Total: decimal.Zero},
	}, nil
}

type fakeUserRepository struct {
	users map[int64]bool
}

func (f *fakeUserRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	return f.users[userID], nil
}

// authAs fakes the JWT middleware by planting the caller's id directly
func authAs(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID)
		c.Next()
	}
}
