package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/shared"
	"github.com/fintrack/ledger/internal/domain/sharing"
	"github.com/fintrack/ledger/internal/domain/transaction"
)

// LedgerService handles ledger lifecycle and summary operations
type LedgerService struct {
	ledgerRepo ledger.LedgerRepository
	shareRepo  sharing.ShareRepository
	txRepo     transaction.TransactionRepository
	logger     *zap.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	ledgerRepo ledger.LedgerRepository,
	shareRepo sharing.ShareRepository,
	txRepo transaction.TransactionRepository,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		shareRepo:  shareRepo,
		txRepo:     txRepo,
		logger:     logger,
	}
}

// Create creates a ledger and seeds its default income/expense categories.
// A user's first ledger is always the default, regardless of the request.
func (s *LedgerService) Create(ctx context.Context, userID int64, req CreateLedgerRequest) (*LedgerResponse, error) {
	count, err := s.ledgerRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	isDefault := req.IsDefault || count == 0

	l, err := ledger.NewLedger(userID, req.Name, req.Description, req.Currency, isDefault)
	if err != nil {
		return nil, err
	}

	seed := make([]*ledger.Category, 0,
		len(ledger.DefaultIncomeCategories)+len(ledger.DefaultExpenseCategories))
	for _, def := range ledger.DefaultIncomeCategories {
		c, err := ledger.NewCategory(0, def.Name, def.Type, def.Icon, "", nil)
		if err != nil {
			return nil, err
		}
		seed = append(seed, c)
	}
	for _, def := range ledger.DefaultExpenseCategories {
		c, err := ledger.NewCategory(0, def.Name, def.Type, def.Icon, "", nil)
		if err != nil {
			return nil, err
		}
		seed = append(seed, c)
	}

	// The previous default is demoted inside the creating transaction, so a
	// failed insert leaves it in place. Two concurrent first-ledger creations
	// can still race on the count; the partial unique index on (user_id)
	// WHERE is_default rejects the loser.
	if err := s.ledgerRepo.Create(ctx, l, seed, isDefault && count > 0); err != nil {
		return nil, err
	}

	s.logger.Info("ledger created",
		zap.Int64("ledger_id", l.GetID()),
		zap.Int64("user_id", userID),
		zap.Bool("is_default", l.IsDefault))

	resp := ToLedgerResponse(l)
	return &resp, nil
}

// Get returns a ledger readable by the user: their own, or one shared with
// them and accepted
func (s *LedgerService) Get(ctx context.Context, userID, ledgerID int64) (*LedgerResponse, error) {
	l, err := s.findReadable(ctx, userID, ledgerID)
	if err != nil {
		return nil, err
	}
	resp := ToLedgerResponse(l)
	return &resp, nil
}

// List returns the user's own ledgers
func (s *LedgerService) List(ctx context.Context, userID int64) ([]LedgerResponse, error) {
	ledgers, err := s.ledgerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]LedgerResponse, len(ledgers))
	for i, l := range ledgers {
		responses[i] = ToLedgerResponse(l)
	}
	return responses, nil
}

// Update changes a ledger's name, description and currency. Owner only.
func (s *LedgerService) Update(ctx context.Context, userID, ledgerID int64, req UpdateLedgerRequest) (*LedgerResponse, error) {
	l, err := s.findOwned(ctx, userID, ledgerID)
	if err != nil {
		return nil, err
	}
	if err := l.Update(req.Name, req.Description, req.Currency); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Update(ctx, l, false); err != nil {
		return nil, err
	}
	resp := ToLedgerResponse(l)
	return &resp, nil
}

// SetDefault makes the ledger the user's default. The previous default is
// cleared inside the same transaction as the set.
func (s *LedgerService) SetDefault(ctx context.Context, userID, ledgerID int64) (*LedgerResponse, error) {
	l, err := s.findOwned(ctx, userID, ledgerID)
	if err != nil {
		return nil, err
	}
	if !l.IsDefault {
		l.SetAsDefault()
		if err := s.ledgerRepo.Update(ctx, l, true); err != nil {
			return nil, err
		}
	}
	resp := ToLedgerResponse(l)
	return &resp, nil
}

// Delete logically deletes a ledger. Owner only.
func (s *LedgerService) Delete(ctx context.Context, userID, ledgerID int64) error {
	l, err := s.findOwned(ctx, userID, ledgerID)
	if err != nil {
		return err
	}
	l.Delete()
	if err := s.ledgerRepo.Update(ctx, l, false); err != nil {
		return err
	}
	s.logger.Info("ledger deleted",
		zap.Int64("ledger_id", ledgerID), zap.Int64("user_id", userID))
	return nil
}

// GetSummary aggregates transaction totals for one readable ledger over the
// given period. Totals come from the mirrored transaction store.
func (s *LedgerService) GetSummary(ctx context.Context, userID, ledgerID int64, period SummaryPeriod) (*ledger.LedgerSummary, error) {
	if _, err := s.findReadable(ctx, userID, ledgerID); err != nil {
		return nil, err
	}

	totals, err := s.txRepo.SumByType(ctx, []int64{ledgerID}, period.From, period.To)
	if err != nil {
		return nil, err
	}

	income, expense := splitTotals(totals)
	return &ledger.LedgerSummary{
		LedgerID:     ledgerID,
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
		From:         period.From,
		To:           period.To,
	}, nil
}

// GetTotalSummary aggregates transaction totals across every ledger the user
// can read: owned plus accepted shared ledgers
func (s *LedgerService) GetTotalSummary(ctx context.Context, userID int64, period SummaryPeriod) (*TotalSummaryResponse, error) {
	ledgerIDs, err := s.readableLedgerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals, err := s.txRepo.SumByType(ctx, ledgerIDs, period.From, period.To)
	if err != nil {
		return nil, err
	}

	income, expense := splitTotals(totals)
	return &TotalSummaryResponse{
		LedgerCount:  len(ledgerIDs),
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
		From:         period.From,
		To:           period.To,
	}, nil
}

func splitTotals(totals []transaction.TypeTotal) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, t := range totals {
		switch t.Type {
		case ledger.TransactionTypeIncome:
			income = income.Add(t.Total)
		case ledger.TransactionTypeExpense:
			expense = expense.Add(t.Total)
		}
	}
	return income, expense
}

// readableLedgerIDs returns the user's own ledger ids plus the ids of live
// ledgers shared with them and accepted
func (s *LedgerService) readableLedgerIDs(ctx context.Context, userID int64) ([]int64, error) {
	own, err := s.ledgerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(own))
	seen := make(map[int64]bool)
	for _, l := range own {
		ids = append(ids, l.GetID())
		seen[l.GetID()] = true
	}

	shares, err := s.shareRepo.FindAcceptedBySharedUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sharedIDs := make([]int64, 0, len(shares))
	for _, sh := range shares {
		if !seen[sh.LedgerID] {
			sharedIDs = append(sharedIDs, sh.LedgerID)
			seen[sh.LedgerID] = true
		}
	}

	// A share can outlive its ledger; keep only ledgers that still exist
	live, err := s.ledgerRepo.FindByIDs(ctx, sharedIDs)
	if err != nil {
		return nil, err
	}
	for _, l := range live {
		ids = append(ids, l.GetID())
	}
	return ids, nil
}

func (s *LedgerService) findOwned(ctx context.Context, userID, ledgerID int64) (*ledger.Ledger, error) {
	l, err := s.ledgerRepo.FindByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if !l.IsOwnedBy(userID) {
		return nil, ledger.ErrNotLedgerOwner
	}
	return l, nil
}

func (s *LedgerService) findReadable(ctx context.Context, userID, ledgerID int64) (*ledger.Ledger, error) {
	l, err := s.ledgerRepo.FindByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if l.IsOwnedBy(userID) {
		return l, nil
	}
	ok, err := s.hasAcceptedShare(ctx, ledgerID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrForbidden
	}
	return l, nil
}

func (s *LedgerService) hasAcceptedShare(ctx context.Context, ledgerID, userID int64) (bool, error) {
	shares, err := s.shareRepo.FindAcceptedBySharedUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, sh := range shares {
		if sh.LedgerID == ledgerID {
			return true, nil
		}
	}
	return false, nil
}
