package ledger

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/shared"
	"github.com/fintrack/ledger/internal/domain/sharing"
)

// CategoryService handles category management within a ledger. Mutations are
// owner-only; reads are open to users the ledger is shared with.
type CategoryService struct {
	categoryRepo ledger.CategoryRepository
	ledgerRepo   ledger.LedgerRepository
	shareRepo    sharing.ShareRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo ledger.CategoryRepository,
	ledgerRepo ledger.LedgerRepository,
	shareRepo sharing.ShareRepository,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		ledgerRepo:   ledgerRepo,
		shareRepo:    shareRepo,
		logger:       logger,
	}
}

// Create creates a category in a ledger. A child category must reference a
// live parent in the same ledger with the same type.
func (s *CategoryService) Create(ctx context.Context, userID, ledgerID int64, req CreateCategoryRequest) (*CategoryResponse, error) {
	if err := s.requireOwner(ctx, userID, ledgerID); err != nil {
		return nil, err
	}

	catType := ledger.TransactionType(req.Type)
	if !catType.IsValid() {
		return nil, ledger.ErrInvalidCategoryType
	}

	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *req.ParentID)
		if errors.Is(err, ledger.ErrCategoryNotFound) {
			return nil, ledger.ErrParentCategoryGone
		}
		if err != nil {
			return nil, err
		}
		if parent.LedgerID != ledgerID {
			return nil, ledger.ErrCategoryLedgerCross
		}
		if parent.Type != catType {
			return nil, ledger.ErrParentCategoryType
		}
	}

	c, err := ledger.NewCategory(ledgerID, req.Name, catType, req.Icon, req.Color, req.ParentID)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		zap.Int64("category_id", c.GetID()),
		zap.Int64("ledger_id", ledgerID),
		zap.String("type", catType.String()))

	resp := ToCategoryResponse(c)
	return &resp, nil
}

// Update changes a category's name, icon and color
func (s *CategoryService) Update(ctx context.Context, userID, categoryID int64, req UpdateCategoryRequest) (*CategoryResponse, error) {
	c, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, userID, c.LedgerID); err != nil {
		return nil, err
	}
	if err := c.Update(req.Name, req.Icon, req.Color); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(c)
	return &resp, nil
}

// Delete logically deletes a category and cascades to its direct children.
// Transactions keep their category_id; reads treat it as unassigned.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID int64) error {
	c, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, userID, c.LedgerID); err != nil {
		return err
	}
	if err := s.categoryRepo.DeleteWithChildren(ctx, c); err != nil {
		return err
	}
	s.logger.Info("category deleted with children",
		zap.Int64("category_id", categoryID),
		zap.Int64("ledger_id", c.LedgerID))
	return nil
}

// List returns a ledger's categories, optionally filtered by type
func (s *CategoryService) List(ctx context.Context, userID, ledgerID int64, typeFilter string) ([]CategoryResponse, error) {
	if err := s.requireReadable(ctx, userID, ledgerID); err != nil {
		return nil, err
	}

	var (
		categories []*ledger.Category
		err        error
	)
	if typeFilter != "" {
		catType := ledger.TransactionType(typeFilter)
		if !catType.IsValid() {
			return nil, ledger.ErrInvalidCategoryType
		}
		categories, err = s.categoryRepo.FindByLedgerIDAndType(ctx, ledgerID, catType)
	} else {
		categories, err = s.categoryRepo.FindByLedgerID(ctx, ledgerID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = ToCategoryResponse(c)
	}
	return responses, nil
}

// ListChildren returns a category's direct children
func (s *CategoryService) ListChildren(ctx context.Context, userID, categoryID int64) ([]CategoryResponse, error) {
	parent, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireReadable(ctx, userID, parent.LedgerID); err != nil {
		return nil, err
	}

	children, err := s.categoryRepo.FindChildren(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, len(children))
	for i, c := range children {
		responses[i] = ToCategoryResponse(c)
	}
	return responses, nil
}

func (s *CategoryService) requireOwner(ctx context.Context, userID, ledgerID int64) error {
	l, err := s.ledgerRepo.FindByID(ctx, ledgerID)
	if err != nil {
		return err
	}
	if !l.IsOwnedBy(userID) {
		return ledger.ErrNotLedgerOwner
	}
	return nil
}

func (s *CategoryService) requireReadable(ctx context.Context, userID, ledgerID int64) error {
	l, err := s.ledgerRepo.FindByID(ctx, ledgerID)
	if err != nil {
		return err
	}
	if l.IsOwnedBy(userID) {
		return nil
	}
	shares, err := s.shareRepo.FindAcceptedBySharedUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, sh := range shares {
		if sh.LedgerID == ledgerID {
			return nil
		}
	}
	return shared.ErrForbidden
}
