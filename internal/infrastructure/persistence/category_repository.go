package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fintrack/ledger/internal/domain/ledger"
)

// GormCategoryRepository persists ledger categories through gorm.
type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create inserts a category
func (r *GormCategoryRepository) Create(ctx context.Context, c *ledger.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// Update saves a category
func (r *GormCategoryRepository) Update(ctx context.Context, c *ledger.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DeleteWithChildren logically deletes a category and its direct children in
// one transaction
func (r *GormCategoryRepository) DeleteWithChildren(ctx context.Context, c *ledger.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&ledger.Category{}).
			Where("parent_id = ? AND is_deleted = ?", c.GetID(), false).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		c.SoftDelete()
		return tx.Save(c).Error
	})
}

// FindByID finds a non-deleted category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id int64) (*ledger.Category, error) {
	var category ledger.Category
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByLedgerID lists a ledger's non-deleted categories
func (r *GormCategoryRepository) FindByLedgerID(ctx context.Context, ledgerID int64) ([]*ledger.Category, error) {
	var categories []*ledger.Category
	if err := r.db.WithContext(ctx).
		Where("ledger_id = ? AND is_deleted = ?", ledgerID, false).
		Order("type ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByLedgerIDAndType lists a ledger's non-deleted categories of one type
func (r *GormCategoryRepository) FindByLedgerIDAndType(ctx context.Context, ledgerID int64, catType ledger.TransactionType) ([]*ledger.Category, error) {
	var categories []*ledger.Category
	if err := r.db.WithContext(ctx).
		Where("ledger_id = ? AND type = ? AND is_deleted = ?", ledgerID, catType, false).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindChildren lists the non-deleted direct children of a category
func (r *GormCategoryRepository) FindChildren(ctx context.Context, parentID int64) ([]*ledger.Category, error) {
	var categories []*ledger.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id = ? AND is_deleted = ?", parentID, false).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

var _ ledger.CategoryRepository = (*GormCategoryRepository)(nil)
