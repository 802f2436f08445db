package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/shared"
)

// GormLedgerRepository implements LedgerRepository using GORM
type GormLedgerRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormLedgerRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// Create inserts a ledger together with its seed categories and persists the
// creation event to the outbox, all in one transaction. When clearDefaultFirst
// is set the user's previous default is demoted in that same transaction, so
// a failed insert rolls the demotion back too. The creation event is emitted
// after the insert so it carries the generated ID.
func (r *GormLedgerRepository) Create(ctx context.Context, l *ledger.Ledger, seed []*ledger.Category, clearDefaultFirst bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if clearDefaultFirst {
			if err := tx.Model(&ledger.Ledger{}).
				Where("user_id = ? AND is_default = ?", l.UserID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(l).Error; err != nil {
			return err
		}

		for _, category := range seed {
			category.LedgerID = l.GetID()
			if err := tx.Create(category).Error; err != nil {
				return err
			}
		}

		l.EmitCreated()
		return r.drainEvents(ctx, tx, l)
	})
}

// Update saves the ledger and its pending events in one transaction. When
// clearDefaultFirst is set, any other default ledger of the same user loses
// the flag first so at most one default survives.
func (r *GormLedgerRepository) Update(ctx context.Context, l *ledger.Ledger, clearDefaultFirst bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if clearDefaultFirst {
			if err := tx.Model(&ledger.Ledger{}).
				Where("user_id = ? AND is_default = ? AND id <> ?", l.UserID, true, l.GetID()).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		if err := tx.Save(l).Error; err != nil {
			return err
		}

		return r.drainEvents(ctx, tx, l)
	})
}

// FindByID finds a non-deleted ledger by its ID
func (r *GormLedgerRepository) FindByID(ctx context.Context, id int64) (*ledger.Ledger, error) {
	var l ledger.Ledger
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrLedgerNotFound
		}
		return nil, err
	}
	return &l, nil
}

// FindByUserID lists the user's non-deleted ledgers, oldest first
func (r *GormLedgerRepository) FindByUserID(ctx context.Context, userID int64) ([]*ledger.Ledger, error) {
	var ledgers []*ledger.Ledger
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at ASC").
		Find(&ledgers).Error; err != nil {
		return nil, err
	}
	return ledgers, nil
}

// FindByIDs finds non-deleted ledgers by their IDs
func (r *GormLedgerRepository) FindByIDs(ctx context.Context, ids []int64) ([]*ledger.Ledger, error) {
	if len(ids) == 0 {
		return []*ledger.Ledger{}, nil
	}
	var ledgers []*ledger.Ledger
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&ledgers).Error; err != nil {
		return nil, err
	}
	return ledgers, nil
}

// FindDefaultByUserID finds the user's default ledger
func (r *GormLedgerRepository) FindDefaultByUserID(ctx context.Context, userID int64) (*ledger.Ledger, error) {
	var l ledger.Ledger
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ? AND is_deleted = ?", userID, true, false).
		First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrLedgerNotFound
		}
		return nil, err
	}
	return &l, nil
}

// CountByUserID counts the user's non-deleted ledgers
func (r *GormLedgerRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.Ledger{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// drainEvents saves the aggregate's pending events to the outbox within tx
func (r *GormLedgerRepository) drainEvents(ctx context.Context, tx *gorm.DB, l *ledger.Ledger) error {
	events := l.GetDomainEvents()
	if len(events) == 0 {
		return nil
	}
	if r.outboxSaver != nil {
		if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
			return fmt.Errorf("failed to save events to outbox: %w", err)
		}
	}
	l.ClearDomainEvents()
	return nil
}

// Ensure GormLedgerRepository implements LedgerRepository
var _ ledger.LedgerRepository = (*GormLedgerRepository)(nil)
