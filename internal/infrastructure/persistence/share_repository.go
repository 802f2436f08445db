package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fintrack/ledger/internal/domain/shared"
	"github.com/fintrack/ledger/internal/domain/sharing"
)

// GormShareRepository implements ShareRepository using GORM
type GormShareRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormShareRepository creates a new GormShareRepository
func NewGormShareRepository(db *gorm.DB) *GormShareRepository {
	return &GormShareRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormShareRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// Create inserts a share and persists the creation event to the outbox in one
// transaction. The creation event is emitted after the insert so it carries
// the generated ID.
func (r *GormShareRepository) Create(ctx context.Context, s *sharing.LedgerShare) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}

		s.EmitCreated()
		return r.drainEvents(ctx, tx, s)
	})
}

// Update saves the share and its pending events in one transaction
func (r *GormShareRepository) Update(ctx context.Context, s *sharing.LedgerShare) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(s).Error; err != nil {
			return err
		}

		return r.drainEvents(ctx, tx, s)
	})
}

// FindByID finds a non-deleted share by its ID
func (r *GormShareRepository) FindByID(ctx context.Context, id int64) (*sharing.LedgerShare, error) {
	var share sharing.LedgerShare
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sharing.ErrShareNotFound
		}
		return nil, err
	}
	return &share, nil
}

// ExistsActive reports whether a PENDING or ACCEPTED share already exists for
// the ledger/user pair
func (r *GormShareRepository) ExistsActive(ctx context.Context, ledgerID, sharedUserID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sharing.LedgerShare{}).
		Where("ledger_id = ? AND shared_user_id = ? AND is_deleted = ? AND status IN ?",
			ledgerID, sharedUserID, false,
			[]sharing.ShareStatus{sharing.StatusPending, sharing.StatusAccepted}).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByLedgerID lists a ledger's non-deleted shares
func (r *GormShareRepository) FindByLedgerID(ctx context.Context, ledgerID int64) ([]*sharing.LedgerShare, error) {
	var shares []*sharing.LedgerShare
	if err := r.db.WithContext(ctx).
		Where("ledger_id = ? AND is_deleted = ?", ledgerID, false).
		Order("shared_at DESC").
		Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

// FindAcceptedBySharedUser lists shares the user has accepted
func (r *GormShareRepository) FindAcceptedBySharedUser(ctx context.Context, sharedUserID int64) ([]*sharing.LedgerShare, error) {
	return r.findBySharedUserAndStatus(ctx, sharedUserID, sharing.StatusAccepted)
}

// FindPendingBySharedUser lists invitations waiting on the user
func (r *GormShareRepository) FindPendingBySharedUser(ctx context.Context, sharedUserID int64) ([]*sharing.LedgerShare, error) {
	return r.findBySharedUserAndStatus(ctx, sharedUserID, sharing.StatusPending)
}

// FindByOwner lists invitations the owner has sent
func (r *GormShareRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*sharing.LedgerShare, error) {
	var shares []*sharing.LedgerShare
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", ownerID, false).
		Order("shared_at DESC").
		Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

func (r *GormShareRepository) findBySharedUserAndStatus(ctx context.Context, sharedUserID int64, status sharing.ShareStatus) ([]*sharing.LedgerShare, error) {
	var shares []*sharing.LedgerShare
	if err := r.db.WithContext(ctx).
		Where("shared_user_id = ? AND status = ? AND is_deleted = ?", sharedUserID, status, false).
		Order("shared_at DESC").
		Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

// drainEvents saves the aggregate's pending events to the outbox within tx
func (r *GormShareRepository) drainEvents(ctx context.Context, tx *gorm.DB, s *sharing.LedgerShare) error {
	events := s.GetDomainEvents()
	if len(events) == 0 {
		return nil
	}
	if r.outboxSaver != nil {
		if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
			return fmt.Errorf("failed to save events to outbox: %w", err)
		}
	}
	s.ClearDomainEvents()
	return nil
}

// Ensure GormShareRepository implements ShareRepository
var _ sharing.ShareRepository = (*GormShareRepository)(nil)
