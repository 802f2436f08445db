package sharing

import (
	"context"
)

// ShareRepository defines persistence operations for ledger shares.
// Create and Update run inside a transaction and drain the aggregate's
// pending domain events into the outbox.
type ShareRepository interface {
	Create(ctx context.Context, s *LedgerShare) error
	Update(ctx context.Context, s *LedgerShare) error
	FindByID(ctx context.Context, id int64) (*LedgerShare, error)
	// ExistsActive reports whether a PENDING or ACCEPTED share already exists
	// for the ledger/user pair
	ExistsActive(ctx context.Context, ledgerID, sharedUserID int64) (bool, error)
	FindByLedgerID(ctx context.Context, ledgerID int64) ([]*LedgerShare, error)
	// FindAcceptedBySharedUser lists shares the user has accepted
	FindAcceptedBySharedUser(ctx context.Context, sharedUserID int64) ([]*LedgerShare, error)
	// FindPendingBySharedUser lists invitations waiting on the user
	FindPendingBySharedUser(ctx context.Context, sharedUserID int64) ([]*LedgerShare, error)
	// FindByOwner lists invitations the owner has sent
	FindByOwner(ctx context.Context, ownerID int64) ([]*LedgerShare, error)
}
