package sharing

import (
	"context"

	"go.uber.org/zap"

	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/sharing"
)

// ShareService drives the ledger share lifecycle. Status changes go through
// the aggregate's transition table; the repository appends the resulting
// events to the outbox in the same transaction as the state change.
type ShareService struct {
	shareRepo  sharing.ShareRepository
	ledgerRepo ledger.LedgerRepository
	userRepo   ledger.UserRepository
	logger     *zap.Logger
}

// NewShareService creates a new share service
func NewShareService(
	shareRepo sharing.ShareRepository,
	ledgerRepo ledger.LedgerRepository,
	userRepo ledger.UserRepository,
	logger *zap.Logger,
) *ShareService {
	return &ShareService{
		shareRepo:  shareRepo,
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Create invites a user to the caller's ledger. The invitation starts
// PENDING; at most one PENDING or ACCEPTED share may exist per ledger/user
// pair.
func (s *ShareService) Create(ctx context.Context, ownerID int64, req CreateShareRequest) (*ShareResponse, error) {
	permission, err := sharing.ParsePermission(req.Permission)
	if err != nil {
		return nil, err
	}

	l, err := s.ledgerRepo.FindByID(ctx, req.LedgerID)
	if err != nil {
		return nil, err
	}
	if !l.IsOwnedBy(ownerID) {
		return nil, ledger.ErrNotLedgerOwner
	}

	exists, err := s.userRepo.Exists(ctx, req.SharedUserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ledger.ErrUserNotFound
	}

	active, err := s.shareRepo.ExistsActive(ctx, req.LedgerID, req.SharedUserID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, sharing.ErrShareAlreadyExists
	}

	share, err := sharing.NewLedgerShare(req.LedgerID, ownerID, req.SharedUserID, permission)
	if err != nil {
		return nil, err
	}
	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, err
	}

	s.logger.Info("ledger share created",
		zap.Int64("share_id", share.GetID()),
		zap.Int64("ledger_id", req.LedgerID),
		zap.Int64("owner_id", ownerID),
		zap.Int64("shared_user_id", req.SharedUserID))

	resp := ToShareResponse(share)
	return &resp, nil
}

// Accept accepts a pending invitation. Only the invited user may accept, and
// only from PENDING.
func (s *ShareService) Accept(ctx context.Context, actorID, shareID int64) (*ShareResponse, error) {
	share, err := s.shareRepo.FindByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if err := share.Accept(actorID); err != nil {
		return nil, err
	}
	if err := s.shareRepo.Update(ctx, share); err != nil {
		return nil, err
	}

	s.logger.Info("ledger share accepted",
		zap.Int64("share_id", shareID), zap.Int64("user_id", actorID))

	resp := ToShareResponse(share)
	return &resp, nil
}

// Reject rejects a pending invitation. Only the invited user may reject, and
// only from PENDING.
func (s *ShareService) Reject(ctx context.Context, actorID, shareID int64, req RejectShareRequest) (*ShareResponse, error) {
	share, err := s.shareRepo.FindByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if err := share.Reject(actorID, req.Reason); err != nil {
		return nil, err
	}
	if err := s.shareRepo.Update(ctx, share); err != nil {
		return nil, err
	}

	s.logger.Info("ledger share rejected",
		zap.Int64("share_id", shareID), zap.Int64("user_id", actorID))

	resp := ToShareResponse(share)
	return &resp, nil
}

// Delete logically deletes a share. Either side may delete, from any status.
func (s *ShareService) Delete(ctx context.Context, actorID, shareID int64) error {
	share, err := s.shareRepo.FindByID(ctx, shareID)
	if err != nil {
		return err
	}
	if err := share.DeleteBy(actorID); err != nil {
		return err
	}
	if err := s.shareRepo.Update(ctx, share); err != nil {
		return err
	}

	s.logger.Info("ledger share deleted",
		zap.Int64("share_id", shareID), zap.Int64("user_id", actorID))
	return nil
}

// ListByLedger returns every share of a ledger. Owner only.
func (s *ShareService) ListByLedger(ctx context.Context, userID, ledgerID int64) ([]ShareResponse, error) {
	l, err := s.ledgerRepo.FindByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if !l.IsOwnedBy(userID) {
		return nil, ledger.ErrNotLedgerOwner
	}

	shares, err := s.shareRepo.FindByLedgerID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	return toShareResponses(shares), nil
}

// ListSharedWithMe returns the shares the user has accepted
func (s *ShareService) ListSharedWithMe(ctx context.Context, userID int64) ([]ShareResponse, error) {
	shares, err := s.shareRepo.FindAcceptedBySharedUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toShareResponses(shares), nil
}

// ListPending returns the invitations waiting on the user
func (s *ShareService) ListPending(ctx context.Context, userID int64) ([]ShareResponse, error) {
	shares, err := s.shareRepo.FindPendingBySharedUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toShareResponses(shares), nil
}

// ListSent returns the invitations the user has sent as owner
func (s *ShareService) ListSent(ctx context.Context, ownerID int64) ([]ShareResponse, error) {
	shares, err := s.shareRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toShareResponses(shares), nil
}

func toShareResponses(shares []*sharing.LedgerShare) []ShareResponse {
	responses := make([]ShareResponse, len(shares))
	for i, share := range shares {
		responses[i] = ToShareResponse(share)
	}
	return responses
}
