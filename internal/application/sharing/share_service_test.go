package sharing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/sharing"
)

// MockShareRepository is a mock implementation of sharing.ShareRepository
type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) Create(ctx context.Context, s *sharing.LedgerShare) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShareRepository) Update(ctx context.Context, s *sharing.LedgerShare) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShareRepository) FindByID(ctx context.Context, id int64) (*sharing.LedgerShare, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharing.LedgerShare), args.Error(1)
}

func (m *MockShareRepository) ExistsActive(ctx context.Context, ledgerID, sharedUserID int64) (bool, error) {
	args := m.Called(ctx, ledgerID, sharedUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockShareRepository) FindByLedgerID(ctx context.Context, ledgerID int64) ([]*sharing.LedgerShare, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sharing.LedgerShare), args.Error(1)
}

func (m *MockShareRepository) FindAcceptedBySharedUser(ctx context.Context, sharedUserID int64) ([]*sharing.LedgerShare, error) {
	args := m.Called(ctx, sharedUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sharing.LedgerShare), args.Error(1)
}

func (m *MockShareRepository) FindPendingBySharedUser(ctx context.Context, sharedUserID int64) ([]*sharing.LedgerShare, error) {
	args := m.Called(ctx, sharedUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sharing.LedgerShare), args.Error(1)
}

func (m *MockShareRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*sharing.LedgerShare, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sharing.LedgerShare), args.Error(1)
}

// MockLedgerRepository is a mock implementation of ledger.LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Create(ctx context.Context, l *ledger.Ledger, seed []*ledger.Category, clearDefaultFirst bool) error {
	args := m.Called(ctx, l, seed, clearDefaultFirst)
	return args.Error(0)
}

func (m *MockLedgerRepository) Update(ctx context.Context, l *ledger.Ledger, clearDefaultFirst bool) error {
	args := m.Called(ctx, l, clearDefaultFirst)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindByID(ctx context.Context, id int64) (*ledger.Ledger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) FindByUserID(ctx context.Context, userID int64) ([]*ledger.Ledger, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) FindByIDs(ctx context.Context, ids []int64) ([]*ledger.Ledger, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) FindDefaultByUserID(ctx context.Context, userID int64) (*ledger.Ledger, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of ledger.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func newTestService() (*ShareService, *MockShareRepository, *MockLedgerRepository, *MockUserRepository) {
	shareRepo := new(MockShareRepository)
	ledgerRepo := new(MockLedgerRepository)
	userRepo := new(MockUserRepository)
	return NewShareService(shareRepo, ledgerRepo, userRepo, zap.NewNop()), shareRepo, ledgerRepo, userRepo
}

func ownedLedger(t *testing.T, id, ownerID int64) *ledger.Ledger {
	t.Helper()
	l, err := ledger.NewLedger(ownerID, "공유 가계부", "", "KRW", true)
	require.NoError(t, err)
	l.ID = id
	return l
}

func pendingShare(t *testing.T, id int64) *sharing.LedgerShare {
	t.Helper()
	s, err := sharing.NewLedgerShare(5, 1, 2, sharing.PermissionReadOnly)
	require.NoError(t, err)
	s.ID = id
	return s
}

func TestShareService_Create(t *testing.T) {
	svc, shareRepo, ledgerRepo, userRepo := newTestService()

	ledgerRepo.On("FindByID", mock.Anything, int64(5)).Return(ownedLedger(t, 5, 1), nil)
	userRepo.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	shareRepo.On("ExistsActive", mock.Anything, int64(5), int64(2)).Return(false, nil)
	shareRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *sharing.LedgerShare) bool {
		return s.Status == sharing.StatusPending && s.Permission == sharing.PermissionReadWrite
	})).Return(nil)

	resp, err := svc.Create(context.Background(), 1, CreateShareRequest{
		LedgerID:     5,
		SharedUserID: 2,
		Permission:   "READ_WRITE",
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "READ_WRITE", resp.Permission)
	shareRepo.AssertExpectations(t)
}

func TestShareService_Create_EmptyPermissionDefaultsReadOnly(t *testing.T) {
	svc, shareRepo, ledgerRepo, userRepo := newTestService()

	ledgerRepo.On("FindByID", mock.Anything, int64(5)).Return(ownedLedger(t, 5, 1), nil)
	userRepo.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	shareRepo.On("ExistsActive", mock.Anything, int64(5), int64(2)).Return(false, nil)
	shareRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Create(context.Background(), 1, CreateShareRequest{LedgerID: 5, SharedUserID: 2})
	require.NoError(t, err)
	assert.Equal(t, "READ_ONLY", resp.Permission)
}

func TestShareService_Create_Validation(t *testing.T) {
	t.Run("unknown permission", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		_, err := svc.Create(context.Background(), 1, CreateShareRequest{
			LedgerID: 5, SharedUserID: 2, Permission: "ADMIN",
		})
		assert.ErrorIs(t, err, sharing.ErrInvalidPermission)
	})

	t.Run("not the ledger owner", func(t *testing.T) {
		svc, _, ledgerRepo, _ := newTestService()
		ledgerRepo.On("FindByID", mock.Anything, int64(5)).Return(ownedLedger(t, 5, 99), nil)
		_, err := svc.Create(context.Background(), 1, CreateShareRequest{LedgerID: 5, SharedUserID: 2})
		assert.ErrorIs(t, err, ledger.ErrNotLedgerOwner)
	})

	t.Run("ledger missing", func(t *testing.T) {
		svc, _, ledgerRepo, _ := newTestService()
		ledgerRepo.On("FindByID", mock.Anything, int64(5)).Return(nil, ledger.ErrLedgerNotFound)
		_, err := svc.Create(context.Background(), 1, CreateShareRequest{LedgerID: 5, SharedUserID: 2})
		assert.ErrorIs(t, err, ledger.ErrLedgerNotFound)
	})

	t.Run("shared user missing", func(t *testing.T) {
		svc, _, ledgerRepo, userRepo := newTestService()
		ledgerRepo.On("FindByID", mock.Anything, int64(5)).Return(ownedLedger(t, 5, 1), nil)
		userRepo.On("Exists", mock.Anything, int64(2)).Return(false, nil)
		_, err := svc.Create(context.Background(), 1, CreateShareRequest{LedgerID: 5, SharedUserID: 2})
		assert.ErrorIs(t, err, ledger.ErrUserNotFound)
	})

	t.Run("self share", func(t *testing.T) {
		svc, shareRepo, ledgerRepo, userRepo := newTestService()
		ledgerRepo.On("FindByID", mock.Anything, int64(5)).Return(ownedLedger(t, 5, 1), nil)
		userRepo.On("Exists", mock.Anything, int64(1)).Return(true, nil)
		shareRepo.On("ExistsActive", mock.Anything, int64(5), int64(1)).Return(false, nil)
		_, err := svc.Create(context.Background(), 1, CreateShareRequest{LedgerID: 5, SharedUserID: 1})
		assert.ErrorIs(t, err, sharing.ErrCannotShareSelf)
	})

	t.Run("duplicate active share", func(t *testing.T) {
		svc, shareRepo, ledgerRepo, userRepo := newTestService()
		ledgerRepo.On("FindByID", mock.Anything, int64(5)).Return(ownedLedger(t, 5, 1), nil)
		userRepo.On("Exists", mock.Anything, int64(2)).Return(true, nil)
		shareRepo.On("ExistsActive", mock.Anything, int64(5), int64(2)).Return(true, nil)
		_, err := svc.Create(context.Background(), 1, CreateShareRequest{LedgerID: 5, SharedUserID: 2})
		assert.ErrorIs(t, err, sharing.ErrShareAlreadyExists)
		shareRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestShareService_Accept(t *testing.T) {
	svc, shareRepo, _, _ := newTestService()

	share := pendingShare(t, 30)
	shareRepo.On("FindByID", mock.Anything, int64(30)).Return(share, nil)
	shareRepo.On("Update", mock.Anything, share).Return(nil)

	resp, err := svc.Accept(context.Background(), 2, 30)
	require.NoError(t, err)
	assert.Equal(t, "ACCEPTED", resp.Status)
	require.NotNil(t, resp.AcceptedAt)
	shareRepo.AssertExpectations(t)
}

func TestShareService_Accept_Gating(t *testing.T) {
	t.Run("owner cannot accept", func(t *testing.T) {
		svc, shareRepo, _, _ := newTestService()
		share := pendingShare(t, 30)
		shareRepo.On("FindByID", mock.Anything, int64(30)).Return(share, nil)

		_, err := svc.Accept(context.Background(), 1, 30)
		assert.ErrorIs(t, err, sharing.ErrSharePermission)
		shareRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("already accepted", func(t *testing.T) {
		svc, shareRepo, _, _ := newTestService()
		share := pendingShare(t, 30)
		require.NoError(t, share.Accept(2))
		shareRepo.On("FindByID", mock.Anything, int64(30)).Return(share, nil)

		_, err := svc.Accept(context.Background(), 2, 30)
		assert.ErrorIs(t, err, sharing.ErrShareInvalidStatus)
	})

	t.Run("rejected cannot be accepted", func(t *testing.T) {
		svc, shareRepo, _, _ := newTestService()
		share := pendingShare(t, 30)
		require.NoError(t, share.Reject(2, ""))
		shareRepo.On("FindByID", mock.Anything, int64(30)).Return(share, nil)

		_, err := svc.Accept(context.Background(), 2, 30)
		assert.ErrorIs(t, err, sharing.ErrShareInvalidStatus)
	})
}

func TestShareService_Reject(t *testing.T) {
	svc, shareRepo, _, _ := newTestService()

	share := pendingShare(t, 30)
	shareRepo.On("FindByID", mock.Anything, int64(30)).Return(share, nil)
	shareRepo.On("Update", mock.Anything, share).Return(nil)

	resp, err := svc.Reject(context.Background(), 2, 30, RejectShareRequest{Reason: "사용하지 않는 가계부"})
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", resp.Status)
	assert.Equal(t, "사용하지 않는 가계부", resp.RejectionReason)
}

func TestShareService_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		svc, shareRepo, _, _ := newTestService()
		share := pendingShare(t, 30)
		shareRepo.On("FindByID", mock.Anything, int64(30)).Return(share, nil)
		shareRepo.On("Update", mock.Anything, share).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), 1, 30))
		assert.True(t, share.IsDeleted)
	})

	t.Run("shared user deletes an accepted share", func(t *testing.T) {
		svc, shareRepo, _, _ := newTestService()
		share := pendingShare(t, 30)
		require.NoError(t, share.Accept(2))
		shareRepo.On("FindByID", mock.Anything, int64(30)).Return(share, nil)
		shareRepo.On("Update", mock.Anything, share).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), 2, 30))
		assert.True(t, share.IsDeleted)
		assert.Equal(t, sharing.StatusAccepted, share.Status, "delete leaves status untouched")
	})

	t.Run("outsider cannot delete", func(t *testing.T) {
		svc, shareRepo, _, _ := newTestService()
		share := pendingShare(t, 30)
		shareRepo.On("FindByID", mock.Anything, int64(30)).Return(share, nil)

		err := svc.Delete(context.Background(), 77, 30)
		assert.ErrorIs(t, err, sharing.ErrSharePermission)
	})
}

func TestShareService_ListByLedger_OwnerOnly(t *testing.T) {
	svc, shareRepo, ledgerRepo, _ := newTestService()

	ledgerRepo.On("FindByID", mock.Anything, int64(5)).Return(ownedLedger(t, 5, 99), nil)

	_, err := svc.ListByLedger(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ledger.ErrNotLedgerOwner)
	shareRepo.AssertNotCalled(t, "FindByLedgerID", mock.Anything, mock.Anything)
}

func TestShareService_Listings(t *testing.T) {
	svc, shareRepo, ledgerRepo, _ := newTestService()

	share := pendingShare(t, 30)
	ledgerRepo.On("FindByID", mock.Anything, int64(5)).Return(ownedLedger(t, 5, 1), nil)
	shareRepo.On("FindByLedgerID", mock.Anything, int64(5)).Return([]*sharing.LedgerShare{share}, nil)
	shareRepo.On("FindPendingBySharedUser", mock.Anything, int64(2)).Return([]*sharing.LedgerShare{share}, nil)
	shareRepo.On("FindAcceptedBySharedUser", mock.Anything, int64(2)).Return([]*sharing.LedgerShare{}, nil)
	shareRepo.On("FindByOwner", mock.Anything, int64(1)).Return([]*sharing.LedgerShare{share}, nil)

	byLedger, err := svc.ListByLedger(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Len(t, byLedger, 1)

	pending, err := svc.ListPending(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	accepted, err := svc.ListSharedWithMe(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, accepted)

	sent, err := svc.ListSent(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, sent, 1)
}
