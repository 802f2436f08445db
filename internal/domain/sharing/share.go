package sharing

import (
	"time"

	"github.com/fintrack/ledger/internal/domain/shared"
)

// SharePermission is the access level granted to the shared user
type SharePermission string

const (
	PermissionReadOnly  SharePermission = "READ_ONLY"
	PermissionReadWrite SharePermission = "READ_WRITE"
)

// IsValid checks if the permission is a valid SharePermission
func (p SharePermission) IsValid() bool {
	return p == PermissionReadOnly || p == PermissionReadWrite
}

// String returns the string representation of SharePermission
func (p SharePermission) String() string {
	return string(p)
}

// ParsePermission parses a permission string. An empty string falls back to
// READ_ONLY; anything else unknown is rejected.
func ParsePermission(s string) (SharePermission, error) {
	if s == "" {
		return PermissionReadOnly, nil
	}
	p := SharePermission(s)
	if !p.IsValid() {
		return "", ErrInvalidPermission
	}
	return p, nil
}

// ShareStatus is the lifecycle state of a share invitation
type ShareStatus string

const (
	StatusPending  ShareStatus = "PENDING"
	StatusAccepted ShareStatus = "ACCEPTED"
	StatusRejected ShareStatus = "REJECTED"
)

// String returns the string representation of ShareStatus
func (s ShareStatus) String() string {
	return string(s)
}

// IsActive reports whether the status blocks a new share for the same
// ledger/user pair. PENDING and ACCEPTED shares are active; REJECTED is not.
func (s ShareStatus) IsActive() bool {
	return s == StatusPending || s == StatusAccepted
}

// ShareAction is a requested status transition
type ShareAction string

const (
	ActionAccept ShareAction = "ACCEPT"
	ActionReject ShareAction = "REJECT"
)

// transitions enumerates every legal status transition. Soft delete is not a
// transition: it is orthogonal to status and allowed from any state.
var transitions = map[ShareStatus]map[ShareAction]ShareStatus{
	StatusPending: {
		ActionAccept: StatusAccepted,
		ActionReject: StatusRejected,
	},
}

// NextStatus resolves the target status for an action, or reports that the
// transition is illegal from the current status.
func NextStatus(from ShareStatus, action ShareAction) (ShareStatus, bool) {
	next, ok := transitions[from][action]
	return next, ok
}

// Share-specific domain errors
var (
	ErrShareNotFound      = shared.NewDomainError("SHARE_NOT_FOUND", "Ledger share not found")
	ErrSharePermission    = shared.NewDomainError("SHARE_PERMISSION_DENIED", "Not allowed to act on this share")
	ErrShareInvalidStatus = shared.NewDomainError("SHARE_INVALID_STATUS", "Share is not in a state that allows this action")
	ErrShareAlreadyExists = shared.NewDomainError("SHARE_ALREADY_EXISTS", "An active share already exists for this user")
	ErrCannotShareSelf    = shared.NewDomainError("CANNOT_SHARE_WITH_SELF", "Cannot share a ledger with yourself")
	ErrInvalidPermission  = shared.NewDomainError("INVALID_SHARE_PERMISSION", "Unknown share permission")
)

// LedgerShare is an invitation from a ledger owner to another user. It moves
// PENDING -> ACCEPTED or PENDING -> REJECTED, decided by the shared user.
// Deletion is a logical flag independent of status.
type LedgerShare struct {
	shared.BaseAggregateRoot
	LedgerID        int64           `gorm:"not null;index" json:"ledger_id"`
	OwnerID         int64           `gorm:"not null;index" json:"owner_id"`
	SharedUserID    int64           `gorm:"not null;index" json:"shared_user_id"`
	Permission      SharePermission `gorm:"size:20;not null;default:READ_ONLY" json:"permission"`
	Status          ShareStatus     `gorm:"size:20;not null;default:PENDING" json:"status"`
	SharedAt        time.Time       `gorm:"not null" json:"shared_at"`
	AcceptedAt      *time.Time      `json:"accepted_at"`
	RejectionReason string          `gorm:"size:500" json:"rejection_reason"`
}

// TableName returns the database table name
func (LedgerShare) TableName() string {
	return "ledger_shares"
}

// NewLedgerShare creates a pending share invitation
func NewLedgerShare(ledgerID, ownerID, sharedUserID int64, permission SharePermission) (*LedgerShare, error) {
	if ownerID == sharedUserID {
		return nil, ErrCannotShareSelf
	}
	if !permission.IsValid() {
		return nil, ErrInvalidPermission
	}
	return &LedgerShare{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LedgerID:          ledgerID,
		OwnerID:           ownerID,
		SharedUserID:      sharedUserID,
		Permission:        permission,
		Status:            StatusPending,
		SharedAt:          time.Now(),
	}, nil
}

// EmitCreated records the creation event. Called by the repository after the
// insert so the event snapshot carries the database-assigned ID.
func (s *LedgerShare) EmitCreated() {
	s.AddDomainEvent(NewLedgerShareCreatedEvent(s))
}

// transition applies an action through the transition table
func (s *LedgerShare) transition(action ShareAction) error {
	next, ok := NextStatus(s.Status, action)
	if !ok {
		return ErrShareInvalidStatus
	}
	s.Status = next
	return nil
}

// Accept accepts a pending invitation. Only the invited user may accept.
func (s *LedgerShare) Accept(actorID int64) error {
	if actorID != s.SharedUserID {
		return ErrSharePermission
	}
	if err := s.transition(ActionAccept); err != nil {
		return err
	}
	now := time.Now()
	s.AcceptedAt = &now
	s.AddDomainEvent(NewLedgerShareAcceptedEvent(s))
	return nil
}

// Reject rejects a pending invitation. Only the invited user may reject.
func (s *LedgerShare) Reject(actorID int64, reason string) error {
	if actorID != s.SharedUserID {
		return ErrSharePermission
	}
	if err := s.transition(ActionReject); err != nil {
		return err
	}
	s.RejectionReason = reason
	s.AddDomainEvent(NewLedgerShareRejectedEvent(s))
	return nil
}

// DeleteBy logically deletes the share. Either side of the share may delete
// it, regardless of status.
func (s *LedgerShare) DeleteBy(actorID int64) error {
	if actorID != s.OwnerID && actorID != s.SharedUserID {
		return ErrSharePermission
	}
	s.SoftDelete()
	s.AddDomainEvent(NewLedgerShareDeletedEvent(s, actorID))
	return nil
}

// InvolvedUser reports whether the user is the owner or the shared user
func (s *LedgerShare) InvolvedUser(userID int64) bool {
	return userID == s.OwnerID || userID == s.SharedUserID
}
