package sharing

import (
	"time"

	"github.com/fintrack/ledger/internal/domain/shared"
)

// Aggregate type name used in outbox entries and topic resolution
const AggregateTypeLedgerShare = "LedgerShare"

// LedgerShareCreatedEvent is raised when a share invitation is created
type LedgerShareCreatedEvent struct {
	shared.BaseDomainEvent
	LedgerShareID int64  `json:"ledgerShareId"`
	LedgerID      int64  `json:"ledgerId"`
	OwnerID       int64  `json:"ownerId"`
	SharedUserID  int64  `json:"sharedUserId"`
	Permission    string `json:"permission"`
}

// EventType returns the event type name
func (e *LedgerShareCreatedEvent) EventType() string {
	return "LedgerShareCreated"
}

// NewLedgerShareCreatedEvent creates a new LedgerShareCreatedEvent
func NewLedgerShareCreatedEvent(s *LedgerShare) *LedgerShareCreatedEvent {
	return &LedgerShareCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerShareCreated", AggregateTypeLedgerShare, s.ID),
		LedgerShareID:   s.ID,
		LedgerID:        s.LedgerID,
		OwnerID:         s.OwnerID,
		SharedUserID:    s.SharedUserID,
		Permission:      s.Permission.String(),
	}
}

// LedgerShareAcceptedEvent is raised when the invited user accepts
type LedgerShareAcceptedEvent struct {
	shared.BaseDomainEvent
	LedgerShareID int64     `json:"ledgerShareId"`
	LedgerID      int64     `json:"ledgerId"`
	SharedUserID  int64     `json:"sharedUserId"`
	AcceptedAt    time.Time `json:"acceptedAt"`
}

// EventType returns the event type name
func (e *LedgerShareAcceptedEvent) EventType() string {
	return "LedgerShareAccepted"
}

// NewLedgerShareAcceptedEvent creates a new LedgerShareAcceptedEvent
func NewLedgerShareAcceptedEvent(s *LedgerShare) *LedgerShareAcceptedEvent {
	acceptedAt := time.Now()
	if s.AcceptedAt != nil {
		acceptedAt = *s.AcceptedAt
	}
	return &LedgerShareAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerShareAccepted", AggregateTypeLedgerShare, s.ID),
		LedgerShareID:   s.ID,
		LedgerID:        s.LedgerID,
		SharedUserID:    s.SharedUserID,
		AcceptedAt:      acceptedAt,
	}
}

// LedgerShareRejectedEvent is raised when the invited user rejects
type LedgerShareRejectedEvent struct {
	shared.BaseDomainEvent
	LedgerShareID int64  `json:"ledgerShareId"`
	LedgerID      int64  `json:"ledgerId"`
	SharedUserID  int64  `json:"sharedUserId"`
	Reason        string `json:"reason"`
}

// EventType returns the event type name
func (e *LedgerShareRejectedEvent) EventType() string {
	return "LedgerShareRejected"
}

// NewLedgerShareRejectedEvent creates a new LedgerShareRejectedEvent
func NewLedgerShareRejectedEvent(s *LedgerShare) *LedgerShareRejectedEvent {
	return &LedgerShareRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerShareRejected", AggregateTypeLedgerShare, s.ID),
		LedgerShareID:   s.ID,
		LedgerID:        s.LedgerID,
		SharedUserID:    s.SharedUserID,
		Reason:          s.RejectionReason,
	}
}

// LedgerShareDeletedEvent is raised when either side deletes the share
type LedgerShareDeletedEvent struct {
	shared.BaseDomainEvent
	LedgerShareID int64 `json:"ledgerShareId"`
	LedgerID      int64 `json:"ledgerId"`
	UserID        int64 `json:"userId"`
}

// EventType returns the event type name
func (e *LedgerShareDeletedEvent) EventType() string {
	return "LedgerShareDeleted"
}

// NewLedgerShareDeletedEvent creates a new LedgerShareDeletedEvent.
// userID is the actor who deleted the share, owner or shared user.
func NewLedgerShareDeletedEvent(s *LedgerShare, userID int64) *LedgerShareDeletedEvent {
	return &LedgerShareDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerShareDeleted", AggregateTypeLedgerShare, s.ID),
		LedgerShareID:   s.ID,
		LedgerID:        s.LedgerID,
		UserID:          userID,
	}
}
