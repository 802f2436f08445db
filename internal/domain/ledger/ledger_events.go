package ledger

import (
	"github.com/fintrack/ledger/internal/domain/shared"
)

// Aggregate type name used in outbox entries and topic resolution
const AggregateTypeLedger = "Ledger"

// LedgerCreatedEvent is raised when a new ledger is created
type LedgerCreatedEvent struct {
	shared.BaseDomainEvent
	LedgerID    int64  `json:"ledgerId"`
	UserID      int64  `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
	IsDefault   bool   `json:"isDefault"`
}

// EventType returns the event type name
func (e *LedgerCreatedEvent) EventType() string {
	return "LedgerCreated"
}

// NewLedgerCreatedEvent creates a new LedgerCreatedEvent
func NewLedgerCreatedEvent(l *Ledger) *LedgerCreatedEvent {
	return &LedgerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerCreated", AggregateTypeLedger, l.ID),
		LedgerID:        l.ID,
		UserID:          l.UserID,
		Name:            l.Name,
		Description:     l.Description,
		Currency:        l.Currency,
		IsDefault:       l.IsDefault,
	}
}

// LedgerUpdatedEvent is raised when ledger fields change
type LedgerUpdatedEvent struct {
	shared.BaseDomainEvent
	LedgerID    int64  `json:"ledgerId"`
	UserID      int64  `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
	IsDefault   bool   `json:"isDefault"`
}

// EventType returns the event type name
func (e *LedgerUpdatedEvent) EventType() string {
	return "LedgerUpdated"
}

// NewLedgerUpdatedEvent creates a new LedgerUpdatedEvent
func NewLedgerUpdatedEvent(l *Ledger) *LedgerUpdatedEvent {
	return &LedgerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerUpdated", AggregateTypeLedger, l.ID),
		LedgerID:        l.ID,
		UserID:          l.UserID,
		Name:            l.Name,
		Description:     l.Description,
		Currency:        l.Currency,
		IsDefault:       l.IsDefault,
	}
}

// LedgerDeletedEvent is raised when a ledger is logically deleted
type LedgerDeletedEvent struct {
	shared.BaseDomainEvent
	LedgerID int64 `json:"ledgerId"`
	UserID   int64 `json:"userId"`
}

// EventType returns the event type name
func (e *LedgerDeletedEvent) EventType() string {
	return "LedgerDeleted"
}

// NewLedgerDeletedEvent creates a new LedgerDeletedEvent
func NewLedgerDeletedEvent(l *Ledger) *LedgerDeletedEvent {
	return &LedgerDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerDeleted", AggregateTypeLedger, l.ID),
		LedgerID:        l.ID,
		UserID:          l.UserID,
	}
}
