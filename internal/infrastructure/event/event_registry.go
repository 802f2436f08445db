package event

import (
	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/shared"
	"github.com/fintrack/ledger/internal/domain/sharing"
)

// RegisterAllEvents binds every domain event type to the serializer. The
// outbox processor needs these factories to rebuild events read back from
// the outbox table.
func RegisterAllEvents(s *EventSerializer) {
	s.Register("LedgerCreated", func() shared.DomainEvent { return &ledger.LedgerCreatedEvent{} })
	s.Register("LedgerUpdated", func() shared.DomainEvent { return &ledger.LedgerUpdatedEvent{} })
	s.Register("LedgerDeleted", func() shared.DomainEvent { return &ledger.LedgerDeletedEvent{} })

	s.Register("LedgerShareCreated", func() shared.DomainEvent { return &sharing.LedgerShareCreatedEvent{} })
	s.Register("LedgerShareAccepted", func() shared.DomainEvent { return &sharing.LedgerShareAcceptedEvent{} })
	s.Register("LedgerShareRejected", func() shared.DomainEvent { return &sharing.LedgerShareRejectedEvent{} })
	s.Register("LedgerShareDeleted", func() shared.DomainEvent { return &sharing.LedgerShareDeletedEvent{} })
}
