package event

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fintrack/ledger/internal/domain/shared"
)

// OutboxPublisher writes domain events into the outbox table inside the
// caller's transaction, resolving each event's broker topic from its
// aggregate type.
type OutboxPublisher struct {
	serializer *EventSerializer
	topics     *TopicResolver
}

func NewOutboxPublisher(serializer *EventSerializer, topics *TopicResolver) *OutboxPublisher {
	if topics == nil {
		topics = DefaultTopicResolver()
	}
	return &OutboxPublisher{serializer: serializer, topics: topics}
}

// PublishWithTx appends the events to the outbox within tx, so they commit
// or roll back together with the aggregate write.
func (p *OutboxPublisher) PublishWithTx(ctx context.Context, tx *gorm.DB, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	entries := make([]*shared.OutboxEntry, 0, len(events))
	for _, event := range events {
		payload, err := p.serializer.Serialize(event)
		if err != nil {
			return err
		}
		topic := p.topics.Resolve(event.AggregateType())
		entries = append(entries, shared.NewOutboxEntry(topic, event, payload))
	}

	return NewGormOutboxRepository(tx).Save(ctx, entries...)
}

// SaveEvents adapts PublishWithTx to the shared.OutboxEventSaver interface
// the repositories call. The domain layer passes the transaction as an
// opaque value so it stays free of gorm.
func (p *OutboxPublisher) SaveEvents(ctx context.Context, txProvider any, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, ok := txProvider.(*gorm.DB)
	if !ok {
		return fmt.Errorf("txProvider must be a *gorm.DB, got %T", txProvider)
	}
	return p.PublishWithTx(ctx, tx, events...)
}

var _ shared.OutboxEventSaver = (*OutboxPublisher)(nil)
