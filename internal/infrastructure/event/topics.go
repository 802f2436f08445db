package event

import (
	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/sharing"
)

// Default broker topics per aggregate type
const (
	TopicLedgerEvents      = "ledger.events"
	TopicLedgerShareEvents = "ledger-share.events"
	TopicTransactionEvents = "transaction.events"
)

// TopicResolver maps an aggregate type to the broker topic its events are
// relayed to. Unknown aggregate types fall back to the default topic.
type TopicResolver struct {
	topics       map[string]string
	defaultTopic string
}

// NewTopicResolver creates a resolver with explicit mappings
func NewTopicResolver(topics map[string]string, defaultTopic string) *TopicResolver {
	m := make(map[string]string, len(topics))
	for k, v := range topics {
		m[k] = v
	}
	return &TopicResolver{topics: m, defaultTopic: defaultTopic}
}

// DefaultTopicResolver returns the resolver with this service's topic layout
func DefaultTopicResolver() *TopicResolver {
	return NewTopicResolver(map[string]string{
		ledger.AggregateTypeLedger:       TopicLedgerEvents,
		sharing.AggregateTypeLedgerShare: TopicLedgerShareEvents,
	}, TopicLedgerEvents)
}

// Resolve returns the topic for an aggregate type
func (r *TopicResolver) Resolve(aggregateType string) string {
	if topic, ok := r.topics[aggregateType]; ok {
		return topic
	}
	return r.defaultTopic
}
