package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/sharing"
)

func TestTopicResolver_Resolve(t *testing.T) {
	resolver := DefaultTopicResolver()

	assert.Equal(t, TopicLedgerEvents, resolver.Resolve(ledger.AggregateTypeLedger))
	assert.Equal(t, TopicLedgerShareEvents, resolver.Resolve(sharing.AggregateTypeLedgerShare))
	assert.Equal(t, TopicLedgerEvents, resolver.Resolve("Unknown"))
}

func TestTopicResolver_CustomMapping(t *testing.T) {
	resolver := NewTopicResolver(map[string]string{
		"Ledger": "custom.topic",
	}, "fallback.topic")

	assert.Equal(t, "custom.topic", resolver.Resolve("Ledger"))
	assert.Equal(t, "fallback.topic", resolver.Resolve("LedgerShare"))
}
