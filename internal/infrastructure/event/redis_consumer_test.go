package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadFromStreamValues_PayloadField(t *testing.T) {
	raw := `{"eventType":"TRANSACTION_CREATED","transactionId":55}`

	payload, err := payloadFromStreamValues(map[string]interface{}{"payload": raw})
	require.NoError(t, err)
	assert.Equal(t, []byte(raw), payload)
}

func TestPayloadFromStreamValues_BytesPayload(t *testing.T) {
	raw := []byte(`{"eventType":"TRANSACTION_DELETED"}`)

	payload, err := payloadFromStreamValues(map[string]interface{}{"payload": raw})
	require.NoError(t, err)
	assert.Equal(t, raw, payload)
}

func TestPayloadFromStreamValues_FlatEntry(t *testing.T) {
	payload, err := payloadFromStreamValues(map[string]interface{}{
		"eventType":     "TRANSACTION_CREATED",
		"transactionId": "55",
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "TRANSACTION_CREATED", decoded["eventType"])
	assert.Equal(t, "55", decoded["transactionId"])
}

func TestDefaultRedisStreamConsumerConfig(t *testing.T) {
	cfg := DefaultRedisStreamConsumerConfig("transaction.events", "ledger-service")

	assert.Equal(t, "transaction.events", cfg.Stream)
	assert.Equal(t, "ledger-service", cfg.Group)
	assert.NotEmpty(t, cfg.Consumer)
	assert.Positive(t, cfg.BatchSize)
	assert.Positive(t, cfg.BlockTimeout)
}
