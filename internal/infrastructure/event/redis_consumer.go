package event

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// MessageHandler processes one raw inbound message. Returning an error leaves
// the message pending in the consumer group for redelivery.
type MessageHandler interface {
	HandleMessage(ctx context.Context, payload []byte) error
}

// RedisStreamConsumerConfig configures a stream consumer group reader
type RedisStreamConsumerConfig struct {
	Stream       string
	Group        string
	Consumer     string
	BatchSize    int64
	BlockTimeout time.Duration
}

// DefaultRedisStreamConsumerConfig returns sensible defaults for the given
// stream and group
func DefaultRedisStreamConsumerConfig(stream, group string) RedisStreamConsumerConfig {
	return RedisStreamConsumerConfig{
		Stream:       stream,
		Group:        group,
		Consumer:     "ledger-service",
		BatchSize:    16,
		BlockTimeout: 5 * time.Second,
	}
}

// RedisStreamConsumer reads raw event payloads from a Redis stream consumer
// group and feeds them to a MessageHandler. Messages are acknowledged only
// after the handler succeeds, so failures stay pending and are redelivered.
type RedisStreamConsumer struct {
	client  *redis.Client
	handler MessageHandler
	config  RedisStreamConsumerConfig
	logger  *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRedisStreamConsumer creates a consumer bound to one stream and group
func NewRedisStreamConsumer(
	client *redis.Client,
	handler MessageHandler,
	config RedisStreamConsumerConfig,
	logger *zap.Logger,
) *RedisStreamConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStreamConsumer{
		client:  client,
		handler: handler,
		config:  config,
		logger:  logger,
	}
}

// Start creates the consumer group if needed and begins reading in the
// background
func (c *RedisStreamConsumer) Start(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.config.Stream, c.config.Group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.wg.Add(1)
	go c.run(runCtx)

	c.logger.Info("redis stream consumer started",
		zap.String("stream", c.config.Stream),
		zap.String("group", c.config.Group),
	)
	return nil
}

// Stop halts the read loop and waits for in-flight messages to finish
func (c *RedisStreamConsumer) Stop(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *RedisStreamConsumer) run(ctx context.Context) {
	defer c.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.config.Group,
			Consumer: c.config.Consumer,
			Streams:  []string{c.config.Stream, ">"},
			Count:    c.config.BatchSize,
			Block:    c.config.BlockTimeout,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			c.logger.Warn("stream read failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

func (c *RedisStreamConsumer) process(ctx context.Context, msg redis.XMessage) {
	payload, err := payloadFromStreamValues(msg.Values)
	if err != nil {
		// unreadable entries would loop forever as pending; ack and drop
		c.logger.Error("dropping unreadable stream entry",
			zap.String("id", msg.ID), zap.Error(err))
		c.ack(ctx, msg.ID)
		return
	}

	if err := c.handler.HandleMessage(ctx, payload); err != nil {
		c.logger.Error("message handling failed, leaving pending for redelivery",
			zap.String("id", msg.ID), zap.Error(err))
		return
	}

	c.ack(ctx, msg.ID)
}

func (c *RedisStreamConsumer) ack(ctx context.Context, id string) {
	if err := c.client.XAck(ctx, c.config.Stream, c.config.Group, id).Err(); err != nil {
		c.logger.Warn("ack failed", zap.String("id", id), zap.Error(err))
	}
}

// payloadFromStreamValues extracts the raw event document from a stream
// entry. Producers write the JSON under a "payload" field; entries without
// one are re-encoded wholesale so the decoder still sees every field.
func payloadFromStreamValues(values map[string]interface{}) ([]byte, error) {
	if v, ok := values["payload"]; ok {
		switch p := v.(type) {
		case string:
			return []byte(p), nil
		case []byte:
			return p, nil
		}
	}
	return json.Marshal(values)
}
