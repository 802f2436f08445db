package transaction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/shared"
	"github.com/fintrack/ledger/internal/domain/transaction"
)

// Transaction lifecycle event types produced by the remote transaction service
const (
	EventTransactionCreated = "TRANSACTION_CREATED"
	EventTransactionUpdated = "TRANSACTION_UPDATED"
	EventTransactionDeleted = "TRANSACTION_DELETED"
)

// dateLayout is the ISO date encoding accepted in payloads
const dateLayout = "2006-01-02"

// SyncService reconciles the local mirrored transaction store against
// lifecycle events emitted by the remote transaction service. Delivery is
// at-least-once and unordered, so every apply path is an idempotent
// existence-checked upsert. Already-applied events are logged no-ops, never
// errors; any other failure propagates so the transport redelivers.
type SyncService struct {
	repo     transaction.TransactionRepository
	dedup    shared.IdempotencyStore
	dedupTTL time.Duration
	logger   *zap.Logger
}

// NewSyncService creates a sync service without event-id deduplication
func NewSyncService(repo transaction.TransactionRepository, logger *zap.Logger) *SyncService {
	return &SyncService{
		repo:     repo,
		dedupTTL: shared.DefaultIdempotencyConfig().TTL,
		logger:   logger,
	}
}

// WithDedup enables best-effort event-id deduplication. A failing store is
// logged and ignored: correctness rests on the existence checks, the store
// only saves redundant work.
func (s *SyncService) WithDedup(store shared.IdempotencyStore, ttl time.Duration) *SyncService {
	s.dedup = store
	if ttl > 0 {
		s.dedupTTL = ttl
	}
	return s
}

// HandleMessage decodes a raw broker message and applies it. Numbers are kept
// as json.Number so int64 transaction ids survive without float rounding.
func (s *SyncService) HandleMessage(ctx context.Context, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var event map[string]any
	if err := dec.Decode(&event); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformedPayload, err)
	}
	return s.HandleEvent(ctx, event)
}

// HandleEvent applies one transaction lifecycle event. Unknown event types
// are logged and acknowledged; they are not this consumer's concern.
func (s *SyncService) HandleEvent(ctx context.Context, event map[string]any) error {
	eventType, _ := event["eventType"].(string)

	if skip := s.alreadyProcessed(ctx, event); skip {
		return nil
	}

	payload := payloadOf(event)

	switch eventType {
	case EventTransactionCreated:
		return s.applyCreated(ctx, payload)
	case EventTransactionUpdated:
		return s.applyUpdated(ctx, payload)
	case EventTransactionDeleted:
		return s.applyDeleted(ctx, payload)
	default:
		s.logger.Warn("ignoring unknown transaction event type",
			zap.String("event_type", eventType))
		return nil
	}
}

// alreadyProcessed consults the optional dedup store. Store errors are
// swallowed: the existence checks below stay correct without it.
func (s *SyncService) alreadyProcessed(ctx context.Context, event map[string]any) bool {
	if s.dedup == nil {
		return false
	}
	eventID, _ := event["eventId"].(string)
	if eventID == "" {
		return false
	}
	fresh, err := s.dedup.MarkProcessed(ctx, eventID, s.dedupTTL)
	if err != nil {
		s.logger.Warn("idempotency store unavailable, relying on existence checks",
			zap.String("event_id", eventID), zap.Error(err))
		return false
	}
	if !fresh {
		s.logger.Info("skipping already-processed event",
			zap.String("event_id", eventID))
	}
	return !fresh
}

func (s *SyncService) applyCreated(ctx context.Context, payload map[string]any) error {
	f, err := decodeRemoteFields(payload)
	if err != nil {
		return err
	}

	exists, err := s.repo.ExistsByTransactionID(ctx, f.transactionID)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Info("transaction already mirrored, skipping duplicate create",
			zap.Int64("transaction_id", f.transactionID))
		return nil
	}

	mirror := transaction.NewMirror(f.transactionID, f.ledgerID, f.txType,
		f.amount, f.description, f.date, f.memo)
	if err := s.repo.Create(ctx, mirror); err != nil {
		return err
	}
	s.logger.Info("mirrored transaction created",
		zap.Int64("transaction_id", f.transactionID),
		zap.Int64("ledger_id", f.ledgerID))
	return nil
}

func (s *SyncService) applyUpdated(ctx context.Context, payload map[string]any) error {
	f, err := decodeRemoteFields(payload)
	if err != nil {
		return err
	}

	t, err := s.repo.FindByTransactionID(ctx, f.transactionID)
	if errors.Is(err, transaction.ErrTransactionNotFound) {
		// Missed or reordered create: self-heal by creating the mirror from
		// the update payload. Applies equally when a late update trails a
		// delete, which resurrects the record.
		s.logger.Warn("update for unknown transaction, creating mirror",
			zap.Int64("transaction_id", f.transactionID))
		mirror := transaction.NewMirror(f.transactionID, f.ledgerID, f.txType,
			f.amount, f.description, f.date, f.memo)
		return s.repo.Create(ctx, mirror)
	}
	if err != nil {
		return err
	}

	t.ApplyRemote(f.ledgerID, f.txType, f.amount, f.description, f.date, f.memo)
	if err := s.repo.Update(ctx, t); err != nil {
		return err
	}
	s.logger.Info("mirrored transaction updated",
		zap.Int64("transaction_id", f.transactionID))
	return nil
}

func (s *SyncService) applyDeleted(ctx context.Context, payload map[string]any) error {
	transactionID, err := extractInt64(payload, "transactionId")
	if err != nil {
		return err
	}

	t, err := s.repo.FindByTransactionID(ctx, transactionID)
	if errors.Is(err, transaction.ErrTransactionNotFound) {
		s.logger.Info("delete for unknown or already-deleted transaction, skipping",
			zap.Int64("transaction_id", transactionID))
		return nil
	}
	if err != nil {
		return err
	}

	t.SoftDelete()
	if err := s.repo.Update(ctx, t); err != nil {
		return err
	}
	s.logger.Info("mirrored transaction deleted",
		zap.Int64("transaction_id", transactionID))
	return nil
}

// payloadOf returns the nested payload map when present; some producers nest
// the domain fields under "payload", others flatten them into the envelope.
func payloadOf(event map[string]any) map[string]any {
	if p, ok := event["payload"].(map[string]any); ok {
		return p
	}
	return event
}

// remoteFields are the remote-owned fields carried by create/update payloads
type remoteFields struct {
	transactionID int64
	ledgerID      int64
	txType        ledger.TransactionType
	amount        decimal.Decimal
	description   string
	date          time.Time
	memo          string
}

func decodeRemoteFields(payload map[string]any) (*remoteFields, error) {
	transactionID, err := extractInt64(payload, "transactionId")
	if err != nil {
		return nil, err
	}
	ledgerID, err := extractInt64(payload, "ledgerId")
	if err != nil {
		return nil, err
	}
	txType, err := extractType(payload, "type")
	if err != nil {
		return nil, err
	}
	amount, err := extractDecimal(payload, "amount")
	if err != nil {
		return nil, err
	}
	date, err := extractDate(payload, "transactionDate")
	if err != nil {
		return nil, err
	}
	return &remoteFields{
		transactionID: transactionID,
		ledgerID:      ledgerID,
		txType:        txType,
		amount:        amount,
		description:   extractString(payload, "description"),
		date:          date,
		memo:          extractString(payload, "memo"),
	}, nil
}

func malformed(field string, value any) error {
	return fmt.Errorf("%w: field %q has unsupported encoding %T (%v)",
		shared.ErrMalformedPayload, field, value, value)
}

// extractInt64 accepts a numeric literal or a decimal string
func extractInt64(payload map[string]any, key string) (int64, error) {
	value, ok := payload[key]
	if !ok || value == nil {
		return 0, malformed(key, value)
	}
	switch v := value.(type) {
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, malformed(key, value)
		}
		return i, nil
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, malformed(key, value)
		}
		return i, nil
	default:
		return 0, malformed(key, value)
	}
}

// extractDecimal accepts a numeric literal or a numeric string. A missing or
// null monetary value defaults to zero rather than failing.
func extractDecimal(payload map[string]any, key string) (decimal.Decimal, error) {
	value, ok := payload[key]
	if !ok || value == nil {
		return decimal.Zero, nil
	}
	switch v := value.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, malformed(key, value)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, malformed(key, value)
		}
		return d, nil
	default:
		return decimal.Zero, malformed(key, value)
	}
}

// extractDate accepts an ISO "2006-01-02" string or a [year, month, day]
// array (the remote serializer emits either, depending on its configuration)
func extractDate(payload map[string]any, key string) (time.Time, error) {
	value, ok := payload[key]
	if !ok || value == nil {
		return time.Time{}, malformed(key, value)
	}
	switch v := value.(type) {
	case string:
		t, err := time.Parse(dateLayout, strings.TrimSpace(v))
		if err != nil {
			return time.Time{}, malformed(key, value)
		}
		return t, nil
	case []any:
		if len(v) < 3 {
			return time.Time{}, malformed(key, value)
		}
		parts := make([]int, 3)
		for i := 0; i < 3; i++ {
			n, err := asInt(v[i])
			if err != nil {
				return time.Time{}, malformed(key, value)
			}
			parts[i] = n
		}
		return time.Date(parts[0], time.Month(parts[1]), parts[2], 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, malformed(key, value)
	}
}

func asInt(value any) (int, error) {
	switch v := value.(type) {
	case json.Number:
		i, err := v.Int64()
		return int(i), err
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("not an integer: %T", value)
	}
}

func extractType(payload map[string]any, key string) (ledger.TransactionType, error) {
	value, ok := payload[key]
	if !ok || value == nil {
		return "", malformed(key, value)
	}
	s, ok := value.(string)
	if !ok {
		return "", malformed(key, value)
	}
	t := ledger.TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", malformed(key, value)
	}
	return t, nil
}

func extractString(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}
