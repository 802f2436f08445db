package event

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/sharing"
)

func TestOutboxPublisher_PublishWithTx(t *testing.T) {
	db, mock := newMockGorm(t)
	serializer := NewEventSerializer()
	RegisterAllEvents(serializer)
	publisher := NewOutboxPublisher(serializer, DefaultTopicResolver())

	l, err := ledger.NewLedger(1, "book", "", "KRW", true)
	require.NoError(t, err)
	l.ID = 3
	event := ledger.NewLedgerCreatedEvent(l)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "outbox_events"`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))
	mock.ExpectCommit()

	tx := db.Begin()
	err = publisher.PublishWithTx(context.Background(), tx, event)
	require.NoError(t, err)
	require.NoError(t, tx.Commit().Error)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxPublisher_PublishWithTx_NoEvents(t *testing.T) {
	db, _ := newMockGorm(t)
	publisher := NewOutboxPublisher(NewEventSerializer(), nil)

	err := publisher.PublishWithTx(context.Background(), db)

	require.NoError(t, err)
}

func TestOutboxPublisher_SaveEvents_RejectsNonGormTx(t *testing.T) {
	publisher := NewOutboxPublisher(NewEventSerializer(), nil)

	base := sharing.NewLedgerShareCreatedEvent(&sharing.LedgerShare{})
	err := publisher.SaveEvents(context.Background(), "not a tx", base)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be a *gorm.DB")
}
