package ledger

import (
	"strings"

	"github.com/fintrack/ledger/internal/domain/shared"
)

// Field length limits
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxCurrencyLength    = 10
)

// DefaultCurrency is used when a ledger is created without an explicit currency
const DefaultCurrency = "KRW"

// Ledger-specific domain errors
var (
	ErrLedgerNotFound    = shared.NewDomainError("LEDGER_NOT_FOUND", "Ledger not found")
	ErrLedgerNameEmpty   = shared.NewDomainError("LEDGER_NAME_EMPTY", "Ledger name is required")
	ErrLedgerNameTooLong = shared.NewDomainError("LEDGER_NAME_TOO_LONG", "Ledger name must be 100 characters or less")
	ErrDescriptionLong   = shared.NewDomainError("LEDGER_DESCRIPTION_TOO_LONG", "Ledger description must be 500 characters or less")
	ErrCurrencyTooLong   = shared.NewDomainError("LEDGER_CURRENCY_TOO_LONG", "Currency code must be 10 characters or less")
	ErrNotLedgerOwner    = shared.NewDomainError("NOT_LEDGER_OWNER", "Only the ledger owner can perform this action")
)

// Ledger is a per-user book of account. A user may own several ledgers; at
// most one non-deleted ledger per user carries the default flag.
type Ledger struct {
	shared.BaseAggregateRoot
	UserID      int64  `gorm:"not null;index" json:"user_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	Currency    string `gorm:"size:10;not null;default:KRW" json:"currency"`
	IsDefault   bool   `gorm:"not null;default:false" json:"is_default"`
}

// TableName returns the database table name
func (Ledger) TableName() string {
	return "ledgers"
}

// NewLedger creates a new ledger for a user. The created event is emitted by
// the repository once the database has assigned an ID.
func NewLedger(userID int64, name, description, currency string, isDefault bool) (*Ledger, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	l := &Ledger{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Name:              strings.TrimSpace(name),
		Description:       description,
		Currency:          currency,
		IsDefault:         isDefault,
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Ledger) validate() error {
	if l.Name == "" {
		return ErrLedgerNameEmpty
	}
	if len([]rune(l.Name)) > MaxNameLength {
		return ErrLedgerNameTooLong
	}
	if len([]rune(l.Description)) > MaxDescriptionLength {
		return ErrDescriptionLong
	}
	if len(l.Currency) > MaxCurrencyLength {
		return ErrCurrencyTooLong
	}
	return nil
}

// EmitCreated records the creation event. Called by the repository after the
// insert so the event snapshot carries the database-assigned ID.
func (l *Ledger) EmitCreated() {
	l.AddDomainEvent(NewLedgerCreatedEvent(l))
}

// Update changes the ledger's mutable fields and records an update event
func (l *Ledger) Update(name, description, currency string) error {
	if currency == "" {
		currency = DefaultCurrency
	}
	l.Name = strings.TrimSpace(name)
	l.Description = description
	l.Currency = currency
	if err := l.validate(); err != nil {
		return err
	}
	l.AddDomainEvent(NewLedgerUpdatedEvent(l))
	return nil
}

// SetAsDefault marks this ledger as the user's default ledger
func (l *Ledger) SetAsDefault() {
	l.IsDefault = true
}

// UnsetDefault clears the default flag
func (l *Ledger) UnsetDefault() {
	l.IsDefault = false
}

// Delete logically deletes the ledger and records a deletion event
func (l *Ledger) Delete() {
	l.SoftDelete()
	l.AddDomainEvent(NewLedgerDeletedEvent(l))
}

// IsOwnedBy reports whether the given user owns this ledger
func (l *Ledger) IsOwnedBy(userID int64) bool {
	return l.UserID == userID
}
