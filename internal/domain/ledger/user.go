package ledger

import (
	"time"

	"github.com/fintrack/ledger/internal/domain/shared"
)

// ErrUserNotFound is returned when a referenced user does not exist
var ErrUserNotFound = shared.NewDomainError("USER_NOT_FOUND", "User not found")

// User is a read-only reference to the user directory mirrored from the
// identity service. This service only checks existence; it never mutates
// user rows.
type User struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"size:100" json:"username"`
	IsDeleted bool   `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}
