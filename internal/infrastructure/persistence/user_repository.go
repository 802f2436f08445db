package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/fintrack/ledger/internal/domain/ledger"
)

// GormUserRepository reads the mirrored user directory. Users are owned by
// the identity service; this service only checks existence before sharing
// a ledger with someone.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Exists reports whether a non-deleted user is present in the mirror.
func (r *GormUserRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ledger.User{}).
		Where("id = ? AND is_deleted = ?", userID, false).
		Count(&count).Error
	return count > 0, err
}

var _ ledger.UserRepository = (*GormUserRepository)(nil)
