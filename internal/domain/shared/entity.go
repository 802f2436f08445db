package shared

import "time"

// Entity is implemented by every persisted domain object.
type Entity interface {
	GetID() int64
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
	Deleted() bool
}

// BaseEntity carries the fields every entity shares. IDs are
// database-assigned, so a zero ID means the entity has not been persisted
// yet. Deletion is always logical: rows are flagged, never removed.
type BaseEntity struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	IsDeleted bool  `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{CreatedAt: now, UpdatedAt: now}
}

func (e *BaseEntity) GetID() int64 {
	return e.ID
}

func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

func (e *BaseEntity) Deleted() bool {
	return e.IsDeleted
}

// SoftDelete flags the entity as deleted and touches the update timestamp.
func (e *BaseEntity) SoftDelete() {
	e.IsDeleted = true
	e.UpdatedAt = time.Now()
}
