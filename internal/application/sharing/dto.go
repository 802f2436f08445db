package sharing

import (
	"time"

	"github.com/fintrack/ledger/internal/domain/sharing"
)

// CreateShareRequest represents a request to invite a user to a ledger
type CreateShareRequest struct {
	LedgerID     int64  `json:"ledger_id" binding:"required"`
	SharedUserID int64  `json:"shared_user_id" binding:"required"`
	Permission   string `json:"permission" binding:"omitempty,oneof=READ_ONLY READ_WRITE"`
}

// RejectShareRequest represents a request to reject a pending invitation
type RejectShareRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ShareResponse represents a ledger share in API responses
type ShareResponse struct {
	ID              int64      `json:"id"`
	LedgerID        int64      `json:"ledger_id"`
	OwnerID         int64      `json:"owner_id"`
	SharedUserID    int64      `json:"shared_user_id"`
	Permission      string     `json:"permission"`
	Status          string     `json:"status"`
	SharedAt        time.Time  `json:"shared_at"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToShareResponse converts a domain LedgerShare to ShareResponse
func ToShareResponse(s *sharing.LedgerShare) ShareResponse {
	return ShareResponse{
		ID:              s.GetID(),
		LedgerID:        s.LedgerID,
		OwnerID:         s.OwnerID,
		SharedUserID:    s.SharedUserID,
		Permission:      s.Permission.String(),
		Status:          s.Status.String(),
		SharedAt:        s.SharedAt,
		AcceptedAt:      s.AcceptedAt,
		RejectionReason: s.RejectionReason,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
