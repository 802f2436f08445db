package handler

import (
	"github.com/gin-gonic/gin"

	sharingapp "github.com/fintrack/ledger/internal/application/sharing"
	"github.com/fintrack/ledger/internal/interfaces/http/middleware"
)

// ShareHandler handles ledger share API endpoints
type ShareHandler struct {
	BaseHandler
	shareService *sharingapp.ShareService
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(shareService *sharingapp.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

// Create handles POST /shares
func (h *ShareHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req sharingapp.CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.shareService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Accept handles PUT /shares/:id/accept
func (h *ShareHandler) Accept(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid share ID")
		return
	}

	resp, err := h.shareService.Accept(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Reject handles PUT /shares/:id/reject
func (h *ShareHandler) Reject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid share ID")
		return
	}

	var req sharingapp.RejectShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.shareService.Reject(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /shares/:id; either party may revoke
func (h *ShareHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid share ID")
		return
	}

	if err := h.shareService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListByLedger handles GET /ledgers/:id/shares (owner only)
func (h *ShareHandler) ListByLedger(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ledgerID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid ledger ID")
		return
	}

	resp, err := h.shareService.ListByLedger(c.Request.Context(), userID, ledgerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListSharedWithMe handles GET /shares/received
func (h *ShareHandler) ListSharedWithMe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.shareService.ListSharedWithMe(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListPending handles GET /shares/pending (invitations awaiting the caller)
func (h *ShareHandler) ListPending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.shareService.ListPending(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListSent handles GET /shares/sent (invitations the caller issued)
func (h *ShareHandler) ListSent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.shareService.ListSent(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
