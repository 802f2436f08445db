package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/fintrack/ledger/internal/application/ledger"
	"github.com/fintrack/ledger/internal/interfaces/http/middleware"
)

// LedgerHandler handles ledger API endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *ledgerapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// Create handles POST /ledgers
func (h *LedgerHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ledgerapp.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.ledgerService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get handles GET /ledgers/:id
func (h *LedgerHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid ledger ID")
		return
	}

	resp, err := h.ledgerService.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /ledgers
func (h *LedgerHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.ledgerService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update handles PUT /ledgers/:id
func (h *LedgerHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid ledger ID")
		return
	}

	var req ledgerapp.UpdateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.ledgerService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetDefault handles PUT /ledgers/:id/default
func (h *LedgerHandler) SetDefault(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid ledger ID")
		return
	}

	resp, err := h.ledgerService.SetDefault(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /ledgers/:id
func (h *LedgerHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid ledger ID")
		return
	}

	if err := h.ledgerService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetSummary handles GET /ledgers/:id/summary
func (h *LedgerHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid ledger ID")
		return
	}

	var period ledgerapp.SummaryPeriod
	if err := c.ShouldBindQuery(&period); err != nil {
		h.BadRequest(c, "Invalid period parameters")
		return
	}

	resp, err := h.ledgerService.GetSummary(c.Request.Context(), userID, id, period)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetTotalSummary handles GET /ledgers/summary, aggregating every ledger the
// caller can read (owned plus accepted shares).
func (h *LedgerHandler) GetTotalSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var period ledgerapp.SummaryPeriod
	if err := c.ShouldBindQuery(&period); err != nil {
		h.BadRequest(c, "Invalid period parameters")
		return
	}

	resp, err := h.ledgerService.GetTotalSummary(c.Request.Context(), userID, period)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
