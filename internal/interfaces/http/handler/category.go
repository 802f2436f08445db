package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/fintrack/ledger/internal/application/ledger"
	"github.com/fintrack/ledger/internal/interfaces/http/middleware"
)

// CategoryHandler handles category API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *ledgerapp.CategoryService
}

func NewCategoryHandler(categoryService *ledgerapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create handles POST /ledgers/:id/categories
func (h *CategoryHandler) Create(c *gin.Context) {
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

	var req ledgerapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.categoryService.Create(c.Request.Context(), userID, ledgerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List handles GET /ledgers/:id/categories with an optional type filter
func (h *CategoryHandler) List(c *gin.Context) {
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

	resp, err := h.categoryService.List(c.Request.Context(), userID, ledgerID, c.Query("type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update handles PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req ledgerapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.categoryService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /categories/:id, cascading to direct children
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListChildren handles GET /categories/:id/children
func (h *CategoryHandler) ListChildren(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	resp, err := h.categoryService.ListChildren(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
