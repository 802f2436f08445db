package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/ledger/internal/domain/shared"
	"github.com/fintrack/ledger/internal/interfaces/http/dto"
	"github.com/fintrack/ledger/internal/interfaces/http/middleware"
)

// BaseHandler is embedded by the concrete handlers for the shared response
// helpers.
type BaseHandler struct{}

func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes an error envelope with an explicit status code.
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	fail(c, statusCode, code, message)
}

func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	fail(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// HandleError maps a domain error onto the status its code implies. Anything
// that is not a domain error becomes a generic 500 so driver and SQL details
// never reach the client.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		fail(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}
	fail(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

func fail(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID(c)))
}

// requestID prefers the ID minted by the RequestID middleware, falling back
// to the inbound header when the middleware did not run.
func requestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// getUserID extracts the authenticated user's id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, error) {
	userID, ok := middleware.GetJWTUserID(c)
	if !ok {
		return 0, errors.New("user ID not found in context")
	}
	return userID, nil
}

// bindID binds the :id path parameter as a positive int64.
func bindID(c *gin.Context) (int64, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		return 0, false
	}
	return req.ID, true
}
