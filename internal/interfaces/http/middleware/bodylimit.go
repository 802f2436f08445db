package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/ledger/internal/interfaces/http/dto"
)

// BodyLimit rejects request bodies larger than maxBytes. A declared
// Content-Length over the limit is refused up front; chunked uploads are
// capped with MaxBytesReader so the handler's read fails at the limit.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeTooLarge, "request body exceeds the allowed size"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
