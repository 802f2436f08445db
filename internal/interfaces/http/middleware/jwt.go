package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fintrack/ledger/internal/infrastructure/auth"
	"github.com/fintrack/ledger/internal/infrastructure/logger"
	"github.com/fintrack/ledger/internal/interfaces/http/dto"
)

const (
	JWTUserIDKey  = "jwt_user_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig configures the auth middleware. SkipPaths bypass
// authentication entirely (health probes, metrics scrapes).
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	SkipPaths  []string
	Logger     *zap.Logger
}

// JWTAuthMiddleware wires the default skip list: the operational endpoints
// that monitoring hits without credentials.
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/health", "/healthz", "/ready", "/metrics"},
	})
}

// JWTAuthMiddlewareWithConfig validates the bearer token on every request
// outside the skip list. On success the numeric user id lands in the gin
// context and the request-scoped logger is tagged with it.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		token, ok := strings.CutPrefix(header, BearerPrefix)
		if !ok {
			abortUnauthorized(c, "Authorization header must use Bearer scheme")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("token validation failed",
					zap.String("path", path), zap.Error(err))
			}
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		userID, err := claims.GetUserID()
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		c.Set(JWTUserIDKey, userID)

		ctx, _ := logger.WithUserID(c.Request.Context(),
			logger.FromContext(c.Request.Context()), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}

// GetJWTUserID returns the authenticated user's id set by the middleware.
func GetJWTUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(JWTUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
