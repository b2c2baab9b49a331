package middleware

import (
	"net/http"
	"strings"

	"taskmanager/internal/auth"
	"taskmanager/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const UserIDKey = "userID"

type TokenParser interface {
	ParseToken(tokenStr string) (*auth.Claims, error)
}

// JWTAuthMiddleware guards a route group with a bearer token and stores the
// subject under UserIDKey as a uuid.UUID.
func JWTAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		tokenStr, ok := BearerToken(authHeader)
		if !ok {
			abortUnauthorized(c, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			abortUnauthorized(c, "Invalid user ID in token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// BearerToken splits "Bearer <token>".
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// CurrentUserID returns the identity set by JWTAuthMiddleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorEnvelope{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	})
}
