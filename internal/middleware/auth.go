package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/auth"
)

// Context keys for the authenticated identity.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
)

// RequireAuth rejects requests without a valid bearer token. On success the
// claims are stored on the gin context for GetUserID and GetUsername.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthenticated(c, "missing or malformed authorization header")
			return
		}

		claims, err := auth.ParseToken(token, secret)
		if errors.Is(err, auth.ErrTokenExpired) {
			abortUnauthenticated(c, "access token expired")
			return
		}
		if err != nil {
			abortUnauthenticated(c, "invalid access token")
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the identity when a valid token is present and lets
// the request through anonymously otherwise. A bad token is treated as no
// token.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := auth.ParseToken(token, secret); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// bearerToken reads "Authorization: Bearer <token>", falling back to the
// access_token query parameter for websocket clients that cannot set
// headers.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if q := c.Query("access_token"); q != "" {
			return q, true
		}
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyUsername, claims.Username)
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"statusCode": http.StatusUnauthorized,
		"message":    message,
		"errors":     []string{},
		"success":    false,
	})
}

// GetUserID returns the authenticated user, or uuid.Nil for anonymous
// requests.
func GetUserID(c *gin.Context) uuid.UUID {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func GetUsername(c *gin.Context) string {
	val, exists := c.Get(ContextKeyUsername)
	if !exists {
		return ""
	}
	name, ok := val.(string)
	if !ok {
		return ""
	}
	return name
}
