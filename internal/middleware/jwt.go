package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campus_hub/internal/session"
)

// Authenticator resolves a bearer token to the caller's session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (session.Session, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// RequireAuth ensures a valid token is present and stores the session in
// the context for downstream handlers.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		s, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			logrus.WithError(err).Debug("rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		session.Set(c, s)
		c.Next()
	}
}

// OptionalAuth attaches a session when a valid token is sent and otherwise
// lets the request through as anonymous. A bad token is still rejected.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		s, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		session.Set(c, s)
		c.Next()
	}
}

// QueryTokenAuth is RequireAuth for websocket upgrades, where browsers
// cannot set headers and the token travels as ?token=.
func QueryTokenAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = bearerToken(c)
		}
		if token == "" {
			logrus.Warn("WebSocket connection attempt: Missing token query parameter.")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
			return
		}
		s, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		session.Set(c, s)
		c.Next()
	}
}

// RequireRole must run after one of the auth middlewares. It only gates the
// route; row access is still decided by the store's policy checks.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := session.Require(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if !s.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
