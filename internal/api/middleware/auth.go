// backend-go/internal/api/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UsernameKey is the context key the auth middleware stores the caller's
// username under. It is empty for API-key callers from the static list.
const UsernameKey = "auth.username"

// Verifier checks bearer credentials. API keys are tried first because they
// are cheap to reject.
type Verifier interface {
	VerifyAPIKey(key string) bool
	VerifyToken(token string) (string, error)
}

// RequireAuth rejects requests that carry neither a valid API key nor a valid
// bearer token in the Authorization header.
func RequireAuth(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		credential, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || credential == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer credentials"})
			return
		}

		if verifier.VerifyAPIKey(credential) {
			c.Next()
			return
		}

		username, err := verifier.VerifyToken(credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired credentials"})
			return
		}

		c.Set(UsernameKey, username)
		c.Next()
	}
}
