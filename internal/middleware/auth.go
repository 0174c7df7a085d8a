package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daybook-api/internal/constants"
	apierrors "github.com/yukikurage/daybook-api/internal/errors"
)

// TokenVerifier resolves a bearer token to a user ID
type TokenVerifier interface {
	Verify(token string) (uint64, error)
}

// RequireAuth checks for a valid "Authorization: Bearer <token>" header.
// The user ID always comes from the verified token.
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return authenticate(tokens, false)
}

// RequireMediaAuth behaves like RequireAuth but also accepts the token as a
// query parameter, for clients such as audio elements that cannot set headers.
func RequireMediaAuth(tokens TokenVerifier) gin.HandlerFunc {
	return authenticate(tokens, true)
}

func authenticate(tokens TokenVerifier, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok && allowQuery {
			token = c.Query(constants.StreamTokenQuery)
			ok = token != ""
		}
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
