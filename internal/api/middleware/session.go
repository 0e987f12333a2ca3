package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "cart_session"
	sessionKey    = "session_id"

	// Cookie lifetime in seconds; carts themselves expire independently
	sessionMaxAge = 60 * 60 * 24 * 7
)

// SessionMiddleware assigns a session ID to each client. The session
// exclusively owns its cart; all cart operations key off this ID.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(sessionCookie, sessionID, sessionMaxAge, "/", "", false, true)
		}

		c.Set(sessionKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session ID assigned to this request
func GetSessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return "", false
	}
	sessionID, ok := v.(string)
	return sessionID, ok
}
