package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeySessionID is the Gin context key for the opaque session ID.
const ContextKeySessionID = "session_id"

// SessionCookie ensures every request carries an opaque session identifier.
// An existing cookie is reused; otherwise a fresh UUID is issued. The ID
// itself carries no identity — identity only exists once the login service
// binds a principal to it server-side.
func SessionCookie(cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || sid == "" {
			sid = uuid.New().String()
			c.SetCookie(cookieName, sid, int(ttl.Seconds()), "/", "", false, true)
		}
		c.Set(ContextKeySessionID, sid)
		c.Next()
	}
}

// GetSessionID retrieves the session ID from the Gin context. Empty when the
// SessionCookie middleware did not run.
func GetSessionID(c *gin.Context) string {
	return c.GetString(ContextKeySessionID)
}
