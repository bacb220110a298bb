package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sunfrisky19/model-meals-workouts/logging"
	"github.com/sunfrisky19/model-meals-workouts/services"
)

const (
	SessionHeader = "X-Diet-Session"
	SessionCookie = "diet_session"

	// SessionIDKey is the gin context key holding the caller's diet session id.
	SessionIDKey = "sessionID"
)

// DietSession resolves the caller's session token, if any. It never rejects a request:
// a missing or invalid token simply leaves the request without a session.
func DietSession(sessions *services.DietSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		sid, err := sessions.ParseToken(token)
		if err != nil {
			logging.Ctx(c.Request.Context()).Debug().Err(err).Msg("ignoring diet session token")
			c.Next()
			return
		}

		c.Set(SessionIDKey, sid)
		c.Request = c.Request.WithContext(services.WithSessionID(c.Request.Context(), sid))
		c.Next()
	}
}

// sessionToken checks the header, then a Bearer authorization header, then the cookie.
func sessionToken(c *gin.Context) string {
	if v := strings.TrimSpace(c.GetHeader(SessionHeader)); v != "" {
		return v
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if v, err := c.Cookie(SessionCookie); err == nil {
		return v
	}
	return ""
}

// SessionID returns the id DietSession stored, or "".
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
