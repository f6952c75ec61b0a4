package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionKey = "session"

// Session identifies the signed-in business account for one request.
type Session struct {
	UserID  uuid.UUID
	Purpose string
}

// CurrentSession returns the session set by the auth middleware.
func CurrentSession(c *gin.Context) (Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}

// SetSession is used by tests and by handlers that authenticate inline.
func SetSession(c *gin.Context, s Session) {
	c.Set(sessionKey, s)
}
