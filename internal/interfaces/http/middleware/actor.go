package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nitrodesk/nitrodesk/internal/shared/constants"
)

const maxActorIDLength = 64

// Actor copies the X-Actor-ID header into the context. There is no
// authentication in front of the API, so the value is recorded as given.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(constants.HeaderXActorID))
		if len(actor) > maxActorIDLength {
			actor = actor[:maxActorIDLength]
		}
		if actor != "" {
			c.Set(constants.ContextKeyActorID, actor)
		}
		c.Next()
	}
}

// ActorID returns the actor set by Actor, or "".
func ActorID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyActorID)
}
