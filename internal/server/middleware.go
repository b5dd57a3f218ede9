package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// identityHeader carries the authenticated identity, set by the upstream
// gateway. Authentication itself happens outside this service.
const identityHeader = "X-User-ID"

const identityKey = "identity"

// requireIdentity rejects requests without an identity header and stashes
// the identity in the gin context for handlers.
func requireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(identityHeader)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "identity header is required",
			})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// identity returns the authenticated identity for the request.
func identity(c *gin.Context) string {
	return c.GetString(identityKey)
}
