package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIdHeader = "X-Request-Id"

// RequestId assigns every request an identifier, reusing the client's when it
// sends one, and echoes it on the response.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIdHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("request_id", rid)
		c.Header(requestIdHeader, rid)
		c.Next()
	}
}
