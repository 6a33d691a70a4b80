// Package middleware provides HTTP middleware for the Gin framework.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/xup/internal/platform/logging"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLength bounds caller-supplied IDs so they cannot bloat logs.
const maxRequestIDLength = 128

// RequestID returns middleware that tags each request with an ID. A caller's
// X-Request-ID is kept unless it is empty or longer than maxRequestIDLength,
// in which case a UUID v4 replaces it. The ID is echoed in the response and
// attached to the request logger as request_id, which is how handlers and
// the service layer see it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}
