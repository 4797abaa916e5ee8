package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"user-directory/pkg/logger"
)

// RequestIDHeader is the header the request id is echoed back in.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a correlation id, carried in the request
// context for logging and echoed in the response headers. An id supplied
// by the caller is reused.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()
	}
}
