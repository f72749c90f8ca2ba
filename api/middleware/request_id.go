package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docbrief/pkg/logger"
)

// RequestIDHeader carries the request ID on both request and response.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an ID, echoes it in the response
// header, and stashes a request-scoped logger in the request context.
func RequestID(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		reqLog := log.With(logger.String("request_id", id))
		ctx := logger.NewContext(c.Request.Context(), reqLog)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
