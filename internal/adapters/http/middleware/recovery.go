package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/xup/internal/adapters/http/dto"
	"github.com/jsamuelsen/xup/internal/platform/logging"
	"github.com/jsamuelsen/xup/internal/platform/telemetry"
)

// Recovery returns middleware that recovers from panics.
// On panic, it logs the value and stack at ERROR level and returns a 500
// with the standard error envelope, including the trace ID when one exists.
//
// Apply it first so it covers every later middleware.
func Recovery(fallback *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			logger, ok := logging.LoggerFromContext(c.Request.Context())
			if !ok {
				logger = fallback
			}

			traceID := telemetry.TraceID(c.Request.Context())

			logger.Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			errResp := dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred").
				WithTraceID(traceID)

			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, errResp)
			} else {
				c.Abort()
			}
		}()

		c.Next()
	}
}
