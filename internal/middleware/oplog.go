package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/campuskit/admin-backend/internal/config"
	"github.com/campuskit/admin-backend/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// OpLog records the operation onto the redis op-log queue after the handler
// chain finishes. Recording is best-effort: a failed push is logged and
// dropped, it never affects the response.
func OpLog(rdb *redis.Client, resolver PrincipalResolver, businessType int, log zerolog.Logger) gin.HandlerFunc {
	oplog := log.With().Str("component", "oplog").Logger()

	return func(c *gin.Context) {
		c.Next()

		ctx := c.Request.Context()

		operName := "anonymous"
		if principal, err := resolver.CurrentPrincipal(ctx, GetSessionID(c)); err == nil && !principal.Anonymous() {
			operName = principal.Username
		}

		record := model.OpLog{
			Level:         model.OpLogLevelInfo,
			BusinessType:  businessType,
			RequestMethod: c.Request.Method,
			OperName:      operName,
			OperURL:       c.Request.URL.Path,
			OperIP:        c.ClientIP(),
			OperTime:      time.Now().UnixMilli(),
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			record.Level = model.OpLogLevelError
			record.ErrorDetail = c.Errors.String()
		}

		payload, err := json.Marshal(record)
		if err != nil {
			oplog.Error().Err(err).Msg("marshal op log")
			return
		}
		if err := rdb.RPush(ctx, config.Key.OpLogQueue(), payload).Err(); err != nil {
			oplog.Warn().Err(err).Msg("enqueue op log")
		}
	}
}
