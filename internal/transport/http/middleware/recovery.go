package middleware

import (
	"github.com/gin-gonic/gin"

	"dealspot/internal/core/apperr"
	resp "dealspot/internal/transport/http/response"
)

func SimpleRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				resp.Error(c, apperr.CodeInternal, "")
				c.Abort()
			}
		}()
		c.Next()
	}
}
