package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"dealspot/internal/core/apperr"
	"dealspot/internal/core/auth"
	"dealspot/internal/domain"
	resp "dealspot/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

// AuthJWT 解析 Bearer token；allowed 非空时限定角色集合
func AuthJWT(j *auth.JWTer, allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Error(c, apperr.CodeUnauthorized, "missing token")
			c.Abort()
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.Error(c, apperr.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		if len(allowed) > 0 && !roleIn(claims.Role, allowed) {
			resp.Error(c, apperr.CodeForbidden, "forbidden")
			c.Abort()
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, string(claims.Role))
		c.Next()
	}
}

func roleIn(r domain.Role, set []domain.Role) bool {
	for _, v := range set {
		if r == v {
			return true
		}
	}
	return false
}

// Identity 从上下文取已认证身份
func Identity(c *gin.Context) (string, domain.Role) {
	return c.GetString(KeyUserID), domain.Role(c.GetString(KeyRole))
}
