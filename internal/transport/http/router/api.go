package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	mdw "dealspot/internal/transport/http/middleware"
)

// NewAPIEngine 用户端 engine：公共读 + 登录写，业务模块经 Register 挂到 /api/v1
func NewAPIEngine(l *zap.Logger, mods ...any) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		cors.Default(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	for _, m := range mods {
		Register(m)
	}

	api := r.Group("/api/v1")
	MountAllAPI(api)

	return r
}

// NewAdminEngine 审核端 engine，角色门禁在各模块的路由上
func NewAdminEngine(l *zap.Logger, mods ...any) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		cors.Default(),
		mdw.RateLimit(100, 200),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	for _, m := range mods {
		Register(m)
	}

	admin := r.Group("/admin/v1")
	MountAllAdmin(admin)

	return r
}
