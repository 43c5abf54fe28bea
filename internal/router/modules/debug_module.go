package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satriadivo/goshop/internal/container"
	"github.com/satriadivo/goshop/internal/interface/middleware"
)

// DebugModule exposes process counters via expvar. The endpoint is public
// but rate limited per address; private addresses bypass the limit so local
// scrapers are never throttled.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(
		container.GetRedis(), 60, time.Minute,
		middleware.KeyByIP(), middleware.AllowPrivateIP(),
	)
	rg.GET("/debug/vars", limiter, gin.WrapH(expvar.Handler()))
}
