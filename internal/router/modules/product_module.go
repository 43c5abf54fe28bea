package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satriadivo/goshop/internal/container"
	handlers "github.com/satriadivo/goshop/internal/interface/http"
	"github.com/satriadivo/goshop/internal/interface/middleware"
	"github.com/satriadivo/goshop/pkg/helpers"
)

// ProductModule wires the catalog routes. Browsing and search are public;
// creating products requires an authenticated session.

type ProductModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
}

func NewProductModule(h *handlers.ProductHandler, jwt *helpers.JWTManager) *ProductModule {
	return &ProductModule{Handler: h, JWT: jwt}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/products", browseLimiter, m.Handler.List)
	rg.GET("/products/search", browseLimiter, m.Handler.Search)
	rg.GET("/products/:id", browseLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("/products", m.Handler.Create)
	}
}
