package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satriadivo/goshop/internal/container"
	handlers "github.com/satriadivo/goshop/internal/interface/http"
	"github.com/satriadivo/goshop/internal/interface/middleware"
	"github.com/satriadivo/goshop/pkg/helpers"
)

// CartModule wires the shopping-cart routes. Every route requires an
// authenticated session; the handler resolves the user record before the
// service runs.

type CartModule struct {
	Handler *handlers.CartHandler
	JWT     *helpers.JWTManager
}

func NewCartModule(h *handlers.CartHandler, jwt *helpers.JWTManager) *CartModule {
	return &CartModule{Handler: h, JWT: jwt}
}

func (m *CartModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/cart", m.Handler.GetCart)
		auth.POST("/cart", m.Handler.AddProduct)
		auth.PUT("/cart/:productId", m.Handler.UpdateProduct)
		auth.DELETE("/cart/:productId", m.Handler.DeleteProduct)
		auth.POST("/cart/checkout", m.Handler.Checkout)
	}
}
