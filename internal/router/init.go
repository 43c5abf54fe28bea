package router

import (
	"github.com/satriadivo/goshop/internal/application"
	"github.com/satriadivo/goshop/internal/cache"
	"github.com/satriadivo/goshop/internal/container"
	"github.com/satriadivo/goshop/internal/infrastructure/mongodb"
	handlers "github.com/satriadivo/goshop/internal/interface/http"
	"github.com/satriadivo/goshop/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	db := container.GetMongo()
	logger := container.GetLogger()

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	cartCache := cache.NewRedisCartCache(container.GetRedis())

	userSvc := application.NewUserService(
		userRepo,
		container.GetJWT(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		logger,
		container.GetRabbitPub(),
		cfg.DefaultAddress,
		cfg.DefaultWalletBalance,
		cfg.MailSendEnabled,
	)
	productSvc := application.NewProductService(productRepo, logger, container.GetES(), cfg.ESProductsIndex)
	cartSvc := application.NewCartService(
		cartRepo,
		productRepo,
		userRepo,
		cartCache,
		container.GetRabbitPub(),
		logger,
		cfg.DefaultAddress,
		cfg.MailSendEnabled,
	)

	userHandler := handlers.NewUserHandler(userSvc, container.GetJWT(), logger, cfg.CookieDomain, cfg.CookieSecure)
	productHandler := handlers.NewProductHandler(productSvc, logger)
	cartHandler := handlers.NewCartHandler(cartSvc, userSvc, logger)

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewProductModule(productHandler, container.GetJWT()))
	r.Add(modules.NewCartModule(cartHandler, container.GetJWT()))
	r.Add(modules.NewDebugModule())
}
