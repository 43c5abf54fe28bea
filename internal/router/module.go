package router

import "github.com/gin-gonic/gin"

// Module is one routable feature area (users, products, cart). Each module
// attaches its own routes and route-level middleware to the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
