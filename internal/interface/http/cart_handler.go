package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/satriadivo/goshop/internal/application"
	"github.com/satriadivo/goshop/internal/domain/entity"
	"github.com/satriadivo/goshop/pkg/response"
	"github.com/satriadivo/goshop/pkg/validation"
)

type CartHandler struct {
	Svc    *application.CartService
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewCartHandler(svc *application.CartService, users *application.UserService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Svc: svc, Users: users, Logger: logger}
}

type addProductRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// currentUser resolves the authenticated user record for the request; the
// cart service operates on resolved users, never raw ids.
func (h *CartHandler) currentUser(c *gin.Context) (*entity.User, bool) {
	uid := c.GetString("userID")
	u, err := h.Users.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "user not found", nil)
		return nil, false
	}
	return u, true
}

func (h *CartHandler) GetCart(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	cart, err := h.Svc.GetCartByUser(c.Request.Context(), u)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart, "cart", nil)
}

func (h *CartHandler) AddProduct(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cart, err := h.Svc.AddProductToCart(c.Request.Context(), u, req.ProductID, req.Quantity)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cart, "product added to cart", nil)
}

func (h *CartHandler) UpdateProduct(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cart, err := h.Svc.UpdateProductInCart(c.Request.Context(), u, c.Param("productId"), req.Quantity)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart, "cart updated", nil)
}

func (h *CartHandler) DeleteProduct(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	cart, err := h.Svc.DeleteProductFromCart(c.Request.Context(), u, c.Param("productId"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart, "product removed from cart", nil)
}

func (h *CartHandler) Checkout(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	cart, err := h.Svc.Checkout(c.Request.Context(), u)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"cart":         cart,
		"wallet_money": u.WalletMoney,
	}, "checkout successful", nil)
}
