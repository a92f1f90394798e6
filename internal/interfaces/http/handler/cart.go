package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/storefront/backend/internal/application/trade"
)

// CartItemRequest adds one product to the cart
type CartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// CartQuantityRequest sets a cart line quantity. Zero removes the line.
type CartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0,max=999"`
}

// CartHandler handles the shopper cart kept server side per seller and phone
type CartHandler struct {
	BaseHandler
	cartService *tradeapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *tradeapp.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// Get godoc
// @ID           getCart
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Param        sellerId path string true "Seller ID" minlength(7) maxlength(7)
// @Param        phone path string true "Shopper phone"
// @Success      200 {object} APIResponse[tradeapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /client/{sellerId}/{phone}/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	phone, ok := h.shopperPhone(c)
	if !ok {
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), sellerID, phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem godoc
// @ID           addCartItem
// @Summary      Add a product to the cart
// @Description  Adds one unit at the product's current effective price. Unavailable products are refused.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        sellerId path string true "Seller ID" minlength(7) maxlength(7)
// @Param        phone path string true "Shopper phone"
// @Param        request body CartItemRequest true "Product"
// @Success      200 {object} APIResponse[tradeapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /client/{sellerId}/{phone}/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	phone, ok := h.shopperPhone(c)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), sellerID, phone, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// UpdateQuantity godoc
// @ID           updateCartItem
// @Summary      Set a cart line quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        sellerId path string true "Seller ID" minlength(7) maxlength(7)
// @Param        phone path string true "Shopper phone"
// @Param        productId path string true "Product ID" format(uuid)
// @Param        request body CartQuantityRequest true "Quantity"
// @Success      200 {object} APIResponse[tradeapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /client/{sellerId}/{phone}/cart/items/{productId} [put]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	phone, ok := h.shopperPhone(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), sellerID, phone, productID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem godoc
// @ID           removeCartItem
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Param        sellerId path string true "Seller ID" minlength(7) maxlength(7)
// @Param        phone path string true "Shopper phone"
// @Param        productId path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /client/{sellerId}/{phone}/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	phone, ok := h.shopperPhone(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), sellerID, phone, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Clear godoc
// @ID           clearCart
// @Summary      Empty the cart
// @Tags         cart
// @Param        sellerId path string true "Seller ID" minlength(7) maxlength(7)
// @Param        phone path string true "Shopper phone"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /client/{sellerId}/{phone}/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	phone, ok := h.shopperPhone(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), sellerID, phone); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Checkout godoc
// @ID           checkoutCart
// @Summary      Order the cart
// @Description  Places an order from the cart lines at the prices locked when they were added, then empties the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        sellerId path string true "Seller ID" minlength(7) maxlength(7)
// @Param        phone path string true "Shopper phone"
// @Param        request body tradeapp.CheckoutRequest true "Delivery details"
// @Success      201 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /client/{sellerId}/{phone}/cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	phone, ok := h.shopperPhone(c)
	if !ok {
		return
	}

	var req tradeapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.cartService.Checkout(c.Request.Context(), sellerID, phone, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}
