package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/storefront/backend/internal/application/trade"
)

// OrderHandler handles order placement, the admin order book and statistics
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// PlaceOrder godoc
// @ID           placeStorefrontOrder
// @Summary      Place an order
// @Description  Places an order from explicit items. The total must equal the sum of price times quantity.
// @Description  The client record is created or updated and the seller and shopper are notified.
// @Tags         storefront
// @Accept       json
// @Produce      json
// @Param        sellerId path string true "Seller ID" minlength(7) maxlength(7)
// @Param        phone path string true "Shopper phone"
// @Param        request body tradeapp.PlaceOrderRequest true "Order"
// @Success      201 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /client/{sellerId}/{phone}/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	phone, ok := h.shopperPhone(c)
	if !ok {
		return
	}

	var req tradeapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), sellerID, phone, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// ClientHistory godoc
// @ID           listStorefrontOrders
// @Summary      Shopper order history
// @Description  Orders of this shopper with this seller, newest first
// @Tags         storefront
// @Produce      json
// @Param        sellerId path string true "Seller ID" minlength(7) maxlength(7)
// @Param        phone path string true "Shopper phone"
// @Success      200 {object} APIResponse[[]tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /client/{sellerId}/{phone}/orders [get]
func (h *OrderHandler) ClientHistory(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	phone, ok := h.shopperPhone(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ClientHistory(c.Request.Context(), sellerID, phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// List godoc
// @ID           listOrders
// @Summary      List orders
// @Description  Filter by status and creation date. range=custom needs from and to.
// @Tags         orders
// @Produce      json
// @Param        status query string false "Order status" Enums(processing, processed, cancelled, refused)
// @Param        range query string false "Date range" Enums(all, today, week, month, custom)
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        sellerId query string false "Seller ID, required for super admins"
// @Success      200 {object} APIResponse[[]tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, err := h.orderService.List(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetByID godoc
// @ID           getOrder
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        sellerId query string false "Seller ID, required for super admins"
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), sellerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateStatus godoc
// @ID           updateOrderStatus
// @Summary      Change an order status
// @Description  The shopper is notified of the new status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        sellerId query string false "Seller ID, required for super admins"
// @Param        request body tradeapp.UpdateStatusRequest true "New status"
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req tradeapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), sellerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Stats godoc
// @ID           getOrderStats
// @Summary      Order statistics
// @Description  Order count and revenue by status over a date range
// @Tags         orders
// @Produce      json
// @Param        range query string false "Date range" Enums(all, today, week, month, custom)
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        sellerId query string false "Seller ID, required for super admins"
// @Success      200 {object} APIResponse[trade.OrderStats]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/stats [get]
func (h *OrderHandler) Stats(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	var filter tradeapp.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	stats, err := h.orderService.Stats(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
