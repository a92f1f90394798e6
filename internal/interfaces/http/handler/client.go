package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/storefront/backend/internal/application/partner"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// phonePathParam names the shopper phone segment of storefront and client routes
const phonePathParam = "phone"

// ClientHandler serves shoppers: the storefront landing and visit, and the
// admin client directory
type ClientHandler struct {
	BaseHandler
	clientService *partnerapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *partnerapp.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// shopperPhone reads the phone path segment, answering 400 when it is not a phone number
func (h *BaseHandler) shopperPhone(c *gin.Context) (string, bool) {
	phone := c.Param(phonePathParam)
	if !middleware.IsValidPhone(phone) {
		h.HandleError(c, partner.ErrInvalidPhone)
		return "", false
	}
	return phone, true
}

// Landing godoc
// @ID           getStorefrontLanding
// @Summary      Storefront landing
// @Description  Shop profile plus the shopper's client record, which is null on a first visit
// @Tags         storefront
// @Produce      json
// @Param        sellerId path string true "Seller ID" minlength(7) maxlength(7)
// @Param        phone path string true "Shopper phone"
// @Success      200 {object} APIResponse[partnerapp.LandingResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /client/{sellerId}/{phone} [get]
func (h *ClientHandler) Landing(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	phone, ok := h.shopperPhone(c)
	if !ok {
		return
	}

	landing, err := h.clientService.Landing(c.Request.Context(), sellerID, phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, landing)
}

// RecordVisit godoc
// @ID           recordStorefrontVisit
// @Summary      Record a visit
// @Description  Creates the client on first visit, otherwise merges the newer details
// @Tags         storefront
// @Accept       json
// @Produce      json
// @Param        sellerId path string true "Seller ID" minlength(7) maxlength(7)
// @Param        phone path string true "Shopper phone"
// @Param        request body partnerapp.VisitRequest false "Known shopper details"
// @Success      200 {object} APIResponse[partnerapp.ClientResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /client/{sellerId}/{phone}/visit [post]
func (h *ClientHandler) RecordVisit(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	phone, ok := h.shopperPhone(c)
	if !ok {
		return
	}

	var req partnerapp.VisitRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	client, err := h.clientService.RecordVisit(c.Request.Context(), sellerID, phone, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// List godoc
// @ID           listClients
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Param        search query string false "Name or phone fragment"
// @Param        sellerId query string false "Seller ID, required for super admins"
// @Success      200 {object} APIResponse[[]partnerapp.ClientResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	var filter partnerapp.ClientListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	clients, err := h.clientService.List(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, clients)
}

// Get godoc
// @ID           getClient
// @Summary      Get a client by phone
// @Tags         clients
// @Produce      json
// @Param        phone path string true "Client phone"
// @Param        sellerId query string false "Seller ID, required for super admins"
// @Success      200 {object} APIResponse[partnerapp.ClientResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/clients/{phone} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	phone, ok := h.shopperPhone(c)
	if !ok {
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), sellerID, phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}
