package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// SellerHandler handles seller provisioning and the public shop profile
type SellerHandler struct {
	BaseHandler
	sellerService *identity.SellerService
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(sellerService *identity.SellerService) *SellerHandler {
	return &SellerHandler{
		sellerService: sellerService,
	}
}

// Provision godoc
// @ID           provisionSeller
// @Summary      Provision a seller
// @Description  Create a seller and its admin account in one transaction. The seller id is generated when omitted.
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Param        request body identity.ProvisionSellerRequest true "Seller and admin account"
// @Success      201 {object} APIResponse[identity.ProvisionResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/sellers [post]
func (h *SellerHandler) Provision(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	var req identity.ProvisionSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.sellerService.Provision(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List godoc
// @ID           listSellers
// @Summary      List sellers
// @Description  List every seller. Super admins only.
// @Tags         sellers
// @Produce      json
// @Success      200 {object} APIResponse[[]identity.SellerResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/sellers [get]
func (h *SellerHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	sellers, err := h.sellerService.List(c.Request.Context(), p)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sellers)
}

// Get godoc
// @ID           getSeller
// @Summary      Get a seller
// @Description  A seller admin may only read its own seller
// @Tags         sellers
// @Produce      json
// @Param        id path string true "Seller ID" minlength(7) maxlength(7)
// @Success      200 {object} APIResponse[identity.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/sellers/{id} [get]
func (h *SellerHandler) Get(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	seller, err := h.sellerService.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, seller)
}

// Update godoc
// @ID           updateSeller
// @Summary      Update a seller
// @Description  Partially update a seller, including its messaging credentials. Super admins only.
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Param        id path string true "Seller ID" minlength(7) maxlength(7)
// @Param        request body identity.UpdateSellerRequest true "Fields to change"
// @Success      200 {object} APIResponse[identity.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/sellers/{id} [put]
func (h *SellerHandler) Update(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	id, err := shared.ParseSellerID(c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req identity.UpdateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	seller, err := h.sellerService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, seller)
}

// GetPublic godoc
// @ID           getPublicShop
// @Summary      Public shop profile
// @Description  Shop name, logo and contact phone shown to shoppers
// @Tags         storefront
// @Produce      json
// @Param        sellerId path string true "Seller ID" minlength(7) maxlength(7)
// @Success      200 {object} APIResponse[identity.PublicSellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /shops/{sellerId} [get]
func (h *SellerHandler) GetPublic(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	shop, err := h.sellerService.GetPublic(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shop)
}
