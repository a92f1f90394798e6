package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/application/notification"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// RelayMessageRequest is a message the dashboard asks to send to a shopper
type RelayMessageRequest struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
}

// RelayHandler forwards dashboard messages to the messaging gateway
type RelayHandler struct {
	BaseHandler
	relayService *notification.RelayService
}

// NewRelayHandler creates a new RelayHandler
func NewRelayHandler(relayService *notification.RelayService) *RelayHandler {
	return &RelayHandler{
		relayService: relayService,
	}
}

// Send godoc
// @ID           sendRelayMessage
// @Summary      Send a message to a shopper
// @Description  Uses the seller's messaging credentials. A refusal (missing_params, seller_not_found,
// @Description  no_credentials) or a gateway rejection is reported in the result with status 200.
// @Description  An unreachable gateway answers 502.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        sellerId query string false "Seller ID, required for super admins"
// @Param        request body RelayMessageRequest true "Recipient and text"
// @Success      200 {object} APIResponse[notification.RelayResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/notifications/relay [post]
func (h *RelayHandler) Send(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	var req RelayMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.relayService.Send(c.Request.Context(), notification.RelayRequest{
		SellerID: sellerID.String(),
		Phone:    req.Phone,
		Text:     req.Text,
	})
	if err != nil {
		h.Fail(c, dto.ErrCodeRemoteFailure, "Messaging gateway is unreachable")
		return
	}

	h.Success(c, result)
}
