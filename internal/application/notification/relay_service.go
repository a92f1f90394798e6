package notification

import (
	"context"
	"errors"
	"strings"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Reasons reported when the relay refuses to call the gateway
const (
	ReasonMissingParams  = "missing_params"
	ReasonSellerNotFound = "seller_not_found"
	ReasonNoCredentials  = "no_credentials"
)

// GatewayResponse is the raw answer of the messaging gateway
type GatewayResponse struct {
	Status int
	Body   string
}

// Gateway sends a text message on behalf of a seller
type Gateway interface {
	// Send returns an error only when no response was received
	Send(ctx context.Context, creds identity.MessagingCredentials, phone, text string) (*GatewayResponse, error)
}

// RelayRequest asks for one message to be sent to a phone number
type RelayRequest struct {
	SellerID string `json:"seller_id"`
	Phone    string `json:"phone"`
	Text     string `json:"text"`
}

// RelayResult reports the outcome of a relay call. Status and Body are the
// gateway's response, relayed verbatim.
type RelayResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
	Status  int    `json:"status,omitempty"`
	Body    string `json:"body,omitempty"`
}

// RelayService forwards messages to the gateway with the seller's credentials
type RelayService struct {
	sellerRepo identity.SellerRepository
	gateway    Gateway
	logger     *zap.Logger
}

// NewRelayService creates a new RelayService
func NewRelayService(sellerRepo identity.SellerRepository, gateway Gateway, logger *zap.Logger) *RelayService {
	return &RelayService{
		sellerRepo: sellerRepo,
		gateway:    gateway,
		logger:     logger,
	}
}

// Send relays one message. Missing input, an unknown seller or incomplete
// credentials are reported in the result without calling the gateway.
// An error is returned only when the seller lookup or the gateway call fails.
func (s *RelayService) Send(ctx context.Context, req RelayRequest) (*RelayResult, error) {
	sellerCode := strings.TrimSpace(req.SellerID)
	phone := shared.NormalizePhone(req.Phone)
	text := strings.TrimSpace(req.Text)
	if sellerCode == "" || phone == "" || text == "" {
		return &RelayResult{Reason: ReasonMissingParams}, nil
	}

	sellerID, err := shared.ParseSellerID(sellerCode)
	if err != nil {
		return &RelayResult{Reason: ReasonSellerNotFound}, nil
	}
	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &RelayResult{Reason: ReasonSellerNotFound}, nil
		}
		return nil, err
	}
	if !seller.Messaging.IsComplete() {
		return &RelayResult{Reason: ReasonNoCredentials}, nil
	}

	resp, err := s.gateway.Send(ctx, seller.Messaging, phone, text)
	if err != nil {
		s.logger.Warn("Messaging gateway unreachable",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
		return nil, err
	}

	result := &RelayResult{
		Success: resp.Status >= 200 && resp.Status < 300,
		Status:  resp.Status,
		Body:    resp.Body,
	}
	if !result.Success {
		s.logger.Warn("Messaging gateway rejected message",
			zap.String("seller_id", sellerID.String()),
			zap.Int("status", resp.Status))
	}
	return result, nil
}
