package partner

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ClientService handles shoppers: the storefront landing, visit tracking and
// the admin client list
type ClientService struct {
	clientRepo partner.ClientRepository
	sellerRepo identity.SellerRepository
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(
	clientRepo partner.ClientRepository,
	sellerRepo identity.SellerRepository,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		sellerRepo: sellerRepo,
		logger:     logger,
	}
}

// Landing returns the shop and, if the shopper is known, their client record.
// An unknown seller yields shared.ErrNotFound.
func (s *ClientService) Landing(ctx context.Context, sellerID shared.SellerID, phone string) (*LandingResponse, error) {
	phone = shared.NormalizePhone(phone)
	if phone == "" {
		return nil, partner.ErrInvalidPhone
	}
	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	resp := &LandingResponse{Shop: toShopInfo(seller), Phone: phone}
	client, err := s.clientRepo.FindByPhone(ctx, sellerID, phone)
	switch {
	case err == nil:
		c := ToClientResponse(client)
		resp.Client = &c
	case errors.Is(err, shared.ErrNotFound):
	default:
		return nil, err
	}
	return resp, nil
}

// RecordVisit creates the client on first visit or merges the newer details
func (s *ClientService) RecordVisit(ctx context.Context, sellerID shared.SellerID, phone string, req VisitRequest) (*ClientResponse, error) {
	phone = shared.NormalizePhone(phone)
	if phone == "" {
		return nil, partner.ErrInvalidPhone
	}
	exists, err := s.sellerRepo.ExistsByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	client, err := s.clientRepo.FindByPhone(ctx, sellerID, phone)
	switch {
	case err == nil:
		if err := client.Merge(req.toDetails()); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		client, err = partner.NewClient(sellerID, phone, req.toDetails())
		if err != nil {
			return nil, err
		}
		s.logger.Info("New client",
			zap.String("seller_id", sellerID.String()),
			zap.String("client_id", client.ID))
	default:
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Get returns one client of the seller
func (s *ClientService) Get(ctx context.Context, sellerID shared.SellerID, phone string) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByPhone(ctx, sellerID, shared.NormalizePhone(phone))
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List returns the seller's clients, optionally filtered by name or phone
func (s *ClientService) List(ctx context.Context, sellerID shared.SellerID, filter ClientListFilter) ([]ClientResponse, error) {
	clients, err := s.clientRepo.FindAll(ctx, sellerID, partner.ClientFilter{Search: filter.Search})
	if err != nil {
		return nil, err
	}
	responses := make([]ClientResponse, len(clients))
	for i, c := range clients {
		responses[i] = ToClientResponse(c)
	}
	return responses, nil
}
