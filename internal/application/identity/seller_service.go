package identity

import (
	"context"
	"strings"

	appshared "github.com/storefront/backend/internal/application/shared"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// maxSellerIDAttempts bounds the retries when a random seller code collides
const maxSellerIDAttempts = 5

// Provisioning errors
var (
	ErrEmailTaken        = shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	ErrSellerExists      = shared.NewDomainError("SELLER_EXISTS", "A seller with this code already exists")
	ErrSellerIDExhausted = shared.NewDomainError("SELLER_ID_EXHAUSTED", "Could not allocate a free seller code")
)

// SellerService manages tenants. Provisioning creates the seller and its admin
// account in one transaction.
type SellerService struct {
	sellerRepo  identity.SellerRepository
	txScope     appshared.TransactionScope
	newSellerID func() shared.SellerID
	logger      *zap.Logger
}

// NewSellerService creates a new SellerService
func NewSellerService(
	sellerRepo identity.SellerRepository,
	txScope appshared.TransactionScope,
	logger *zap.Logger,
) *SellerService {
	return &SellerService{
		sellerRepo:  sellerRepo,
		txScope:     txScope,
		newSellerID: shared.NewSellerID,
		logger:      logger,
	}
}

// Provision creates a seller and its seller_admin user atomically.
// Only super admins may provision.
func (s *SellerService) Provision(ctx context.Context, principal identity.Principal, req ProvisionSellerRequest) (*ProvisionResult, error) {
	if err := principal.RequireSuperAdmin(); err != nil {
		return nil, err
	}

	var (
		seller *identity.Seller
		admin  *identity.User
	)
	err := s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		taken, err := repos.Users().ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		sellerID, err := s.allocateSellerID(ctx, repos.Sellers(), req.SellerID)
		if err != nil {
			return err
		}

		seller, err = identity.NewSeller(sellerID, req.OwnerName, req.ShopName, req.Phone)
		if err != nil {
			return err
		}
		if req.MessagingAPIKey != "" || req.MessagingSender != "" {
			if err := seller.Apply(identity.SellerUpdate{
				MessagingAPIKey: &req.MessagingAPIKey,
				MessagingSender: &req.MessagingSender,
			}); err != nil {
				return err
			}
		}
		if err := repos.Sellers().Create(ctx, seller); err != nil {
			return err
		}

		admin, err = identity.NewSellerAdmin(req.Email, req.Password, sellerID)
		if err != nil {
			return err
		}
		return repos.Users().Create(ctx, admin)
	})
	if err != nil {
		s.logger.Warn("Seller provisioning failed",
			zap.String("shop_name", req.ShopName),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Seller provisioned",
		zap.String("seller_id", seller.ID.String()),
		zap.String("admin_user_id", admin.ID.String()),
		zap.String("provisioned_by", principal.UserID.String()))

	return &ProvisionResult{
		Seller: ToSellerResponse(seller),
		Admin:  ToUserResponse(admin),
	}, nil
}

func (s *SellerService) allocateSellerID(ctx context.Context, repo identity.SellerRepository, requested string) (shared.SellerID, error) {
	if requested != "" {
		id, err := shared.ParseSellerID(requested)
		if err != nil {
			return shared.SellerID{}, err
		}
		exists, err := repo.ExistsByID(ctx, id)
		if err != nil {
			return shared.SellerID{}, err
		}
		if exists {
			return shared.SellerID{}, ErrSellerExists
		}
		return id, nil
	}

	for i := 0; i < maxSellerIDAttempts; i++ {
		id := s.newSellerID()
		exists, err := repo.ExistsByID(ctx, id)
		if err != nil {
			return shared.SellerID{}, err
		}
		if !exists {
			return id, nil
		}
	}
	return shared.SellerID{}, ErrSellerIDExhausted
}

// List returns every seller. Super admins only.
func (s *SellerService) List(ctx context.Context, principal identity.Principal) ([]SellerResponse, error) {
	if err := principal.RequireSuperAdmin(); err != nil {
		return nil, err
	}
	sellers, err := s.sellerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]SellerResponse, len(sellers))
	for i, seller := range sellers {
		responses[i] = ToSellerResponse(seller)
	}
	return responses, nil
}

// Get returns a seller the principal is allowed to see
func (s *SellerService) Get(ctx context.Context, principal identity.Principal, id string) (*SellerResponse, error) {
	sellerID, err := principal.ResolveSeller(id)
	if err != nil {
		return nil, err
	}
	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	response := ToSellerResponse(seller)
	return &response, nil
}

// Update applies a partial update to a seller. Super admins only.
func (s *SellerService) Update(ctx context.Context, principal identity.Principal, id shared.SellerID, req UpdateSellerRequest) (*SellerResponse, error) {
	if err := principal.RequireSuperAdmin(); err != nil {
		return nil, err
	}
	seller, err := s.sellerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := seller.Apply(req.toDomain()); err != nil {
		return nil, err
	}
	if err := s.sellerRepo.Save(ctx, seller); err != nil {
		return nil, err
	}

	s.logger.Info("Seller updated",
		zap.String("seller_id", id.String()),
		zap.Bool("messaging_configured", seller.Messaging.IsComplete()))

	response := ToSellerResponse(seller)
	return &response, nil
}

// GetPublic returns the shopper-facing view of a seller
func (s *SellerService) GetPublic(ctx context.Context, id shared.SellerID) (*PublicSellerResponse, error) {
	seller, err := s.sellerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPublicSellerResponse(seller)
	return &response, nil
}
