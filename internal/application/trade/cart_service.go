package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// CartService manages shopper carts and checks them out into orders
type CartService struct {
	cartRepo    trade.CartRepository
	productRepo catalog.ProductRepository
	orders      *OrderService
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo trade.CartRepository,
	productRepo catalog.ProductRepository,
	orders *OrderService,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orders:      orders,
		logger:      logger,
	}
}

// Get returns the shopper's cart, empty if none is stored
func (s *CartService) Get(ctx context.Context, sellerID shared.SellerID, phone string) (*CartResponse, error) {
	phone, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.Load(ctx, sellerID, phone)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(phone, cart)
	return &response, nil
}

// AddItem adds one unit of a product at its current effective price
func (s *CartService) AddItem(ctx context.Context, sellerID shared.SellerID, phone string, productID uuid.UUID) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sellerID, phone, func(cart *trade.Cart) error {
		return cart.AddItem(product)
	})
}

// UpdateQuantity sets a line quantity; zero or less removes the line
func (s *CartService) UpdateQuantity(ctx context.Context, sellerID shared.SellerID, phone string, productID uuid.UUID, quantity int) (*CartResponse, error) {
	return s.mutate(ctx, sellerID, phone, func(cart *trade.Cart) error {
		return cart.UpdateQuantity(productID, quantity)
	})
}

// RemoveItem drops a product from the cart
func (s *CartService) RemoveItem(ctx context.Context, sellerID shared.SellerID, phone string, productID uuid.UUID) (*CartResponse, error) {
	return s.mutate(ctx, sellerID, phone, func(cart *trade.Cart) error {
		cart.RemoveItem(productID)
		return nil
	})
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, sellerID shared.SellerID, phone string) error {
	phone, err := normalizePhone(phone)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, sellerID, phone)
}

// Checkout places an order from the cart lines at their locked-in prices and
// clears the cart. A failure to clear the cart does not undo the order.
func (s *CartService) Checkout(ctx context.Context, sellerID shared.SellerID, phone string, req CheckoutRequest) (*OrderResponse, error) {
	phone, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.Load(ctx, sellerID, phone)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, trade.ErrEmptyOrder
	}

	order, err := s.orders.placeOrder(ctx, sellerID, phone, cart.OrderItems(), cart.Total(), req.Delivery.toDomain())
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Delete(ctx, sellerID, phone); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("seller_id", sellerID.String()),
			zap.String("reference", order.Reference),
			zap.Error(err))
	}
	return order, nil
}

func (s *CartService) mutate(ctx context.Context, sellerID shared.SellerID, phone string, fn func(*trade.Cart) error) (*CartResponse, error) {
	phone, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.Load(ctx, sellerID, phone)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, phone, cart); err != nil {
		return nil, err
	}
	response := ToCartResponse(phone, cart)
	return &response, nil
}

func normalizePhone(phone string) (string, error) {
	phone = shared.NormalizePhone(phone)
	if phone == "" {
		return "", partner.ErrInvalidPhone
	}
	return phone, nil
}
