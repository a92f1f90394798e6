package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// cartRecord is the stored form of a cart
type cartRecord struct {
	Lines []trade.CartLine `json:"lines"`
}

func cartKey(sellerID shared.SellerID, phone string) string {
	return keyPrefix + "cart:" + sellerID.String() + ":" + phone
}

// RedisCartRepository stores carts as JSON values that expire after ttl of
// inactivity
type RedisCartRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCartRepository creates a Redis-backed cart repository
func NewRedisCartRepository(client redis.UniversalClient, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{client: client, ttl: ttl}
}

// Load returns the stored cart, or an empty one
func (r *RedisCartRepository) Load(ctx context.Context, sellerID shared.SellerID, phone string) (*trade.Cart, error) {
	if err := shared.RequireSeller(sellerID); err != nil {
		return nil, err
	}
	raw, err := r.client.Get(ctx, cartKey(sellerID, phone)).Bytes()
	if errors.Is(err, redis.Nil) {
		return trade.NewCart(sellerID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var record cartRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return trade.RestoreCart(sellerID, record.Lines), nil
}

// Save stores the cart and refreshes its expiry; an empty cart is deleted
func (r *RedisCartRepository) Save(ctx context.Context, phone string, cart *trade.Cart) error {
	if err := shared.RequireSeller(cart.SellerID()); err != nil {
		return err
	}
	if cart.IsEmpty() {
		return r.Delete(ctx, cart.SellerID(), phone)
	}
	raw, err := json.Marshal(cartRecord{Lines: cart.Lines()})
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(cart.SellerID(), phone), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the cart
func (r *RedisCartRepository) Delete(ctx context.Context, sellerID shared.SellerID, phone string) error {
	if err := shared.RequireSeller(sellerID); err != nil {
		return err
	}
	if err := r.client.Del(ctx, cartKey(sellerID, phone)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

var _ trade.CartRepository = (*RedisCartRepository)(nil)

// InMemoryCartRepository keeps carts in process memory. Carts are lost on
// restart and are not shared between instances.
type InMemoryCartRepository struct {
	carts *ttlMap[[]trade.CartLine]
	ttl   time.Duration
}

// NewInMemoryCartRepository creates an in-memory cart repository
func NewInMemoryCartRepository(ttl time.Duration) *InMemoryCartRepository {
	return &InMemoryCartRepository{carts: newTTLMap[[]trade.CartLine](), ttl: ttl}
}

// Load returns the stored cart, or an empty one
func (r *InMemoryCartRepository) Load(_ context.Context, sellerID shared.SellerID, phone string) (*trade.Cart, error) {
	if err := shared.RequireSeller(sellerID); err != nil {
		return nil, err
	}
	lines, ok := r.carts.get(cartKey(sellerID, phone))
	if !ok {
		return trade.NewCart(sellerID), nil
	}
	return trade.RestoreCart(sellerID, lines), nil
}

// Save stores a copy of the cart lines; an empty cart is deleted
func (r *InMemoryCartRepository) Save(ctx context.Context, phone string, cart *trade.Cart) error {
	if err := shared.RequireSeller(cart.SellerID()); err != nil {
		return err
	}
	if cart.IsEmpty() {
		return r.Delete(ctx, cart.SellerID(), phone)
	}
	r.carts.set(cartKey(cart.SellerID(), phone), cart.Lines(), r.ttl)
	return nil
}

// Delete removes the cart
func (r *InMemoryCartRepository) Delete(_ context.Context, sellerID shared.SellerID, phone string) error {
	if err := shared.RequireSeller(sellerID); err != nil {
		return err
	}
	r.carts.delete(cartKey(sellerID, phone))
	return nil
}

var _ trade.CartRepository = (*InMemoryCartRepository)(nil)
