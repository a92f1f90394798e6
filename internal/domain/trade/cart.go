package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartLine is one product in a cart. Price is the effective price at the time
// the product was first added and does not follow later catalog changes.
type CartLine struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	ImageURL      string    `json:"image_url,omitempty"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"original_price"`
	Quantity      int       `json:"quantity"`
}

// Subtotal returns price times quantity
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart is a shopper's pending selection with one seller.
// Lines keep insertion order.
type Cart struct {
	sellerID shared.SellerID
	lines    []CartLine
}

// NewCart creates an empty cart for a seller
func NewCart(sellerID shared.SellerID) *Cart {
	return &Cart{sellerID: sellerID}
}

// SellerID returns the seller the cart belongs to
func (c *Cart) SellerID() shared.SellerID {
	return c.sellerID
}

// AddItem adds one unit of a product, inserting a new line at the product's
// effective price or incrementing an existing line
func (c *Cart) AddItem(product *catalog.Product) error {
	if product.SellerID != c.sellerID {
		return ErrProductOtherSeller
	}
	if !product.IsAvailable() {
		return ErrProductUnavailable
	}
	if i := c.indexOf(product.ID); i >= 0 {
		c.lines[i].Quantity++
		return nil
	}
	c.lines = append(c.lines, CartLine{
		ProductID:     product.ID,
		Name:          product.Name,
		ImageURL:      product.ImageURL,
		Price:         product.EffectivePrice(),
		OriginalPrice: product.Price,
		Quantity:      1,
	})
	return nil
}

// UpdateQuantity sets the quantity of a line; zero or less removes it
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}
	i := c.indexOf(productID)
	if i < 0 {
		return ErrCartLineNotFound
	}
	c.lines[i].Quantity = quantity
	return nil
}

// RemoveItem drops a line; removing an absent product is a no-op
func (c *Cart) RemoveItem(productID uuid.UUID) {
	if i := c.indexOf(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Total is the sum of price times quantity
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// Count is the sum of quantities
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// OrderItems converts the cart lines into order item snapshots
func (c *Cart) OrderItems() []OrderItem {
	items := make([]OrderItem, len(c.lines))
	for i, line := range c.lines {
		items[i] = OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
		}
	}
	return items
}

// RestoreCart rebuilds a cart from stored lines
func RestoreCart(sellerID shared.SellerID, lines []CartLine) *Cart {
	c := NewCart(sellerID)
	for _, line := range lines {
		if line.Quantity > 0 {
			c.lines = append(c.lines, line)
		}
	}
	return c
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i, line := range c.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// CartRepository stores shopper carts keyed by seller and phone.
// Carts are ephemeral and expire after a period of inactivity.
type CartRepository interface {
	// Load returns an empty cart when none is stored
	Load(ctx context.Context, sellerID shared.SellerID, phone string) (*Cart, error)
	Save(ctx context.Context, phone string, cart *Cart) error
	Delete(ctx context.Context, sellerID shared.SellerID, phone string) error
}
