package trade

import (
	"sort"

	"github.com/google/uuid"
)

// TopProductsLimit is the number of best sellers reported in OrderStats
const TopProductsLimit = 5

// ProductSales aggregates the quantity sold of one product
type ProductSales struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Revenue   int64     `json:"revenue"`
}

// OrderStats summarises a set of orders for the admin dashboard.
// Revenue counts processed orders only.
type OrderStats struct {
	Revenue         int64          `json:"revenue"`
	TotalOrders     int            `json:"total_orders"`
	PendingOrders   int            `json:"pending_orders"`
	ProcessedOrders int            `json:"processed_orders"`
	TopProducts     []ProductSales `json:"top_products"`
}

// ComputeStats aggregates orders. Top products rank by quantity across
// every order in the set whatever its status, ties broken by name.
func ComputeStats(orders []*Order) OrderStats {
	stats := OrderStats{TotalOrders: len(orders), TopProducts: []ProductSales{}}
	sales := make(map[uuid.UUID]*ProductSales)

	for _, o := range orders {
		switch o.Status {
		case OrderStatusProcessed:
			stats.ProcessedOrders++
			stats.Revenue += o.Total
		case OrderStatusProcessing:
			stats.PendingOrders++
		}
		for _, item := range o.Items {
			s, ok := sales[item.ProductID]
			if !ok {
				s = &ProductSales{ProductID: item.ProductID, Name: item.Name}
				sales[item.ProductID] = s
			}
			s.Quantity += item.Quantity
			s.Revenue += item.Subtotal()
		}
	}

	for _, s := range sales {
		stats.TopProducts = append(stats.TopProducts, *s)
	}
	sort.Slice(stats.TopProducts, func(i, j int) bool {
		a, b := stats.TopProducts[i], stats.TopProducts[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Name < b.Name
	})
	if len(stats.TopProducts) > TopProductsLimit {
		stats.TopProducts = stats.TopProducts[:TopProductsLimit]
	}
	return stats
}
