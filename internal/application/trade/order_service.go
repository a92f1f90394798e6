package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	appshared "github.com/storefront/backend/internal/application/shared"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// OrderMetrics records order business metrics
type OrderMetrics interface {
	RecordOrderPlaced(ctx context.Context, sellerID string, total int64)
	RecordStatusChanged(ctx context.Context, sellerID, status string)
}

// OrderService handles the order workflow. Orders, client upserts and the
// events that drive notifications are written in one transaction.
type OrderService struct {
	txScope      appshared.TransactionScope
	orderRepo    trade.OrderRepository
	newReference trade.ReferenceGenerator
	now          func() time.Time
	location     *time.Location
	metrics      OrderMetrics
	logger       *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txScope appshared.TransactionScope,
	orderRepo trade.OrderRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		txScope:      txScope,
		orderRepo:    orderRepo,
		newReference: trade.GenerateReference,
		now:          time.Now,
		location:     time.UTC,
		logger:       logger,
	}
}

// SetMetrics sets the metrics recorder
func (s *OrderService) SetMetrics(m OrderMetrics) {
	s.metrics = m
}

// SetLocation sets the time zone used to resolve date ranges
func (s *OrderService) SetLocation(loc *time.Location) {
	if loc != nil {
		s.location = loc
	}
}

// PlaceOrder creates an order in processing status for the shopper.
//
// The client name comes from the delivery form, else from the stored client.
// The client is created on first order; otherwise only its names are updated.
// Product stock is never changed.
func (s *OrderService) PlaceOrder(ctx context.Context, sellerID shared.SellerID, phone string, req PlaceOrderRequest) (*OrderResponse, error) {
	items := make([]trade.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = item.toDomain()
	}
	total := trade.ComputeTotal(items)
	if req.Total != nil {
		total = *req.Total
	}
	return s.placeOrder(ctx, sellerID, phone, items, total, req.Delivery.toDomain())
}

func (s *OrderService) placeOrder(
	ctx context.Context,
	sellerID shared.SellerID,
	phone string,
	items []trade.OrderItem,
	total int64,
	delivery trade.DeliveryDetails,
) (resp *OrderResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "place",
		attribute.String(telemetry.SpanAttrSellerID, sellerID.String()),
		attribute.Int(telemetry.SpanAttrItemCount, len(items)))
	defer func() { telemetry.EndSpan(span, err) }()

	if err := shared.RequireSeller(sellerID); err != nil {
		return nil, err
	}
	phone = shared.NormalizePhone(phone)
	if phone == "" {
		return nil, partner.ErrInvalidPhone
	}

	var order *trade.Order
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		exists, err := repos.Sellers().ExistsByID(ctx, sellerID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.ErrNotFound
		}

		client, err := repos.Clients().FindByPhone(ctx, sellerID, phone)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if delivery.Name == "" && client != nil {
			delivery.Name = client.Name
			if delivery.FirstName == "" {
				delivery.FirstName = client.FirstName
			}
		}

		order, err = trade.NewOrder(sellerID, trade.NewOrderParams{
			ClientPhone: phone,
			Items:       items,
			Total:       total,
			Delivery:    delivery,
			Reference:   s.newReference(s.now()),
		})
		if err != nil {
			return err
		}

		if client == nil {
			client, err = partner.NewClient(sellerID, phone, partner.ClientDetails{
				Name:          order.Delivery.Name,
				FirstName:     order.Delivery.FirstName,
				DeliveryPlace: order.Delivery.Location,
				GPS:           order.Delivery.GPS,
			})
			if err != nil {
				return err
			}
		} else if err := client.Merge(partner.ClientDetails{
			Name:      order.Delivery.Name,
			FirstName: order.Delivery.FirstName,
		}); err != nil {
			return err
		}
		if err := repos.Clients().Save(ctx, client); err != nil {
			return err
		}

		if err := repos.Orders().Create(ctx, order); err != nil {
			return err
		}
		return repos.SaveEvents(ctx, order.GetDomainEvents()...)
	})
	if err != nil {
		s.logger.Warn("Order placement failed",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
		return nil, err
	}
	order.ClearDomainEvents()
	span.SetAttributes(attribute.String(telemetry.SpanAttrReference, order.Reference))

	s.logger.Info("Order placed",
		zap.String("seller_id", sellerID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("reference", order.Reference),
		zap.Int64("total", order.Total))
	if s.metrics != nil {
		s.metrics.RecordOrderPlaced(ctx, sellerID.String(), order.Total)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus sets any status on an order, whatever its previous status.
// The shopper is notified through the OrderStatusChanged event.
func (s *OrderService) UpdateStatus(ctx context.Context, sellerID shared.SellerID, id uuid.UUID, req UpdateStatusRequest) (resp *OrderResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update_status",
		attribute.String(telemetry.SpanAttrSellerID, sellerID.String()),
		attribute.String(telemetry.SpanAttrOrderID, id.String()),
		attribute.String(telemetry.SpanAttrOrderStatus, req.Status))
	defer func() { telemetry.EndSpan(span, err) }()

	status := trade.OrderStatus(req.Status)
	if !status.IsValid() {
		return nil, trade.ErrInvalidStatus
	}

	var order *trade.Order
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		var err error
		order, err = repos.Orders().FindByID(ctx, sellerID, id)
		if err != nil {
			return err
		}
		if err := order.ChangeStatus(status); err != nil {
			return err
		}
		if err := repos.Orders().UpdateStatus(ctx, order); err != nil {
			return err
		}
		return repos.SaveEvents(ctx, order.GetDomainEvents()...)
	})
	if err != nil {
		return nil, err
	}
	order.ClearDomainEvents()

	s.logger.Info("Order status updated",
		zap.String("seller_id", sellerID.String()),
		zap.String("order_id", id.String()),
		zap.String("status", status.String()))
	if s.metrics != nil {
		s.metrics.RecordStatusChanged(ctx, sellerID.String(), status.String())
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List returns the seller's orders newest first
func (s *OrderService) List(ctx context.Context, sellerID shared.SellerID, filter OrderListFilter) ([]OrderResponse, error) {
	repoFilter, err := s.repositoryFilter(filter.DateRangeFilter)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" {
		status := trade.OrderStatus(filter.Status)
		if !status.IsValid() {
			return nil, trade.ErrInvalidStatus
		}
		repoFilter.Status = status
	}

	orders, err := s.orderRepo.FindAll(ctx, sellerID, repoFilter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// Stats aggregates the orders of the date range for the dashboard
func (s *OrderService) Stats(ctx context.Context, sellerID shared.SellerID, filter DateRangeFilter) (*trade.OrderStats, error) {
	repoFilter, err := s.repositoryFilter(filter)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindAll(ctx, sellerID, repoFilter)
	if err != nil {
		return nil, err
	}
	stats := trade.ComputeStats(orders)
	return &stats, nil
}

// ClientHistory returns the orders of one shopper, newest first
func (s *OrderService) ClientHistory(ctx context.Context, sellerID shared.SellerID, phone string) ([]OrderResponse, error) {
	phone = shared.NormalizePhone(phone)
	if phone == "" {
		return nil, partner.ErrInvalidPhone
	}
	orders, err := s.orderRepo.FindAll(ctx, sellerID, trade.OrderFilter{ClientPhone: phone})
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

func (s *OrderService) repositoryFilter(f DateRangeFilter) (trade.OrderFilter, error) {
	from, to, err := f.Resolve(s.now(), s.location)
	if err != nil {
		return trade.OrderFilter{}, err
	}
	return trade.OrderFilter{From: from, To: to}, nil
}
