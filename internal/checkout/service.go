package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
	"github.com/joao-fontenele/galaxy-store-api/internal/shipping"
)

// The orchestrator reads products, coupons and shipping rates through
// narrow interfaces so it can be exercised against in-memory fakes.

type ProductReader interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type CouponReader interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

type RateQuoter interface {
	Quote(ctx context.Context, location string) (shipping.Rate, error)
}

// OrderCommitter runs the mutation half of checkout (stock decrement,
// order insert, coupon usage, cart clear) atomically.
type OrderCommitter interface {
	Commit(ctx context.Context, order *domain.Order, redeemedCoupon string) error
}

type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Service struct {
	products  ProductReader
	coupons   CouponReader
	rates     RateQuoter
	committer OrderCommitter
	producer  Publisher
	logger    *slog.Logger

	ordersPlaced metric.Int64Counter
	orderValue   metric.Int64Histogram
}

func NewService(products ProductReader, coupons CouponReader, rates RateQuoter, committer OrderCommitter, producer Publisher, logger *slog.Logger) *Service {
	meter := otel.Meter("checkout")
	ordersPlaced, _ := meter.Int64Counter("orders.placed",
		metric.WithDescription("Orders successfully placed"))
	orderValue, _ := meter.Int64Histogram("orders.value",
		metric.WithDescription("Order totals in cents"),
		metric.WithUnit("{cents}"))

	return &Service{
		products:     products,
		coupons:      coupons,
		rates:        rates,
		committer:    committer,
		producer:     producer,
		logger:       logger,
		ordersPlaced: ordersPlaced,
		orderValue:   orderValue,
	}
}

type ItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

type PlaceOrderRequest struct {
	Items           []ItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string        `json:"shipping_address" validate:"required,min=10,max=500"`
	Location        string        `json:"location" validate:"required"`
	CouponCode      string        `json:"coupon_code"`
}

// PlaceOrder converts the requested items into a priced, stock-committed
// order. All validation and pricing happen before any mutation; the
// committer then performs the decrement/insert/clear sequence in one
// transaction, so a failure at any point leaves stock, orders and the
// cart untouched.
func (s *Service) PlaceOrder(ctx context.Context, userID string, req PlaceOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, &domain.ValidationError{Message: "items must not be empty"}
	}
	if n := len(req.ShippingAddress); n < 10 || n > 500 {
		return nil, &domain.ValidationError{Message: "shipping address must be 10-500 characters"}
	}
	if req.Location == "" {
		return nil, &domain.ValidationError{Message: "location is required"}
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, &domain.ValidationError{Message: "quantity must be at least 1"}
		}

		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product %s: %w", item.ProductID, err)
		}
		if product == nil {
			return nil, &domain.ProductNotFoundError{ProductID: item.ProductID}
		}

		// Pre-check the whole list before touching any stock; the
		// committer re-checks under the transaction.
		if !product.InStock || product.Stock < item.Quantity {
			return nil, &domain.InsufficientStockError{ProductName: product.Name}
		}

		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
	}

	rate, err := s.rates.Quote(ctx, req.Location)
	if err != nil {
		return nil, fmt.Errorf("quote shipping for %q: %w", req.Location, err)
	}

	now := time.Now().UTC()

	// An unknown, inactive, expired or exhausted coupon does not fail the
	// order; it just contributes no discount. The dedicated validation
	// endpoint is the place that reports coupon problems.
	var coupon *domain.Coupon
	if req.CouponCode != "" {
		c, err := s.coupons.GetByCode(ctx, strings.ToUpper(req.CouponCode))
		if err != nil {
			return nil, fmt.Errorf("get coupon %q: %w", req.CouponCode, err)
		}
		if c != nil && c.ValidForUse(now) {
			coupon = c
		}
	}

	breakdown := ComputeTotals(items, coupon, rate)

	order := &domain.Order{
		UserID:            userID,
		Items:             items,
		Subtotal:          breakdown.Subtotal,
		Discount:          breakdown.Discount,
		ShippingCost:      breakdown.ShippingCost,
		Total:             breakdown.Total,
		Status:            domain.OrderStatusPending,
		ShippingAddress:   req.ShippingAddress,
		Location:          req.Location,
		EstimatedDelivery: now.Add(time.Duration(rate.Days) * 24 * time.Hour),
		CreatedAt:         now,
	}

	var redeemed string
	if coupon != nil {
		order.CouponCode = coupon.Code
		redeemed = coupon.Code
	}

	if err := s.committer.Commit(ctx, order, redeemed); err != nil {
		return nil, err
	}

	s.ordersPlaced.Add(ctx, 1)
	s.orderValue.Record(ctx, order.Total)

	if s.producer != nil {
		event := domain.OrderCreatedEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			Items:     order.Items,
			Total:     order.Total,
			Timestamp: order.CreatedAt,
		}
		if err := s.producer.Publish(ctx, order.ID, event); err != nil {
			s.logger.Error("failed to publish order created event", "error", err, "order_id", order.ID)
		}
	}

	s.logger.Info("order placed",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total", order.Total,
		"coupon", order.CouponCode,
	)

	return order, nil
}
