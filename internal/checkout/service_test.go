package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
	"github.com/joao-fontenele/galaxy-store-api/internal/shipping"
)

type fakeProducts map[string]*domain.Product

func (f fakeProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	return f[id], nil
}

type fakeCoupons map[string]*domain.Coupon

func (f fakeCoupons) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	return f[code], nil
}

type fakeRates struct {
	rate shipping.Rate
}

func (f fakeRates) Quote(_ context.Context, _ string) (shipping.Rate, error) {
	return f.rate, nil
}

type fakeCommitter struct {
	order    *domain.Order
	redeemed string
	err      error
}

func (f *fakeCommitter) Commit(_ context.Context, order *domain.Order, redeemedCoupon string) error {
	if f.err != nil {
		return f.err
	}
	order.ID = "order-1"
	f.order = order
	f.redeemed = redeemedCoupon
	return nil
}

type fakePublisher struct {
	events []any
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, _ string, event any) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func newTestService(products fakeProducts, coupons fakeCoupons, committer *fakeCommitter, publisher *fakePublisher) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var pub Publisher
	if publisher != nil {
		pub = publisher
	}
	return NewService(products, coupons, fakeRates{rate: shipping.Rate{Cost: 5000, Days: 7}}, committer, pub, logger)
}

func testProducts() fakeProducts {
	return fakeProducts{
		"p1": {ID: "p1", Name: "Widget", Price: 2500, Stock: 10, InStock: true},
		"p2": {ID: "p2", Name: "Gadget", Price: 1000, Stock: 1, InStock: true},
	}
}

func validRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		Items: []ItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		ShippingAddress: "42 Orbit Lane, Sector 7",
		Location:        "Delhi",
	}
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("prices and commits the order", func(t *testing.T) {
		committer := &fakeCommitter{}
		publisher := &fakePublisher{}
		svc := newTestService(testProducts(), fakeCoupons{}, committer, publisher)

		order, err := svc.PlaceOrder(ctx, "user-1", validRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(6000), order.Subtotal)
		assert.Equal(t, int64(0), order.Discount)
		assert.Equal(t, int64(5000), order.ShippingCost)
		assert.Equal(t, int64(11000), order.Total)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.Len(t, order.Items, 2)

		require.NotNil(t, committer.order)
		assert.Empty(t, committer.redeemed)

		require.Len(t, publisher.events, 1)
		event, ok := publisher.events[0].(domain.OrderCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, "order-1", event.OrderID)
		assert.Equal(t, int64(11000), event.Total)
	})

	t.Run("applies a valid coupon", func(t *testing.T) {
		committer := &fakeCommitter{}
		coupons := fakeCoupons{
			"SAVE10": {Code: "SAVE10", Type: domain.CouponTypePercentage, Value: 10, IsActive: true},
		}
		svc := newTestService(testProducts(), coupons, committer, nil)

		req := validRequest()
		req.CouponCode = "save10"

		order, err := svc.PlaceOrder(ctx, "user-1", req)
		require.NoError(t, err)

		assert.Equal(t, int64(600), order.Discount)
		assert.Equal(t, int64(10400), order.Total)
		assert.Equal(t, "SAVE10", order.CouponCode)
		assert.Equal(t, "SAVE10", committer.redeemed)
	})

	t.Run("ignores an unknown coupon", func(t *testing.T) {
		committer := &fakeCommitter{}
		svc := newTestService(testProducts(), fakeCoupons{}, committer, nil)

		req := validRequest()
		req.CouponCode = "NOPE"

		order, err := svc.PlaceOrder(ctx, "user-1", req)
		require.NoError(t, err)

		assert.Equal(t, int64(0), order.Discount)
		assert.Empty(t, order.CouponCode)
		assert.Empty(t, committer.redeemed)
	})

	t.Run("ignores an expired coupon", func(t *testing.T) {
		committer := &fakeCommitter{}
		expired := time.Now().UTC().Add(-time.Hour)
		coupons := fakeCoupons{
			"SAVE10": {Code: "SAVE10", Type: domain.CouponTypePercentage, Value: 10, IsActive: true, ExpiresAt: &expired},
		}
		svc := newTestService(testProducts(), coupons, committer, nil)

		req := validRequest()
		req.CouponCode = "SAVE10"

		order, err := svc.PlaceOrder(ctx, "user-1", req)
		require.NoError(t, err)

		assert.Equal(t, int64(0), order.Discount)
		assert.Empty(t, order.CouponCode)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		svc := newTestService(testProducts(), fakeCoupons{}, &fakeCommitter{}, nil)

		req := validRequest()
		req.Items = nil

		_, err := svc.PlaceOrder(ctx, "user-1", req)

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("rejects a short shipping address", func(t *testing.T) {
		svc := newTestService(testProducts(), fakeCoupons{}, &fakeCommitter{}, nil)

		req := validRequest()
		req.ShippingAddress = "short"

		_, err := svc.PlaceOrder(ctx, "user-1", req)

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("unknown product", func(t *testing.T) {
		committer := &fakeCommitter{}
		svc := newTestService(testProducts(), fakeCoupons{}, committer, nil)

		req := validRequest()
		req.Items = []ItemRequest{{ProductID: "missing", Quantity: 1}}

		_, err := svc.PlaceOrder(ctx, "user-1", req)

		var notFound *domain.ProductNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "missing", notFound.ProductID)
		assert.Nil(t, committer.order)
	})

	t.Run("insufficient stock fails before commit", func(t *testing.T) {
		committer := &fakeCommitter{}
		svc := newTestService(testProducts(), fakeCoupons{}, committer, nil)

		req := validRequest()
		req.Items = []ItemRequest{{ProductID: "p2", Quantity: 5}}

		_, err := svc.PlaceOrder(ctx, "user-1", req)

		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Gadget", stockErr.ProductName)
		assert.Nil(t, committer.order)
	})

	t.Run("commit failure propagates and publishes nothing", func(t *testing.T) {
		committer := &fakeCommitter{err: errors.New("boom")}
		publisher := &fakePublisher{}
		svc := newTestService(testProducts(), fakeCoupons{}, committer, publisher)

		_, err := svc.PlaceOrder(ctx, "user-1", validRequest())

		require.Error(t, err)
		assert.Empty(t, publisher.events)
	})

	t.Run("publish failure does not fail the order", func(t *testing.T) {
		committer := &fakeCommitter{}
		publisher := &fakePublisher{err: errors.New("kafka down")}
		svc := newTestService(testProducts(), fakeCoupons{}, committer, publisher)

		order, err := svc.PlaceOrder(ctx, "user-1", validRequest())

		require.NoError(t, err)
		assert.NotNil(t, order)
	})
}
