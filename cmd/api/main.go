package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/joao-fontenele/galaxy-store-api/internal/auth"
	"github.com/joao-fontenele/galaxy-store-api/internal/cart"
	"github.com/joao-fontenele/galaxy-store-api/internal/catalog"
	"github.com/joao-fontenele/galaxy-store-api/internal/checkout"
	"github.com/joao-fontenele/galaxy-store-api/internal/coupons"
	"github.com/joao-fontenele/galaxy-store-api/internal/messaging"
	"github.com/joao-fontenele/galaxy-store-api/internal/orders"
	"github.com/joao-fontenele/galaxy-store-api/internal/shipping"
	"github.com/joao-fontenele/galaxy-store-api/internal/telemetry"
	"github.com/joao-fontenele/galaxy-store-api/internal/wishlist"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "galaxy-store-api", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("galaxy-store-api", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter provider", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	db, err := telemetry.OpenDB("postgres", postgresURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var producer *messaging.Producer
	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		producer = messaging.NewProducer(brokers, "order.created")
		defer func() { _ = producer.Close() }()
	}

	productRepo := catalog.NewRepository(db)
	cartRepo := cart.NewRepository(db)
	couponRepo := coupons.NewRepository(db)
	shippingRepo := shipping.NewRepository(db)
	orderRepo := orders.NewRepository(db)
	wishlistRepo := wishlist.NewRepository(db)

	var publisher checkout.Publisher
	if producer != nil {
		publisher = producer
	}
	checkoutSvc := checkout.NewService(productRepo, couponRepo, shippingRepo, orderRepo, publisher, logger)

	mw := auth.NewMiddleware([]byte(jwtSecret), logger)

	productHandler := catalog.NewHandler(productRepo, logger)
	cartHandler := cart.NewHandler(cartRepo, productRepo, logger)
	couponHandler := coupons.NewHandler(couponRepo, logger)
	shippingHandler := shipping.NewHandler(shippingRepo, logger)
	orderHandler := orders.NewHandler(orderRepo, checkoutSvc, logger)
	wishlistHandler := wishlist.NewHandler(wishlistRepo, productRepo, logger)

	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, telemetry.WithHTTPRoute(h))
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("GET /metrics", metricsHandler)

	handle("GET /products", productHandler.HandleList)
	handle("GET /products/trending", productHandler.HandleListTrending)
	handle("GET /products/premium", mw.RequirePremium(productHandler.HandleListPremium))
	handle("GET /products/{id}", productHandler.HandleGet)
	handle("POST /products", mw.RequireAdmin(productHandler.HandleCreate))
	handle("PUT /products/{id}", mw.RequireAdmin(productHandler.HandleUpdate))
	handle("DELETE /products/{id}", mw.RequireAdmin(productHandler.HandleDelete))
	handle("PATCH /products/{id}/stock", mw.RequireAdmin(productHandler.HandleSetStock))

	handle("GET /cart", mw.Require(cartHandler.HandleGet))
	handle("POST /cart/items", mw.Require(cartHandler.HandleAddItem))
	handle("PUT /cart/items/{productId}", mw.Require(cartHandler.HandleUpdateItem))
	handle("DELETE /cart/items/{productId}", mw.Require(cartHandler.HandleRemoveItem))
	handle("DELETE /cart", mw.Require(cartHandler.HandleClear))

	handle("POST /orders", mw.Require(orderHandler.HandleCreate))
	handle("GET /orders", mw.Require(orderHandler.HandleList))
	handle("GET /orders/{id}", mw.Require(orderHandler.HandleGet))
	handle("PATCH /orders/{id}/status", mw.RequireAdmin(orderHandler.HandleUpdateStatus))
	handle("GET /admin/orders", mw.RequireAdmin(orderHandler.HandleListAll))

	handle("GET /coupons/validate/{code}", couponHandler.HandleValidate)
	handle("GET /coupons", mw.RequireAdmin(couponHandler.HandleList))
	handle("POST /coupons", mw.RequireAdmin(couponHandler.HandleCreate))
	handle("PUT /coupons/{id}", mw.RequireAdmin(couponHandler.HandleUpdate))
	handle("DELETE /coupons/{id}", mw.RequireAdmin(couponHandler.HandleDelete))

	handle("GET /shipping/locations", shippingHandler.HandleListLocations)

	handle("GET /wishlist", mw.Require(wishlistHandler.HandleList))
	handle("POST /wishlist", mw.Require(wishlistHandler.HandleAdd))
	handle("DELETE /wishlist/{productId}", mw.Require(wishlistHandler.HandleRemove))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "galaxy-store-api",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting storefront api", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
