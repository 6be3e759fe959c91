package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/delivery"
	"storefront/internal/infrastructure"
	"storefront/internal/usecase"
	"storefront/pkg/config"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info("Starting server")

	m := metrics.New()

	db, err := infrastructure.NewDatabase(cfg.Database.Path, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	defer db.Close()

	location, err := cfg.Dashboard.Location()
	if err != nil {
		log.WithError(err).Fatal("Invalid dashboard timezone")
	}

	products := infrastructure.NewProductRepository(db)
	codes := infrastructure.NewDiscountCodeRepository(db)
	orders := infrastructure.NewOrderRepository(db)
	users := infrastructure.NewUserRepository(db)

	var receipts usecase.ReceiptSender
	if cfg.Receipts.URL != "" {
		receipts = infrastructure.NewReceiptClient(
			cfg.Receipts.URL,
			cfg.Receipts.Secret,
			cfg.Receipts.Timeout,
			cfg.Receipts.RateLimitPerSecond,
			log,
			m,
		)
	} else {
		log.Warn("RECEIPT_URL not set, customer mail is disabled")
	}

	handlers := delivery.NewHTTPHandlers(
		usecase.NewDashboardService(orders, users, products, log, m, location, cfg.Dashboard.WorkerPool),
		usecase.NewCheckoutService(products, codes, orders, receipts, log, m),
		usecase.NewDiscountService(codes, products, log),
		usecase.NewCatalogService(products, log),
		usecase.NewCustomerService(users, orders, products, receipts, log),
		log,
	)

	gin.SetMode(gin.ReleaseMode)
	router := delivery.NewHTTPRouter(handlers, log, m, prometheus.DefaultGatherer, cfg.Server.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Error("HTTP server shutdown failed")
		}
		close(idleConnsClosed)
	}()

	log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("HTTP server failed")
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}
