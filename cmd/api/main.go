package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/marocvoyages/marocvoyages-backend/api/routes"
	"github.com/marocvoyages/marocvoyages-backend/internal/auth"
	"github.com/marocvoyages/marocvoyages-backend/internal/blog"
	"github.com/marocvoyages/marocvoyages-backend/internal/bookings"
	"github.com/marocvoyages/marocvoyages-backend/internal/cart"
	"github.com/marocvoyages/marocvoyages-backend/internal/categories"
	"github.com/marocvoyages/marocvoyages-backend/internal/checkout"
	"github.com/marocvoyages/marocvoyages-backend/internal/customrequests"
	"github.com/marocvoyages/marocvoyages-backend/internal/newsletter"
	"github.com/marocvoyages/marocvoyages-backend/internal/orders"
	"github.com/marocvoyages/marocvoyages-backend/internal/products"
	"github.com/marocvoyages/marocvoyages-backend/internal/stats"
	"github.com/marocvoyages/marocvoyages-backend/internal/testimonials"
	"github.com/marocvoyages/marocvoyages-backend/internal/tours"
	"github.com/marocvoyages/marocvoyages-backend/internal/users"
	"github.com/marocvoyages/marocvoyages-backend/pkg/auth/session"
	"github.com/marocvoyages/marocvoyages-backend/pkg/config"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
	"github.com/marocvoyages/marocvoyages-backend/pkg/metrics"
	"github.com/marocvoyages/marocvoyages-backend/pkg/migrate"
	"github.com/marocvoyages/marocvoyages-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	tourService, err := tours.NewService(tours.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create tour service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	blogService, err := blog.NewService(blog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create blog service", err)
		os.Exit(1)
	}

	testimonialService, err := testimonials.NewService(testimonials.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create testimonial service", err)
		os.Exit(1)
	}

	newsletterService, err := newsletter.NewService(newsletter.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create newsletter service", err)
		os.Exit(1)
	}

	bookingService, err := bookings.NewService(bookings.NewRepository(dbClient.DB()), tourService)
	if err != nil {
		logg.Error(context.Background(), "failed to create booking service", err)
		os.Exit(1)
	}

	requestService, err := customrequests.NewService(customrequests.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create custom request service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	cartStorage, err := cart.NewRedisStorage(redisClient, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart storage", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartStorage, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(cartService, orderService, cfg.Checkout, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	statsService, err := stats.NewService(stats.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create stats service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()
	cartMetrics := metrics.NewCartMetrics(httpMetrics.Registry())
	cartService.Subscribe(func(_ string, snap cart.Snapshot) {
		cartMetrics.ObserveMutation(snap.ItemCount, snap.Total)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			Metrics:        httpMetrics,
			DB:             dbClient,
			Redis:          redisClient,
			Sessions:       sessionManager,
			Auth:           authService,
			Tours:          tourService,
			Products:       productService,
			Categories:     categoryService,
			Blog:           blogService,
			Testimonials:   testimonialService,
			Newsletter:     newsletterService,
			Bookings:       bookingService,
			CustomRequests: requestService,
			Orders:         orderService,
			Cart:           cartService,
			Checkout:       checkoutService,
			Stats:          statsService,
		}),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server stopped")
}
