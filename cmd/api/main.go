package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/javohirtm/ombor-backend/api/routes"
	"github.com/javohirtm/ombor-backend/internal/adminorders"
	"github.com/javohirtm/ombor-backend/internal/admins"
	"github.com/javohirtm/ombor-backend/internal/banners"
	"github.com/javohirtm/ombor-backend/internal/catalog"
	"github.com/javohirtm/ombor-backend/internal/notifications"
	"github.com/javohirtm/ombor-backend/internal/orders"
	"github.com/javohirtm/ombor-backend/internal/promotions"
	"github.com/javohirtm/ombor-backend/internal/ratings"
	"github.com/javohirtm/ombor-backend/internal/revisions"
	"github.com/javohirtm/ombor-backend/internal/stock"
	"github.com/javohirtm/ombor-backend/internal/warehouses"
	"github.com/javohirtm/ombor-backend/internal/wishlist"
	"github.com/javohirtm/ombor-backend/pkg/config"
	"github.com/javohirtm/ombor-backend/pkg/db"
	"github.com/javohirtm/ombor-backend/pkg/logger"
	"github.com/javohirtm/ombor-backend/pkg/metrics"
	"github.com/javohirtm/ombor-backend/pkg/migrate"
	"github.com/javohirtm/ombor-backend/pkg/redis"
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

	svcs, err := buildServices(dbClient, cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	collector := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, collector, svcs),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildServices(dbClient *db.Client, cfg *config.Config) (routes.Services, error) {
	conn := dbClient.DB()
	guard := stock.NewGuard()
	resolver := promotions.NewResolver(promotions.NewRepository(conn))

	adminsSvc, err := admins.NewService(admins.NewRepository(conn), dbClient, cfg.JWT, cfg.Password)
	if err != nil {
		return routes.Services{}, err
	}
	warehousesSvc, err := warehouses.NewService(warehouses.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}
	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn), dbClient)
	if err != nil {
		return routes.Services{}, err
	}
	promotionsSvc, err := promotions.NewService(promotions.NewRepository(conn), dbClient)
	if err != nil {
		return routes.Services{}, err
	}
	bannersSvc, err := banners.NewService(banners.NewRepository(conn), dbClient)
	if err != nil {
		return routes.Services{}, err
	}
	adminOrdersSvc, err := adminorders.NewService(adminorders.NewRepository(conn), dbClient, guard, resolver)
	if err != nil {
		return routes.Services{}, err
	}
	revisionsSvc, err := revisions.NewService(revisions.NewRepository(conn), dbClient, guard)
	if err != nil {
		return routes.Services{}, err
	}
	notificationsSvc, err := notifications.NewService(notifications.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}
	ordersSvc, err := orders.NewService(orders.NewRepository(conn), dbClient, notificationsSvc)
	if err != nil {
		return routes.Services{}, err
	}
	wishlistSvc, err := wishlist.NewService(wishlist.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}
	ratingsSvc, err := ratings.NewService(ratings.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Admins:        adminsSvc,
		Warehouses:    warehousesSvc,
		Catalog:       catalogSvc,
		Promotions:    promotionsSvc,
		Banners:       bannersSvc,
		AdminOrders:   adminOrdersSvc,
		Revisions:     revisionsSvc,
		Orders:        ordersSvc,
		Wishlist:      wishlistSvc,
		Ratings:       ratingsSvc,
		Notifications: notificationsSvc,
	}, nil
}
