package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/javohirtm/ombor-backend/api/controllers"
	"github.com/javohirtm/ombor-backend/api/middleware"
	"github.com/javohirtm/ombor-backend/internal/adminorders"
	"github.com/javohirtm/ombor-backend/internal/admins"
	"github.com/javohirtm/ombor-backend/internal/banners"
	"github.com/javohirtm/ombor-backend/internal/catalog"
	"github.com/javohirtm/ombor-backend/internal/notifications"
	"github.com/javohirtm/ombor-backend/internal/orders"
	"github.com/javohirtm/ombor-backend/internal/promotions"
	"github.com/javohirtm/ombor-backend/internal/ratings"
	"github.com/javohirtm/ombor-backend/internal/revisions"
	"github.com/javohirtm/ombor-backend/internal/warehouses"
	"github.com/javohirtm/ombor-backend/internal/wishlist"
	"github.com/javohirtm/ombor-backend/pkg/config"
	"github.com/javohirtm/ombor-backend/pkg/db"
	"github.com/javohirtm/ombor-backend/pkg/enums"
	"github.com/javohirtm/ombor-backend/pkg/logger"
	"github.com/javohirtm/ombor-backend/pkg/metrics"
	"github.com/javohirtm/ombor-backend/pkg/redis"
)

// Services bundles everything the HTTP surface depends on.
type Services struct {
	Admins        admins.Service
	Warehouses    warehouses.Service
	Catalog       catalog.Service
	Promotions    promotions.Service
	Banners       banners.Service
	AdminOrders   adminorders.Service
	Revisions     revisions.Service
	Orders        orders.Service
	Wishlist      wishlist.Service
	Ratings       ratings.Service
	Notifications notifications.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	collector *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(collector),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginPhoneLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Admins, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		// Platform administration: warehouses, roles, admin accounts.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.AdminRoleAdmin))

			r.Route("/warehouses", func(r chi.Router) {
				r.Post("/", controllers.WarehouseCreate(svcs.Warehouses, logg))
				r.Get("/", controllers.WarehouseList(svcs.Warehouses, logg))
				r.Get("/{id}", controllers.WarehouseDetail(svcs.Warehouses, logg))
				r.Patch("/{id}", controllers.WarehouseUpdate(svcs.Warehouses, logg))
				r.Delete("/{id}", controllers.WarehouseDelete(svcs.Warehouses, logg))
			})

			r.Route("/roles", func(r chi.Router) {
				r.Post("/", controllers.RoleCreate(svcs.Warehouses, logg))
				r.Get("/", controllers.RoleList(svcs.Warehouses, logg))
				r.Patch("/{id}", controllers.RoleUpdate(svcs.Warehouses, logg))
				r.Delete("/{id}", controllers.RoleDelete(svcs.Warehouses, logg))
				r.Post("/{id}/grant", controllers.RoleGrant(svcs.Warehouses, logg))
				r.Post("/{id}/revoke", controllers.RoleRevoke(svcs.Warehouses, logg))
			})

			r.Route("/admins", func(r chi.Router) {
				r.Post("/", controllers.AdminCreate(svcs.Admins, logg))
				r.Get("/", controllers.AdminList(svcs.Admins, logg))
				r.Get("/{id}", controllers.AdminDetail(svcs.Admins, logg))
			})

			r.Route("/banners", func(r chi.Router) {
				r.Post("/", controllers.BannerCreate(svcs.Banners, logg))
				r.Get("/", controllers.BannerList(svcs.Banners, logg))
				r.Get("/{id}", controllers.BannerDetail(svcs.Banners, logg))
				r.Patch("/{id}", controllers.BannerUpdate(svcs.Banners, logg))
				r.Delete("/{id}", controllers.BannerDelete(svcs.Banners, logg))
				r.Post("/{id}/apply", controllers.BannerApply(svcs.Banners, logg))
				r.Post("/{id}/revert", controllers.BannerRevert(svcs.Banners, logg))
			})
		})

		// Warehouse back office: catalog, promotions, cashier orders, audits.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.AdminRoleAdmin, enums.AdminRoleManager, enums.AdminRoleSeller))

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", controllers.CategoryCreate(svcs.Catalog, logg))
				r.Get("/", controllers.CategoryList(svcs.Catalog, logg))
				r.Get("/{id}", controllers.CategoryDetail(svcs.Catalog, logg))
				r.Patch("/{id}", controllers.CategoryUpdate(svcs.Catalog, logg))
				r.Delete("/{id}", controllers.CategoryDelete(svcs.Catalog, logg))
			})

			r.Route("/subcategories", func(r chi.Router) {
				r.Post("/", controllers.SubcategoryCreate(svcs.Catalog, logg))
				r.Get("/", controllers.SubcategoryList(svcs.Catalog, logg))
				r.Patch("/{id}", controllers.SubcategoryUpdate(svcs.Catalog, logg))
				r.Delete("/{id}", controllers.SubcategoryDelete(svcs.Catalog, logg))
			})

			r.Route("/colors", func(r chi.Router) {
				r.Post("/", controllers.ColorCreate(svcs.Catalog, logg))
				r.Get("/", controllers.ColorList(svcs.Catalog, logg))
				r.Patch("/{id}", controllers.ColorUpdate(svcs.Catalog, logg))
				r.Delete("/{id}", controllers.ColorDelete(svcs.Catalog, logg))
			})

			r.Route("/sizes", func(r chi.Router) {
				r.Post("/", controllers.SizeCreate(svcs.Catalog, logg))
				r.Get("/", controllers.SizeList(svcs.Catalog, logg))
				r.Patch("/{id}", controllers.SizeUpdate(svcs.Catalog, logg))
				r.Delete("/{id}", controllers.SizeDelete(svcs.Catalog, logg))
			})

			r.Route("/measures", func(r chi.Router) {
				r.Post("/", controllers.MeasureCreate(svcs.Catalog, logg))
				r.Get("/", controllers.MeasureList(svcs.Catalog, logg))
				r.Patch("/{id}", controllers.MeasureUpdate(svcs.Catalog, logg))
				r.Delete("/{id}", controllers.MeasureDelete(svcs.Catalog, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.ProductCreate(svcs.Catalog, logg))
				r.Get("/", controllers.ProductList(svcs.Catalog, logg))
				r.Get("/{id}", controllers.ProductDetail(svcs.Catalog, logg))
				r.Patch("/{id}", controllers.ProductUpdate(svcs.Catalog, logg))
				r.Delete("/{id}", controllers.ProductDelete(svcs.Catalog, logg))
			})

			r.Route("/variants", func(r chi.Router) {
				r.Post("/", controllers.VariantCreate(svcs.Catalog, logg))
				r.Get("/", controllers.VariantList(svcs.Catalog, logg))
				r.Get("/barcode/{barcode}", controllers.VariantByBarcode(svcs.Catalog, logg))
				r.Get("/{id}", controllers.VariantDetail(svcs.Catalog, logg))
				r.Patch("/{id}", controllers.VariantUpdate(svcs.Catalog, logg))
				r.Delete("/{id}", controllers.VariantDelete(svcs.Catalog, logg))
			})

			r.Route("/promotions", func(r chi.Router) {
				r.Post("/", controllers.PromotionCreate(svcs.Promotions, logg))
				r.Get("/", controllers.PromotionList(svcs.Promotions, logg))
				r.Get("/{id}", controllers.PromotionDetail(svcs.Promotions, logg))
				r.Patch("/{id}", controllers.PromotionUpdate(svcs.Promotions, logg))
				r.Delete("/{id}", controllers.PromotionDelete(svcs.Promotions, logg))
				r.Post("/{id}/variants", controllers.PromotionAttachVariants(svcs.Promotions, logg))
			})

			r.Route("/admin-order", func(r chi.Router) {
				r.Post("/order", controllers.AdminOrderOpen(svcs.AdminOrders, logg))
				r.Get("/order", controllers.AdminOrderCurrent(svcs.AdminOrders, logg))
				r.Patch("/order", controllers.AdminOrderClose(svcs.AdminOrders, logg))
				r.Post("/complete", controllers.AdminOrderComplete(svcs.AdminOrders, logg))
				r.Get("/orders", controllers.AdminOrderHistory(svcs.AdminOrders, logg))
			})

			r.Route("/admin-orderitem", func(r chi.Router) {
				r.Post("/orderitem", controllers.AdminOrderItemsAdd(svcs.AdminOrders, logg))
				r.Get("/orderitem", controllers.AdminOrderItemsList(svcs.AdminOrders, logg))
				r.Patch("/orderitem/{id}", controllers.AdminOrderItemUpdate(svcs.AdminOrders, logg))
				r.Delete("/orderitem/{id}", controllers.AdminOrderItemDelete(svcs.AdminOrders, logg))
				r.Post("/orderitem/{id}/return", controllers.AdminOrderItemReturn(svcs.AdminOrders, logg))
			})

			r.Route("/revision", func(r chi.Router) {
				r.Post("/", controllers.RevisionStart(svcs.Revisions, logg))
				r.Get("/", controllers.RevisionList(svcs.Revisions, logg))
				r.Get("/active", controllers.RevisionActive(svcs.Revisions, logg))
				r.Get("/{id}", controllers.RevisionDetail(svcs.Revisions, logg))
				r.Post("/{id}/items", controllers.RevisionScan(svcs.Revisions, logg))
				r.Post("/{id}/complete", controllers.RevisionComplete(svcs.Revisions, logg))
				r.Post("/{id}/cancel", controllers.RevisionCancel(svcs.Revisions, logg))
			})
		})

		// Storefront: customer orders, wishlist, ratings, notifications.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.AdminRoleCustomer))

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.OrderCreate(svcs.Orders, logg))
				r.Get("/", controllers.OrderList(svcs.Orders, logg))
				r.Get("/{id}", controllers.OrderDetail(svcs.Orders, logg))
				r.Post("/{id}/cancel", controllers.OrderCancel(svcs.Orders, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistList(svcs.Wishlist, logg))
				r.Post("/", controllers.WishlistAdd(svcs.Wishlist, logg))
				r.Delete("/", controllers.WishlistRemove(svcs.Wishlist, logg))
			})

			r.Route("/ratings", func(r chi.Router) {
				r.Get("/", controllers.RatingList(svcs.Ratings, logg))
				r.Post("/", controllers.RatingCreate(svcs.Ratings, logg))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.NotificationList(svcs.Notifications, logg))
				r.Post("/read", controllers.NotificationMarkRead(svcs.Notifications, logg))
			})
		})
	})

	return r
}
