package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/order-tracking-api/config"
	"github.com/kendall-kelly/order-tracking-api/controllers"
	"github.com/kendall-kelly/order-tracking-api/metrics"
	"github.com/kendall-kelly/order-tracking-api/middleware"
	"github.com/kendall-kelly/order-tracking-api/services"
	"gorm.io/gorm"
)

// NewRouter builds a gin engine with the global middleware and every route mounted
func NewRouter(cfg *config.Config, db *gorm.DB, opts ...services.AuthOption) (*gin.Engine, error) {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		gin.Recovery(),
		metrics.Middleware(),
		middleware.CORS(cfg),
	)

	if err := SetupRoutes(r, cfg, db, opts...); err != nil {
		return nil, err
	}
	return r, nil
}

// SetupRoutes wires the services to their controllers and mounts the routes on r
func SetupRoutes(r *gin.Engine, cfg *config.Config, db *gorm.DB, opts ...services.AuthOption) error {
	authService, err := services.NewAuthService(db, cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}
	activityService := services.NewActivityService(db)
	orderService := services.NewOrderService(db, activityService)

	authController := controllers.NewAuthController(authService)
	orderController := controllers.NewOrderController(orderService)
	activityController := controllers.NewActivityController(activityService)
	healthController := controllers.NewHealthController(db)

	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired(authService)

	// ── Diagnostics ────────────────────────────────────────────────
	r.GET("/health", healthController.HealthCheck)
	r.GET("/database/status", healthController.DatabaseStatus)
	r.GET("/metrics", metrics.Handler())

	// ── Auth ───────────────────────────────────────────────────────
	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", authRequired, authController.Me)
		auth.GET("/verify-token", authRequired, authController.VerifyToken)
		auth.GET("/admin-only", adminRequired, authController.AdminOnly)
	}

	// ── Orders ─────────────────────────────────────────────────────
	orders := r.Group("/orders")
	{
		orders.POST("/", authRequired, orderController.CreateOrder)
		orders.GET("/my-orders", authRequired, orderController.ListMyOrders)
		orders.PATCH("/:id/approve", adminRequired, orderController.ApproveOrder)
	}

	// ── Activity ledger ────────────────────────────────────────────
	activities := r.Group("/order-activities")
	activities.Use(authRequired)
	{
		activities.GET("/", activityController.ListActivities)
	}

	return nil
}
