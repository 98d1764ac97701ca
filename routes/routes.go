package routes

import (
	"context"

	"foodees-api/handlers"
	"foodees-api/metrics"
	"foodees-api/middleware"
	"foodees-api/models"

	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs besides the handlers.
type Deps struct {
	Secret   []byte
	Sessions middleware.SessionVerifier
	ImageDir string
	Ping     func(context.Context) error
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, deps Deps) {
	r.GET("/health", handlers.Health(deps.Ping))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if deps.ImageDir != "" {
		r.Static("/images", deps.ImageDir)
	}

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	authRequired := middleware.AuthRequired(deps.Secret, deps.Sessions)

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(authRequired)
	{
		auth.GET("/profile", h.GetProfile)
		auth.POST("/auth/logout", h.Logout)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(authRequired, middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/restaurants", h.BrowseRestaurants)
		customer.GET("/restaurants/:id/menu", h.BrowseMenu)

		customer.GET("/cart", h.GetCart)
		customer.POST("/cart", h.AddToCart)
		customer.DELETE("/cart", h.ClearCart)
		customer.POST("/checkout", h.Checkout)

		customer.GET("/orders", h.GetMyOrders)
		customer.GET("/orders/:id", h.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", h.CancelOrder)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(authRequired, middleware.RoleRequired(models.RoleRestaurant))
	{
		restaurant.GET("", h.GetMyRestaurant)
		restaurant.GET("/all", h.GetMyRestaurants)
		restaurant.POST("", h.CreateRestaurant)
		restaurant.GET("/revenue", h.GetDailyRevenue)

		restaurant.GET("/menu", h.GetMenu)
		restaurant.POST("/menu", h.AddMenuItem)
		restaurant.DELETE("/menu/:itemId", h.DeleteMenuItem)

		restaurant.GET("/orders", h.GetRestaurantOrders)
		restaurant.PUT("/orders/:id/status", h.UpdateOrderStatus)
	}

	// ── Delivery routes ────────────────────────────────────────────
	delivery := r.Group("/api/delivery")
	delivery.Use(authRequired, middleware.RoleRequired(models.RoleDelivery))
	{
		delivery.GET("/orders/available", h.GetAvailableOrders)
		delivery.GET("/orders/active", h.GetMyDeliveries)
		delivery.PUT("/orders/:id/claim", h.ClaimOrder)
		delivery.PUT("/orders/:id/deliver", h.DeliverOrder)
		delivery.GET("/earnings", h.GetEarnings)
	}

	// ── Superadmin routes ──────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(authRequired, middleware.RoleRequired(models.RoleSuperAdmin))
	{
		admin.GET("/dashboard", h.AdminDashboard)
		admin.GET("/orders", h.AdminGetAllOrders)
		admin.GET("/restaurants", h.AdminGetAllRestaurants)
		admin.PUT("/restaurants/:id/approval", h.AdminApproveRestaurant)
		admin.GET("/delivery-agents", h.AdminGetDeliveryAgents)
	}
}
