// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"souqlink/internal/delivery/http/middleware"
	"souqlink/internal/delivery/http/router/handler"
	"souqlink/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	ProductHandler      *handler.ProductHandler
	OrderHandler        *handler.OrderHandler
	NotificationHandler *handler.NotificationHandler
	AdminHandler        *handler.AdminHandler
	SessionMiddleware   *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	productHandler      *handler.ProductHandler
	orderHandler        *handler.OrderHandler
	notificationHandler *handler.NotificationHandler
	adminHandler        *handler.AdminHandler
	sessionMiddleware   *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		productHandler:      params.ProductHandler,
		orderHandler:        params.OrderHandler,
		notificationHandler: params.NotificationHandler,
		adminHandler:        params.AdminHandler,
		sessionMiddleware:   params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authenticate := r.sessionMiddleware.Authenticate
	adminOnly := r.sessionMiddleware.RequireRole(entity.RoleAdmin)

	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me, authenticate)
		authGroup.PUT("/update-profile", r.authHandler.UpdateProfile, authenticate)
	}

	productGroup := e.Group("/api/products", authenticate)
	{
		productGroup.POST("/create", r.productHandler.Create)
		productGroup.GET("/my-products", r.productHandler.ListMine)
		productGroup.GET("/active", r.productHandler.ListActive)
		productGroup.GET("/:id", r.productHandler.Get)
		productGroup.PUT("/:id", r.productHandler.Update)
		productGroup.DELETE("/:id", r.productHandler.Delete)
		productGroup.PUT("/:id/toggle-status", r.productHandler.ToggleActive)
		productGroup.GET("/:id/qr", r.productHandler.QR)
	}

	merchantGroup := e.Group("/api/merchants", authenticate)
	{
		merchantGroup.POST("/:id/follow", r.productHandler.Follow)
		merchantGroup.DELETE("/:id/follow", r.productHandler.Unfollow)
		merchantGroup.GET("/following", r.productHandler.Following)
	}

	orderGroup := e.Group("/api/orders", authenticate)
	{
		orderGroup.POST("/create", r.orderHandler.Create)
		orderGroup.GET("/marketer", r.orderHandler.ListMarketer)
		orderGroup.GET("/merchant", r.orderHandler.ListMerchant)
		orderGroup.GET("/marketer/stats", r.orderHandler.MarketerStats)
		orderGroup.GET("/merchant/stats", r.orderHandler.MerchantStats)
		orderGroup.PUT("/:id/status", r.orderHandler.UpdateStatus)
		orderGroup.PUT("/:id/confirm-payment", r.orderHandler.ConfirmPayment)
		orderGroup.PUT("/:id/report-delay", r.orderHandler.ReportDelay)
	}

	notificationGroup := e.Group("/api/notifications", authenticate)
	{
		notificationGroup.GET("", r.notificationHandler.List)
		notificationGroup.GET("/unread-count", r.notificationHandler.UnreadCount)
		notificationGroup.PUT("/:id/read", r.notificationHandler.MarkRead)
		notificationGroup.PUT("/read-all", r.notificationHandler.MarkAllRead)
		notificationGroup.DELETE("/:id", r.notificationHandler.Delete)
		notificationGroup.DELETE("", r.notificationHandler.ClearAll)
	}

	adminGroup := e.Group("/api/admin", authenticate, adminOnly)
	{
		adminGroup.GET("/dashboard", r.adminHandler.Dashboard)
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.GET("/products", r.adminHandler.ListProducts)
		adminGroup.GET("/orders", r.adminHandler.ListOrders)
		adminGroup.PUT("/users/:id/ban", r.adminHandler.Ban)
		adminGroup.PUT("/users/:id/unban", r.adminHandler.Unban)
		adminGroup.PUT("/users/:id/verify", r.adminHandler.Verify)
		adminGroup.PUT("/users/:id/subscription", r.adminHandler.UpdateSubscription)
		adminGroup.POST("/broadcast", r.adminHandler.Broadcast)
	}
}
