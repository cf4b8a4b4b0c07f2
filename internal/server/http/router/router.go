package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/webstudio/internal/config"
	"github.com/polkiloo/webstudio/internal/server/http/handlers"
	"github.com/polkiloo/webstudio/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.WebstudioFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	notificationHandler := handlers.NewNotificationHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.Use(limiter.Handler())
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade), limiter.Handler())
	authed.GET("/user/me", authHandler.Me)

	orders := authed.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id", orderHandler.UpdateDetails)
	orders.POST("/:id/transition", orderHandler.Transition)
	orders.POST("/:id/payment-evidence", orderHandler.AttachPaymentEvidence)
	orders.PATCH("/:id/delivery", orderHandler.SetDelivery)

	notifications := authed.Group("/notifications")
	notifications.GET("", notificationHandler.List)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.POST("/read-all", notificationHandler.MarkAllRead)
	notifications.POST("/:id/read", notificationHandler.MarkRead)

	authed.POST("/admin/notifications", notificationHandler.Announce)

	return engine
}
