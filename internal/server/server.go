package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/auth"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/checkout"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/config"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/gateway"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/metering"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/reconcile"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/subscription"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/wallet"
)

// Handlers groups the HTTP handlers mounted by the server.
type Handlers struct {
	Checkout     *checkout.Handler
	Reconcile    *reconcile.Handler
	Wallet       *wallet.Handler
	Metering     *metering.Handler
	Subscription *subscription.Handler
	Channels     *gateway.Handler
	Queue        QueueProbe
}

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

func New(cfg *config.Config, h Handlers) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())

	creditLimit := RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// The gateway retries callbacks it sees rejected, so the callback route is
	// not rate limited. Forged notifications fail verification before any write.
	router.POST("/payments/callback", h.Reconcile.Callback)
	router.GET("/plans", h.Subscription.ListPlans)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware, JSONBodyMiddleware())
	{
		protected.POST("/checkout", h.Checkout.Create)
		protected.GET("/payments/channels", h.Channels.ListChannels)
		protected.GET("/subscription", h.Subscription.GetLatest)

		protected.GET("/credits", h.Wallet.GetBalance)
		protected.GET("/credits/ledger", h.Wallet.ListLedger)
		protected.POST("/credits/deduct", creditLimit, h.Wallet.Deduct)
		protected.POST("/credits/actions/:action/authorize", creditLimit, h.Metering.Authorize)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole("admin"), JSONBodyMiddleware())
	{
		admin.POST("/credits/grant", h.Wallet.Grant)
		admin.POST("/payments/:merchantRef/reconcile", h.Reconcile.Reconcile)
		if h.Queue != nil {
			admin.GET("/notifications", NotificationQueue(h.Queue))
		}
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		config: cfg,
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
