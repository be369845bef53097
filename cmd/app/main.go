package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/docs"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/checkout"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/config"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/db"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/gateway"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/logger"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/metering"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/notify"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/reconcile"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/server"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/subscription"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/transaction"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/user"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/wallet"
)

// @title UMKM Kit Studio Billing API
// @version 1.0
// @description Plan checkout, payment gateway callbacks and credit metering.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()
	logger.Info("Starting billing service")

	if !cfg.Gateway.Configured() {
		logger.Warn("Payment gateway credentials missing, paid checkouts are disabled")
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	notifier := notify.New(notify.Config{
		From:          cfg.EmailFrom,
		FromName:      cfg.EmailFromName,
		SMTPHost:      cfg.SMTPHost,
		SMTPPort:      cfg.SMTPPort,
		SMTPUser:      cfg.SMTPUser,
		SMTPPass:      cfg.SMTPPass,
		OperatorEmail: cfg.OperatorEmail,
	}, rdb)
	defer notifier.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.Start(ctx)

	transactions := transaction.NewRepository(database)
	subscriptions := subscription.NewRepository(database)
	profiles := user.NewRepository(database)
	ledger := wallet.NewService(wallet.NewRepository(database))

	gw := gateway.NewClient(cfg.Gateway)
	channels := gateway.NewChannelCache(gw, cfg.Gateway.ChannelTTL)

	checkoutSvc := checkout.NewService(gw, channels, transactions, profiles, cfg.Gateway, cfg.Checkout)
	reconcileSvc := reconcile.NewService(database, gw, transactions, subscriptions, profiles, notifier, cfg.Gateway)

	srv := server.New(cfg, server.Handlers{
		Checkout:     checkout.NewHandler(checkoutSvc),
		Reconcile:    reconcile.NewHandler(reconcileSvc),
		Wallet:       wallet.NewHandler(ledger),
		Metering:     metering.NewHandler(metering.NewPipeline(ledger)),
		Subscription: subscription.NewHandler(subscriptions),
		Channels:     gateway.NewHandler(channels),
		Queue:        notifier,
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
