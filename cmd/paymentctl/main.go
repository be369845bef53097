package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/config"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/db"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/gateway"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/logger"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/notify"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/reconcile"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/subscription"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/transaction"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/user"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/wallet"
)

var Version = "dev"

func main() {
	if err := newRootCmd(connect).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect wires the same services the API server uses.
func connect(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

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

	gw := gateway.NewClient(cfg.Gateway)
	transactions := transaction.NewRepository(database)

	return &deps{
		reconciler: reconcile.NewService(
			database, gw, transactions,
			subscription.NewRepository(database),
			user.NewRepository(database),
			notifier, cfg.Gateway,
		),
		channels: gw,
		ledger:   wallet.NewService(wallet.NewRepository(database)),
		close: func() {
			notifier.Close()
			database.Close()
		},
	}, nil
}
