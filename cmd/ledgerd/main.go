package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/nft-ledger/internal/adapter"
	"github.com/feral-file/nft-ledger/internal/api/middleware"
	"github.com/feral-file/nft-ledger/internal/api/server"
	"github.com/feral-file/nft-ledger/internal/broadcaster"
	"github.com/feral-file/nft-ledger/internal/config"
	"github.com/feral-file/nft-ledger/internal/domain"
	"github.com/feral-file/nft-ledger/internal/ledger"
	"github.com/feral-file/nft-ledger/internal/logger"
	"github.com/feral-file/nft-ledger/internal/providers/jetstream"
	"github.com/feral-file/nft-ledger/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadLedgerdConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ledgerd",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting NFT ownership ledger")

	// The ledger's own identity; never a valid recipient
	ledgerAddress, err := domain.ParseIdentity(cfg.Ledger.Address)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid ledger address", zap.Error(err), zap.String("address", cfg.Ledger.Address))
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	// Migrate journal schema
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize the provenance journal
	dataStore := store.NewPGStore(db)

	// Connect to NATS JetStream
	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		SubjectPrefix:  cfg.NATS.SubjectPrefix,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), adapter.NewJSON())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))

	// Resume point for downstream consumers, logged for ops visibility
	if latest, err := dataStore.LatestEventID(ctx); err == nil && latest != "" {
		logger.InfoCtx(ctx, "Provenance journal cursor", zap.String("latest_event_id", latest))
	}

	// Wire the broadcaster between the ledger and its consumers
	bc := broadcaster.New(publisher, dataStore, broadcaster.Config{
		QueueSize:       cfg.Broadcaster.QueueSize,
		JournalWorkers:  cfg.Broadcaster.JournalWorkers,
		MaxRetryElapsed: cfg.Broadcaster.MaxRetryElapsed,
	})
	defer bc.Close()

	// Create the ledger core
	ledgerCore := ledger.New(ledger.Config{
		Address: ledgerAddress,
	}, adapter.NewClock(), bc)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, ledgerCore, dataStore)

	errCh := make(chan error, 2)
	go func() {
		if err := bc.Run(ctx); err != nil && ctx.Err() == nil {
			errCh <- err
		}
	}()
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "ledgerd"))
	case <-publisher.CloseChan():
		logger.Error(fmt.Errorf("NATS connection closed permanently"))
	}
	cancel()

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("Ledger stopped")
}
