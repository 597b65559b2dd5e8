package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet_searcher/internal/app/service"
	jupiter "wallet_searcher/internal/client"
	"wallet_searcher/internal/config"
	"wallet_searcher/internal/infrastructure/addressloader"
	"wallet_searcher/internal/infrastructure/chain"
	"wallet_searcher/internal/infrastructure/restapi"
	"wallet_searcher/internal/infrastructure/settings"
	"wallet_searcher/internal/pkg/logger"
	"wallet_searcher/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const configPath = "config/config.yml"

func main() {
	// .env необязателен: переменные окружения могут прийти и напрямую.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Основной zap логгер; уровень определяет и режим Gin.
	var zapLogger *zap.Logger
	var errLog error
	if cfg.Logging.Level == "debug" {
		zapLogger = zap.Must(zap.NewDevelopment())
	} else {
		gin.SetMode(gin.ReleaseMode)
		zapLogger, errLog = zap.NewProduction()
		if errLog != nil {
			fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", errLog)
			os.Exit(1)
		}
	}
	defer zapLogger.Sync()

	// Пакетный slog логгер пишет через zap (samber/slog-zap адаптер).
	slogLevel := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}
	slogHandler := slogzap.Option{
		Level:  slogLevel,
		Logger: zapLogger,
	}.NewZapHandler()
	logger.SetHandler(slogHandler)

	logger.Info("Wallet searcher starting...")

	appLogger := logger.NewSlogAdapter()

	metrics.MustRegisterMetrics()

	// RPC_URL из окружения имеет приоритет над конфигом.
	if envURL := os.Getenv("RPC_URL"); envURL != "" {
		cfg.RPC.Endpoint = envURL
		logger.Info("RPC endpoint taken from environment", "url", envURL)
	}

	clientFactory := chain.NewClientFactory(cfg.RPC.RateLimit, cfg.RPC.BurstLimit, zapLogger)
	settingsStore := settings.NewStore(
		cfg.RPC.Endpoint,
		clientFactory,
		time.Duration(cfg.RPC.ProbeTimeoutMs)*time.Millisecond,
		zapLogger,
	)

	addressFileLoader := addressloader.NewAddressFileLoader(appLogger.Info)
	addressService := service.NewAddressService(addressFileLoader, appLogger)

	jupiterClient := jupiter.NewJupiterClient(
		cfg.Jupiter.BaseURL,
		time.Duration(cfg.Jupiter.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	priceService := service.NewPriceService(jupiterClient, cfg.Jupiter.SlippageBps, appLogger)

	metadataService := service.NewMetadataService(settingsStore, appLogger)

	tokenPolicy := service.SchedulingPolicy{
		InterStepDelay:   time.Duration(cfg.Search.InterStepDelayMs) * time.Millisecond,
		InterWalletDelay: time.Duration(cfg.Search.InterWalletDelayMs) * time.Millisecond,
	}
	nftPolicy := service.SchedulingPolicy{
		InterWalletDelay: time.Duration(cfg.Search.NFTInterWalletDelayMs) * time.Millisecond,
	}

	tokenService := service.NewTokenService(
		settingsStore,
		metadataService,
		priceService,
		appLogger,
		cfg.Search.MinTokenAmount,
		cfg.Search.MinUSDCValue,
		tokenPolicy,
	)
	nftService := service.NewNFTService(settingsStore, metadataService, appLogger)

	resultStore := restapi.NewResultStore()
	batchService := service.NewBatchService(
		addressService,
		tokenService,
		nftService,
		settingsStore,
		resultStore,
		appLogger,
		tokenPolicy,
		nftPolicy,
	)

	searchHandler := restapi.NewSearchHandler(batchService, settingsStore, resultStore, appLogger)
	router := restapi.SetupRouter(searchHandler, zapLogger, restapi.RouterOptions{
		SwaggerEnabled:  cfg.Swagger.Enabled,
		SwaggerSpecPath: cfg.Swagger.Path,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("Service terminated with error", "error", err)
	}
	logger.Info("Wallet searcher stopped.")
}
