package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	apppurchase "transaction-risk-engine/internal/application/purchase"
	apprisk "transaction-risk-engine/internal/application/risk"
	"transaction-risk-engine/internal/domain/purchase"
	"transaction-risk-engine/internal/domain/risk"
	"transaction-risk-engine/internal/infrastructure/database/postgres"
	"transaction-risk-engine/internal/infrastructure/history/memory"
	redishistory "transaction-risk-engine/internal/infrastructure/history/redis"
	"transaction-risk-engine/internal/infrastructure/http/router"
	"transaction-risk-engine/internal/infrastructure/ml"
	"transaction-risk-engine/internal/interfaces/http/handler"
	"transaction-risk-engine/internal/pkg/config"
	"transaction-risk-engine/internal/pkg/logger"
	"transaction-risk-engine/internal/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	metrics.Register()

	// Storage wiring. Redis and Postgres both degrade gracefully; the
	// decision engine itself is the only hard startup requirement.
	var (
		historyStore purchase.HistoryStore
		purchaseRepo purchase.Repository
		redisHealth  handler.HealthChecker
		dbHealth     handler.HealthChecker
		verdictRepo  risk.VerdictRepository
	)

	if cfg.Redis.Enabled {
		redisClient, err := redishistory.NewClient(redishistory.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.Warn("redis unavailable, using in-memory history", zap.Error(err))
		} else {
			defer redisClient.Close()
			historyStore = redishistory.NewHistoryStore(redisClient)
			purchaseRepo = redishistory.NewPurchaseRepository(redisClient)
			redisHealth = redisClient
		}
	}
	if historyStore == nil {
		historyStore = memory.NewStore()
		purchaseRepo = memory.NewRepository()
	}

	if cfg.Database.Enabled {
		dbClient, err := postgres.NewClient(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Name:            cfg.Database.Name,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			log.Warn("database unavailable, verdicts will not be persisted", zap.Error(err))
		} else {
			defer dbClient.Close()
			if err := dbClient.Migrate(); err != nil {
				log.Fatal("database migration failed", zap.Error(err))
			}
			verdictRepo = postgres.NewVerdictRepository(dbClient)
			dbHealth = dbClient
		}
	}

	// Model training is deterministic and fast; a failure here means the
	// service could never produce a real verdict, so it refuses to start.
	encoder := ml.NewEncoder(cfg.Risk.MaxAssumedAmount, cfg.Risk.IncludeUnusualPatternFeature)
	classifier, err := ml.NewTrainedClassifier(encoder)
	if err != nil {
		log.Fatal("classifier training failed", zap.Error(err))
	}

	engine, err := risk.NewDecisionEngine(
		historyStore,
		risk.NewHistoryAnalyzer(),
		encoder,
		classifier,
		cfg.Risk.Thresholds(),
		log,
	)
	if err != nil {
		log.Fatal("decision engine construction failed", zap.Error(err))
	}

	analyzeUC := apprisk.NewAnalyzePurchaseUseCase(engine, verdictRepo, log, cfg.Risk.DecisionTimeout)
	processUC := apppurchase.NewProcessPurchaseUseCase(engine, historyStore, purchaseRepo, verdictRepo, log, cfg.Risk.DecisionTimeout)

	rt := router.New(
		handler.NewPurchaseHandler(processUC, log),
		handler.NewRiskHandler(analyzeUC, log),
		handler.NewHealthHandler(engine, redisHealth, dbHealth),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      rt,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
