package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/mandi/backend/internal/application/billing"
	identityapp "github.com/mandi/backend/internal/application/identity"
	ledgerapp "github.com/mandi/backend/internal/application/ledger"
	"github.com/mandi/backend/internal/infrastructure/auth"
	"github.com/mandi/backend/internal/infrastructure/config"
	"github.com/mandi/backend/internal/infrastructure/logger"
	"github.com/mandi/backend/internal/infrastructure/persistence"
	"github.com/mandi/backend/internal/interfaces/http/handler"
	"github.com/mandi/backend/internal/interfaces/http/middleware"
	"github.com/mandi/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting mandi backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := blacklist.Close(); err != nil {
			log.Error("Error closing redis", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	jwtService := auth.NewJWTService(cfg.JWT)
	txManager := persistence.NewGormTxManager(db.DB)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	merchantRepo := persistence.NewGormMerchantRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	incomeRepo := persistence.NewGormIncomeRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	billItemRepo := persistence.NewGormBillItemRepository(db.DB)

	// Application services
	balanceService := ledgerapp.NewBalanceService(merchantRepo, billItemRepo, transactionRepo)
	merchantService := ledgerapp.NewMerchantService(merchantRepo, transactionRepo, billItemRepo, balanceService, txManager)
	creditService := ledgerapp.NewCreditService(merchantRepo, transactionRepo, balanceService, txManager)
	incomeService := ledgerapp.NewIncomeService(incomeRepo)
	billService := billingapp.NewBillService(billRepo, merchantRepo, incomeRepo, balanceService, txManager)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)

	// HTTP engine
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.CORS(middleware.CORSConfigFromHTTP(cfg.HTTP)),
		logger.GinMiddleware(log),
	)

	jwtAuth := middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})

	r := router.NewRouter(engine, jwtAuth)
	r.Register(handler.NewAuthHandler(authService, jwtAuth))
	r.RegisterProtected(handler.NewBillHandler(billService))
	r.RegisterProtected(handler.NewMerchantHandler(merchantService, creditService))
	r.RegisterProtected(handler.NewIncomeHandler(incomeService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
