package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/petokpredict/server/internal/config"
	"github.com/petokpredict/server/internal/repository/mongodb"
	"github.com/petokpredict/server/internal/repository/sheets"
	"github.com/petokpredict/server/internal/scheduler"
	"github.com/petokpredict/server/internal/server/handlers"
	"github.com/petokpredict/server/internal/server/router"
	calibrationsvc "github.com/petokpredict/server/internal/service/calibration"
	dashboardsvc "github.com/petokpredict/server/internal/service/dashboard"
	historysvc "github.com/petokpredict/server/internal/service/history"
	marketsvc "github.com/petokpredict/server/internal/service/market"
	"github.com/petokpredict/server/pkg/clients/groq"
	marketclient "github.com/petokpredict/server/pkg/clients/market"
	"github.com/petokpredict/server/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	// The sheet mirror is optional; history works without it.
	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	} else {
		baseLogger.Info("google sheets not configured, audit mirror disabled")
	}

	// Initialize AI Client
	var adviceClient groq.Client
	if cfg.AI.GroqKey != "" {
		adviceClient = groq.NewClient(cfg.AI.GroqKey, cfg.AI.GroqModel)
		baseLogger.Info("groq advisor client enabled")
	} else {
		baseLogger.Warn("groq api key missing, ai advisor disabled")
	}

	calibrationSvc := calibrationsvc.NewService(mongoRepo, adviceClient, cfg.Server.InstallationID, baseLogger.Named("svc.calibration"))
	calibrationSvc.Load(context.Background())

	marketSvc := marketsvc.NewService(marketclient.NewClient(), baseLogger.Named("svc.market"))

	dashboardSvc := dashboardsvc.NewService(calibrationSvc, marketSvc, baseLogger.Named("svc.dashboard"))
	dashboardSvc.Start()
	defer dashboardSvc.Stop()

	var sheetLogger historysvc.SheetLogger
	if sheetsRepo != nil {
		sheetLogger = sheetsRepo
	}
	historySvc := historysvc.NewService(mongoRepo, sheetLogger, baseLogger.Named("svc.history"))

	calculatorHandler := handlers.NewCalculatorHandler(dashboardSvc, marketSvc, baseLogger.Named("handlers.calculator"))
	settingsHandler := handlers.NewSettingsHandler(calibrationSvc, dashboardSvc, baseLogger.Named("handlers.settings"))
	historyHandler := handlers.NewHistoryHandler(historySvc, dashboardSvc, calibrationSvc, marketSvc, baseLogger.Named("handlers.history"))
	engine := router.New(calculatorHandler, settingsHandler, historyHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(cfg.Pricing, marketSvc, dashboardSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	// Warm the price cache so the first dashboard compute has a quote.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		marketSvc.RefreshAll(ctx)
		dashboardSvc.Invalidate()
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
