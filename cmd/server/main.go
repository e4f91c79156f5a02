package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/MauLang18/Cotizacion-CF/internal/auth"
	"github.com/MauLang18/Cotizacion-CF/internal/config"
	"github.com/MauLang18/Cotizacion-CF/internal/lookup"
	"github.com/MauLang18/Cotizacion-CF/internal/repository/mongodb"
	"github.com/MauLang18/Cotizacion-CF/internal/repository/sheets"
	"github.com/MauLang18/Cotizacion-CF/internal/scheduler"
	"github.com/MauLang18/Cotizacion-CF/internal/server/handlers"
	"github.com/MauLang18/Cotizacion-CF/internal/server/router"
	dashboardsvc "github.com/MauLang18/Cotizacion-CF/internal/service/dashboard"
	leadsvc "github.com/MauLang18/Cotizacion-CF/internal/service/leads"
	quotationsvc "github.com/MauLang18/Cotizacion-CF/internal/service/quotations"
	reportingsvc "github.com/MauLang18/Cotizacion-CF/internal/service/reporting"
	"github.com/MauLang18/Cotizacion-CF/pkg/clients/castrofallas"
	whatsappclient "github.com/MauLang18/Cotizacion-CF/pkg/clients/whatsapp"
	"github.com/MauLang18/Cotizacion-CF/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.NewWithFile(cfg.Logging.File))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	labels, err := lookup.Load(cfg.Dashboard.LookupDir)
	if err != nil {
		baseLogger.Fatal("failed to load lookup tables", zap.Error(err))
	}

	gateway := castrofallas.NewClient(cfg.API)
	maxUpload := cfg.Server.MaxUploadMB << 20

	dashboardSvc := dashboardsvc.NewService(gateway, labels, cfg.Dashboard, logger.Named(baseLogger, "svc.dashboard"))
	quotationSvc := quotationsvc.NewService(gateway, maxUpload, logger.Named(baseLogger, "svc.quotations"))
	leadSvc := leadsvc.NewService(gateway, maxUpload, logger.Named(baseLogger, "svc.leads"))
	reportingSvc := reportingsvc.NewService(dashboardSvc, cfg.Dashboard.Location(), logger.Named(baseLogger, "svc.reporting"))

	var (
		sinks   scheduler.Sinks
		history handlers.ReportHistory
	)

	if cfg.MongoDB.Enabled() {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sinks.Archive = mongoRepo
		history = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI missing, snapshot archive disabled")
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sinks.Sheet = sheetsRepo
	} else {
		baseLogger.Warn("GOOGLE_SHEET_DATABASE_ID missing, sheet export disabled")
	}

	if cfg.WhatsApp.Enabled() {
		sinks.Notifier = whatsappclient.NewClient(cfg.WhatsApp)
		baseLogger.Info("whatsapp daily summary enabled")
	}

	decoder := auth.NewDecoder(cfg.Auth.JWTSecret)
	if !decoder.Verifying() {
		baseLogger.Warn("AUTH_JWT_SECRET missing, tokens are not verified and writes are refused")
	}

	engine := router.New(router.Handlers{
		Dashboard: handlers.NewDashboardHandler(dashboardSvc, history, logger.Named(baseLogger, "handlers.dashboard")),
		Records:   handlers.NewRecordsHandler(gateway, quotationSvc, leadSvc, maxUpload, logger.Named(baseLogger, "handlers.records")),
	}, decoder, maxUpload, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, cfg.Dashboard.Location(), reportingSvc, sinks, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.API.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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
