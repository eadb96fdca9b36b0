package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appdoc "github.com/kitcha/docrender/internal/application/document"
	"github.com/kitcha/docrender/internal/domain/document"
	"github.com/kitcha/docrender/internal/infrastructure/config"
	"github.com/kitcha/docrender/internal/infrastructure/logger"
	"github.com/kitcha/docrender/internal/infrastructure/persistence"
	"github.com/kitcha/docrender/internal/infrastructure/printing"
	"github.com/kitcha/docrender/internal/infrastructure/scheduler"
	"github.com/kitcha/docrender/internal/infrastructure/storage"
	"github.com/kitcha/docrender/internal/infrastructure/telemetry"
	"github.com/kitcha/docrender/internal/interfaces/http/handler"
	"github.com/kitcha/docrender/internal/interfaces/http/middleware"
	"github.com/kitcha/docrender/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Document Render API
//	@version		1.0
//	@description	Renders boards into single-page PDF documents
//	@BasePath		/api/v1

func main() {
	var renderID int64
	flag.Int64Var(&renderID, "render", 0, "Render the board with this ID synchronously, print the job and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}

	// Mirror logs to OTLP when enabled
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, cfg.Telemetry.LogsEnabled, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	log := logProvider.Bridge(baseLog)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting document renderer",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetryCfg, cfg.Telemetry.MetricsEnabled, cfg.Telemetry.MetricsInterval, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	renderMetrics, err := telemetry.NewRenderMetrics(meterProvider.Meter(telemetry.TracerName))
	if err != nil {
		log.Fatal("Failed to create render metrics", zap.Error(err))
	}

	// Database with zap-backed GORM logger and query tracing
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBName:     cfg.Database.DBName,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Object storage
	objects, err := storage.New(ctx, &cfg.Storage, log.Named("storage"))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	if s3Store, ok := objects.(*storage.S3ObjectStorage); ok && cfg.Storage.EnsureBucket {
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err), zap.String("bucket", cfg.Storage.Bucket))
		}
	}

	// Fonts and background are loaded once and shared by every render
	pool, err := printing.LoadResources(ctx, printing.ResourceConfig{
		TitleFont:  cfg.Render.TitleFont,
		BodyFont:   cfg.Render.BodyFont,
		Background: cfg.Render.Background,
	}, log)
	if err != nil {
		log.Fatal("Failed to load render resources", zap.Error(err))
	}
	composer, err := printing.NewPageComposer(pool, printing.ComposerConfig{
		PageWidth:  cfg.Render.PageWidth,
		PageHeight: cfg.Render.PageHeight,
		Creator:    cfg.App.Name,
		Logger:     log.Named("composer"),
	})
	if err != nil {
		log.Fatal("Failed to create page composer", zap.Error(err))
	}
	documentStore, err := printing.NewDocumentStore(objects,
		persistence.NewGormDocumentMetadataRepository(db.DB),
		&printing.DocumentStoreConfig{Logger: log.Named("store")})
	if err != nil {
		log.Fatal("Failed to create document store", zap.Error(err))
	}
	records := persistence.NewGormRecordRepository(db.DB)

	if renderID > 0 {
		service := appdoc.NewService(records, composer, documentStore, log.Named("render"),
			appdoc.WithMetrics(renderMetrics))
		code := renderOnce(ctx, service, renderID, cfg.Render.JobTimeout, log)
		shutdownTelemetry(ctx, log, meterProvider, tracerProvider, logProvider)
		_ = db.Close()
		_ = log.Sync()
		os.Exit(code)
	}

	// The queue and the service reference each other; the executor closes over service
	var service *appdoc.Service
	queue, err := scheduler.NewRenderQueue(scheduler.QueueConfig{
		Workers:    cfg.Render.Workers,
		QueueSize:  cfg.Render.QueueSize,
		JobTimeout: cfg.Render.JobTimeout,
	}, scheduler.JobExecutorFunc(func(ctx context.Context, job *document.RenderJob) error {
		return service.Execute(ctx, job)
	}), log.Named("queue"))
	if err != nil {
		log.Fatal("Failed to create render queue", zap.Error(err))
	}
	service = appdoc.NewService(records, composer, documentStore, log.Named("render"),
		appdoc.WithQueue(queue),
		appdoc.WithMetrics(renderMetrics))

	if err := queue.Start(ctx); err != nil {
		log.Fatal("Failed to start render queue", zap.Error(err))
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(
		middleware.TracingWithConfig(middleware.TracingConfig{
			Enabled:     cfg.Telemetry.Enabled,
			ServiceName: cfg.Telemetry.ServiceName,
		}),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.TracingAttributeInjector(),
		middleware.SpanErrorMarker(),
		middleware.Secure(),
	)

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, db)
	health := router.NewDomainGroup("health", "").GET("/health", systemHandler.Health)
	systemRoutes := router.NewDomainGroup("system", "/system").GET("/info", systemHandler.GetSystemInfo)

	routes := router.NewRouter(engine).
		RegisterRoot(health).
		Register(handler.DocumentRoutes(handler.NewDocumentHandler(service))).
		Register(systemRoutes)
	routes.Setup()
	for _, route := range routes.Routes() {
		log.Debug("Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	// Stop accepting jobs, then let in-flight renders finish
	if err := queue.Stop(shutdownCtx); err != nil {
		log.Warn("Render queue did not drain before shutdown", zap.Error(err), zap.Int("pending", queue.Pending()))
	}
	shutdownTelemetry(shutdownCtx, log, meterProvider, tracerProvider, logProvider)

	log.Info("Server exited gracefully")
}

// renderOnce renders a single board inline and prints the finished job as JSON
func renderOnce(ctx context.Context, service *appdoc.Service, ownerID int64, timeout time.Duration, log *zap.Logger) int {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	job, err := service.RenderSync(ctx, ownerID)
	if job != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(job)
	}
	if err != nil {
		log.Error("Render failed", zap.Int64("owner_id", ownerID), zap.Error(err))
		return 1
	}
	return 0
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func shutdownTelemetry(ctx context.Context, log *zap.Logger, providers ...shutdowner) {
	for _, p := range providers {
		if err := p.Shutdown(ctx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}
}
