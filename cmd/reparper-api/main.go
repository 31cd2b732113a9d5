package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reparper/reparper/internal/assets"
	"github.com/reparper/reparper/internal/catalog"
	"github.com/reparper/reparper/internal/config"
	"github.com/reparper/reparper/internal/reportcards"
	"github.com/reparper/reparper/pkg/formdoc"
	"github.com/reparper/reparper/pkg/storage"
)

func main() {
	// Load .env if present; real deployments set environment variables.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	// Only build an S3 client when some asset actually lives in S3; the
	// default asset URLs are plain HTTPS.
	var s3Client storage.S3Client
	if usesS3(cfg.Assets) {
		s3Client, err = storage.NewS3Client(context.Background())
		if err != nil {
			logger.Fatal("Failed to initialize S3 client", zap.Error(err))
		}
	}

	fetcher := assets.NewFetcher(cfg.Assets, s3Client, logger)

	store, err := reportcards.NewRunStore(cfg.Processing.RunTTL, cfg.Processing.CleanupSchedule, logger)
	if err != nil {
		logger.Fatal("Invalid cleanup schedule", zap.Error(err))
	}
	store.Start()
	defer store.Stop()

	service := reportcards.NewService(cfg.Processing, catalog.Default(), fetcher, formdoc.PDFCPULoader, store, logger)
	handler := reportcards.NewHandler(service, store, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = 16 << 20

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api/v1")
	{
		handler.RegisterRoutes(api)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func usesS3(cfg config.AssetsConfig) bool {
	urls := []string{cfg.RegularFontURL, cfg.BoldFontURL, cfg.TitleFontURL}
	for _, u := range cfg.TemplateURLs {
		urls = append(urls, u)
	}
	for _, u := range urls {
		if strings.HasPrefix(u, "s3://") {
			return true
		}
	}
	return false
}
