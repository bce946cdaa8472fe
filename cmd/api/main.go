package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alfredoptarigan/ats-checker/internal/config"
	"alfredoptarigan/ats-checker/internal/handlers"
	"alfredoptarigan/ats-checker/internal/logger"
	"alfredoptarigan/ats-checker/internal/repositories"
	"alfredoptarigan/ats-checker/internal/services"
)

func main() {
	bootLog, err := logger.New(false, true)
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	cfg := config.Load(bootLog)
	_ = bootLog.Sync()

	zlog, err := logger.ForEnv(cfg.Server.Env, cfg.Server.Env == "development")
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("✅ Config loaded successfully")

	db, err := config.InitDatabase(cfg, zlog)
	if err != nil {
		zlog.Fatal("❌ Failed to initialize database", zap.Error(err))
	}

	var docRepo repositories.DocumentRepository
	var documentHandler *handlers.DocumentHandler
	if db != nil {
		docRepo = repositories.NewDocumentRepository(db)
		documentHandler = handlers.NewDocumentHandler(docRepo)
		zlog.Info("✅ Repositories initialized successfully")
	}

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if cfg.Storage.KeepUploads {
		if err := storageService.EnsureUploadDir(); err != nil {
			zlog.Fatal("❌ Failed to create upload directory", zap.Error(err))
		}
	}

	dictionary := services.DefaultDictionary()
	if cfg.Scoring.DictionaryPath != "" {
		dictionary, err = services.LoadDictionaryFile(cfg.Scoring.DictionaryPath)
		if err != nil {
			zlog.Fatal("❌ Failed to load spelling dictionary", zap.Error(err))
		}
	}
	zlog.Info("✅ Spelling dictionary loaded", zap.Int("words", dictionary.Len()))

	scorer := services.NewScorer(dictionary, services.WithBulletMarker(cfg.Scoring.BulletMarker))
	atsService := services.NewATSService(services.NewExtractorRegistry(), scorer)
	zlog.Info("✅ Services initialized successfully")

	uploadHandler := handlers.NewUploadHandler(
		atsService,
		storageService,
		docRepo,
		zlog,
		cfg.Storage.MaxFileSize,
		cfg.Storage.KeepUploads,
	)

	app := handlers.NewApp(handlers.ServerOptions{
		AppName:        "ATS Resume Checker API",
		AllowedOrigins: cfg.Server.Origins(),
		BodyLimit:      int(cfg.Storage.MaxFileSize) + 1<<20,
		AccessLog:      true,
	}, uploadHandler, documentHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zlog.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("❌ Failed to start server", zap.Error(err))
	}
}
