package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	mongoadapter "github.com/MateoKaloshi/MotoLine/internal/adapter/mongo"
	natsadapter "github.com/MateoKaloshi/MotoLine/internal/adapter/nats"
	redisadapter "github.com/MateoKaloshi/MotoLine/internal/adapter/redis"
	miniostorage "github.com/MateoKaloshi/MotoLine/internal/adapter/storage/minio"
	"github.com/MateoKaloshi/MotoLine/internal/app/config"
	"github.com/MateoKaloshi/MotoLine/internal/mailer"
	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/platform/metrics"
	httpserver "github.com/MateoKaloshi/MotoLine/internal/port/http"
	"github.com/MateoKaloshi/MotoLine/internal/port/http/handler"
	"github.com/MateoKaloshi/MotoLine/internal/port/http/router"
	"github.com/MateoKaloshi/MotoLine/internal/service"
)

type App struct {
	cfg         *config.Config
	log         logger.Logger
	server      *httpserver.Server
	publisher   *natsadapter.Publisher
	mongoClient *mongo.Client
	redisClient *redis.Client
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	logCfg := logger.ZapLoggerConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	}
	appLogger, err := logger.NewZapLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s", cfg.Env, cfg.HTTPServer.Port)

	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	appLogger.Info("MongoDB client initialized")

	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	appLogger.Info("Redis client initialized")

	publisher, err := natsadapter.NewPublisher(cfg.NATS, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize NATS publisher: %w", err)
	}
	appLogger.Info("NATS publisher initialized")

	storage, err := miniostorage.NewStorage(ctx, cfg.Minio, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	appLogger.Info("Object storage initialized")

	bikeRepo := mongoadapter.NewBikeRepository(mongoClient, cfg.MongoDB)
	imageRepo := mongoadapter.NewImageRepository(mongoClient, cfg.MongoDB)
	saleRepo := mongoadapter.NewSaleRepository(mongoClient, cfg.MongoDB)
	userRepo := mongoadapter.NewUserRepository(mongoClient, cfg.MongoDB)
	catalogRepo := mongoadapter.NewCatalogRepository(mongoClient, cfg.MongoDB)
	contactRepo := mongoadapter.NewContactRepository(mongoClient, cfg.MongoDB)
	tokenRepo := redisadapter.NewRevokedTokenRepository(redisClient)

	mail := mailer.NewSMTPMailer(cfg.SMTP)

	bikeService := service.NewBikeService(bikeRepo, imageRepo, saleRepo, userRepo, publisher, cfg.Uploads.PublicBaseURL, appLogger)
	saleService := service.NewSaleService(bikeRepo, saleRepo, userRepo, publisher, mail, appLogger)
	imageService := service.NewImageService(imageRepo, bikeRepo, storage, cfg.Uploads.PublicBaseURL, appLogger)
	catalogService := service.NewCatalogService(catalogRepo, appLogger)
	authService := service.NewAuthService(userRepo, tokenRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, appLogger)
	contactService := service.NewContactService(contactRepo, appLogger)

	metricsManager := metrics.NewManager(cfg.Metrics.Namespace)

	mux := router.New(router.Deps{
		Bikes:      handler.NewBikeHandler(bikeService, saleService, imageService, catalogService, metricsManager, appLogger),
		Images:     handler.NewImageHandler(imageService, metricsManager, appLogger),
		Auth:       handler.NewAuthHandler(authService, appLogger),
		Contact:    handler.NewContactHandler(contactService, appLogger),
		AuthMW:     authService,
		Metrics:    metricsManager,
		UploadsDir: cfg.Uploads.Dir,
		Log:        appLogger,
	})

	server := httpserver.NewServer(
		appLogger,
		cfg.HTTPServer.Port,
		cfg.HTTPServer.ReadTimeout,
		cfg.HTTPServer.WriteTimeout,
		cfg.HTTPServer.TimeoutGraceful,
		mux,
	)

	return &App{
		cfg:         cfg,
		log:         appLogger,
		server:      server,
		publisher:   publisher,
		mongoClient: mongoClient,
		redisClient: redisClient,
	}, nil
}

func (a *App) Run() {
	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server shutdown: %v", err)
	}

	a.publisher.Close()

	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.log.Errorf("Error disconnecting from MongoDB: %v", err)
	}
	if err := a.redisClient.Close(); err != nil {
		a.log.Errorf("Error closing Redis client: %v", err)
	}

	a.log.Info("Application stopped")
}
