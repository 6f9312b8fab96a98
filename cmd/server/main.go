package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	boardapp "github.com/taskboard/backend/internal/application/board"
	identityapp "github.com/taskboard/backend/internal/application/identity"
	"github.com/taskboard/backend/internal/infrastructure/auth"
	"github.com/taskboard/backend/internal/infrastructure/config"
	"github.com/taskboard/backend/internal/infrastructure/logger"
	"github.com/taskboard/backend/internal/infrastructure/persistence"
	"github.com/taskboard/backend/internal/infrastructure/realtime"
	"github.com/taskboard/backend/internal/infrastructure/storage"
	"github.com/taskboard/backend/internal/infrastructure/telemetry"
	"github.com/taskboard/backend/internal/interfaces/http/handler"
	"github.com/taskboard/backend/internal/interfaces/http/middleware"
	"github.com/taskboard/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Taskboard Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
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

	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Redis backs the token blacklist and the realtime presence directory
	// when enabled; both fall back to in-process implementations.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	var blacklist auth.TokenBlacklist
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Attachment object storage
	var objectStorage boardapp.ObjectStorage
	switch cfg.Storage.Backend {
	case "s3":
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage ready",
			zap.String("backend", "s3"),
			zap.String("bucket", cfg.Storage.Bucket))
	default:
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Using in-memory object storage; attachments will not survive restarts")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	workspaceRepo := persistence.NewGormWorkspaceRepository(db.DB)
	boardRepo := persistence.NewGormBoardRepository(db.DB)
	listRepo := persistence.NewGormListRepository(db.DB)
	cardRepo := persistence.NewGormCardRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	workspaceService := boardapp.NewWorkspaceService(workspaceRepo, boardRepo, userRepo, activityRepo, log)
	boardService := boardapp.NewBoardService(workspaceRepo, boardRepo, listRepo, cardRepo, activityRepo, log)
	listService := boardapp.NewListService(workspaceRepo, boardRepo, listRepo, cardRepo, activityRepo, log)
	cardService := boardapp.NewCardService(workspaceRepo, boardRepo, listRepo, cardRepo, activityRepo, objectStorage, log)
	activityService := boardapp.NewActivityService(workspaceRepo, boardRepo, cardRepo, activityRepo, userRepo, log)

	// Realtime hub
	var directory realtime.Directory
	if cfg.Realtime.Directory == "redis" && redisClient != nil {
		directory = realtime.NewRedisDirectory(redisClient)
	} else {
		directory = realtime.NewInMemoryDirectory()
	}
	hub := realtime.NewHub(cfg.Realtime, directory, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	// The websocket route authenticates via query token inside its handler
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths,
		"/api/v1/ws",
		"/api/v1/system/ping",
		"/api/v1/system/info",
	)
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	systemHandler := handler.NewSystemHandler(db.DB)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewAuthHandler(authService, cfg.Cookie, cfg.JWT.RefreshTokenExpiration)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewWorkspaceHandler(workspaceService)).
		Register(handler.NewBoardHandler(boardService)).
		Register(handler.NewListHandler(listService)).
		Register(handler.NewCardHandler(cardService)).
		Register(handler.NewActivityHandler(activityService)).
		Register(handler.NewRealtimeHandler(jwtService, hub)).
		Register(systemHandler).
		Setup()

	server := &http.Server{
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	listener, port, err := listenWithFallback(cfg.App.Port, cfg.App.PortScanLimit, log)
	if err != nil {
		log.Fatal("Failed to bind server port", zap.Error(err))
	}

	go func() {
		log.Info("HTTP server listening", zap.Int("port", port))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}

// listenWithFallback binds the configured port, scanning successor ports when
// it is already taken. Useful in development where a crashed process can
// leave the port in TIME_WAIT.
func listenWithFallback(port, scanLimit int, log *zap.Logger) (net.Listener, int, error) {
	var lastErr error
	for candidate := port; candidate <= port+scanLimit; candidate++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", candidate))
		if err == nil {
			if candidate != port {
				log.Warn("Configured port unavailable, using fallback",
					zap.Int("configured", port),
					zap.Int("fallback", candidate))
			}
			return listener, candidate, nil
		}
		lastErr = err
	}
	return nil, 0, fmt.Errorf("no free port in range %d-%d: %w", port, port+scanLimit, lastErr)
}
