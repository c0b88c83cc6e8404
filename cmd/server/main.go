package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/jobdeck/backend/api/handler"
	"github.com/jobdeck/backend/internal/config"
	"github.com/jobdeck/backend/internal/infrastructure/counter"
	"github.com/jobdeck/backend/internal/infrastructure/monitor"
	pgInfra "github.com/jobdeck/backend/internal/infrastructure/postgres"
	redisInfra "github.com/jobdeck/backend/internal/infrastructure/redis"
	"github.com/jobdeck/backend/internal/middleware"
	"github.com/jobdeck/backend/internal/router"
	"github.com/jobdeck/backend/internal/services"
	"github.com/jobdeck/backend/internal/services/lifecycle"
	"github.com/jobdeck/backend/pkg/httpcontext"
	"github.com/jobdeck/backend/pkg/logger"
	"github.com/jobdeck/backend/pkg/token"
	"github.com/jobdeck/backend/repository/postgres"
	redisRepo "github.com/jobdeck/backend/repository/redis"
	appUC "github.com/jobdeck/backend/usecase/application"
	authUC "github.com/jobdeck/backend/usecase/auth"
	jobUC "github.com/jobdeck/backend/usecase/job"
	messageUC "github.com/jobdeck/backend/usecase/message"
	profileUC "github.com/jobdeck/backend/usecase/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	counterStore, err := counter.Open(cfg.Counter.Path, "views")
	if err != nil {
		zapLogger.Fatal("failed to open view spool", zap.Error(err))
	}
	manager.Register("counter", func(ctx context.Context) error {
		return counterStore.Close()
	})

	mon := monitor.New(pool, redisClient, counterStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	applicationRepo := postgres.NewApplicationRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	profileCache := redisRepo.NewProfileCache(redisClient, cfg.Cache.ProfileTTL)

	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)

	viewFlusher := services.NewViewFlusher(counterStore, mon, jobRepo, zapLogger,
		services.FlusherConfig{Interval: cfg.Counter.FlushInterval})
	viewFlusher.Start()
	manager.Register("view_flusher", func(ctx context.Context) error {
		viewFlusher.Stop(ctx)
		return nil
	})

	authUseCase := authUC.New(userRepo, tokens, zapLogger)
	jobUseCase := jobUC.New(jobRepo, applicationRepo, userRepo, viewFlusher, zapLogger)
	applicationUseCase := appUC.New(applicationRepo, jobRepo, userRepo, zapLogger)
	profileUseCase := profileUC.New(userRepo, profileCache, zapLogger)
	messageUseCase := messageUC.New(messageRepo, userRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:        apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Job:         apiHandler.NewJobHandler(jobUseCase, ctxAdapter, zapLogger),
		Application: apiHandler.NewApplicationHandler(applicationUseCase, ctxAdapter, zapLogger),
		Profile:     apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Message:     apiHandler.NewMessageHandler(messageUseCase, ctxAdapter, zapLogger),
		Health:      apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.Auth(tokens, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
