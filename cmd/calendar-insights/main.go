package main

import (
	"context"
	"crypto/rand"
	"log"
	"net/http"
	"time"

	"github.com/mpetrenko/calendar-insights-backend/internal/api"
	"github.com/mpetrenko/calendar-insights-backend/internal/business/report"
	sync_service "github.com/mpetrenko/calendar-insights-backend/internal/business/sync"
	"github.com/mpetrenko/calendar-insights-backend/internal/config"
	"github.com/mpetrenko/calendar-insights-backend/internal/database"
	"github.com/mpetrenko/calendar-insights-backend/internal/database/credentials"
	"github.com/mpetrenko/calendar-insights-backend/internal/database/event"
	"github.com/mpetrenko/calendar-insights-backend/internal/database/user"
	"github.com/mpetrenko/calendar-insights-backend/internal/pkg/jwt"
	"github.com/mpetrenko/calendar-insights-backend/internal/pkg/oauth"
	"github.com/mpetrenko/calendar-insights-backend/internal/redis"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	jwts := jwt.NewManger(config.Secret(), config.JwtTTL())
	tokenParser := oauth.NewParser(config.ClientSecretPath(), config.ClientType(), config.RedirectURL())

	consentFlow, err := oauth.NewFlow(config.ClientSecretPath(), config.ClientType(), config.RedirectURL())
	if err != nil {
		logger.Fatalw("unable to initialize consent flow", "err", err)
	}

	redisPool := redis.NewRedisPool(logger)
	refreshTokens := redis.NewRefreshTokenRepository(redisPool, logger)
	go cleanupSessions(ctx, logger, refreshTokens)

	db, err := database.NewPGX(ctx, config.PostgresURL())
	if err != nil {
		logger.Fatalw("unable to initialize db", "err", err)
	}
	usersRepository := user.NewRepository()
	eventsRepository := event.NewRepository()
	credentialsRepository := credentials.NewRepository()

	reportsService := report.NewService(db, eventsRepository)
	syncService := sync_service.NewService(db, logger, eventsRepository, usersRepository, credentialsRepository, consentFlow, config.SyncPageSize())

	api, err := api.NewApi(
		logger,
		rand.Reader,
		config.SessionTokenLength(),
		jwts,
		tokenParser,
		refreshTokens,
		consentFlow,
		db,
		usersRepository,
		credentialsRepository,
		reportsService,
		syncService,
	)
	if err != nil {
		logger.Fatalw("unable to initialize api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	logger.Infow("Started server", "port", config.Port())
	logger.Fatalw("server error", "err", server.ListenAndServe())
}

func cleanupSessions(ctx context.Context, logger *zap.SugaredLogger, refreshTokens *redis.RefreshTokenRepository) {
	ticker := time.NewTicker(config.SessionCleanupPeriod())
	done := make(chan bool)

	closer.Bind(func() {
		done <- true
		ticker.Stop()
	})

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := refreshTokens.DeleteExpired(ctx); err != nil {
				logger.Errorw("failed to cleanup sessions", "err", err)
			}
		}
	}
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
