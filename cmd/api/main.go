package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/helpdesk-hq/helpdesk-api/internal/api"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/service"
	"github.com/helpdesk-hq/helpdesk-api/internal/infrastructure/config"
	mongodb "github.com/helpdesk-hq/helpdesk-api/internal/infrastructure/db/mongo"
	redisdb "github.com/helpdesk-hq/helpdesk-api/internal/infrastructure/db/redis"
	apphttp "github.com/helpdesk-hq/helpdesk-api/internal/infrastructure/http"
	"github.com/helpdesk-hq/helpdesk-api/internal/infrastructure/http/handlers"
	"github.com/helpdesk-hq/helpdesk-api/pkg/logger"

	_ "github.com/helpdesk-hq/helpdesk-api/docs"
)

// @title                       Helpdesk API
// @version                     1.0
// @description                 Ticketing backend: users open tickets, agents answer them.
// @BasePath                    /
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        access_token
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "helpdesk-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	agentRepo := mongodb.NewAgentRepository(db)
	ticketRepo := mongodb.NewTicketRepository(db)
	if err := mongodb.EnsureIndexes(ctx, agentRepo, ticketRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	sessions := service.NewSessionManager(cfg.JWTSecret, cfg.Session.TTL)
	agents := service.NewAgentService(
		agentRepo,
		service.NewPasswordHasher(cfg.Session.BcryptCost),
		sessions,
		redisdb.NewSigninLimiter(rdb, cfg.Signin.MaxAttempts, cfg.Signin.Window),
		logger.Component("agents"),
	)
	tickets := service.NewTicketService(ticketRepo, logger.Component("tickets"))

	e := api.NewRouter(api.Dependencies{
		Agents:   agents,
		Tickets:  tickets,
		Sessions: sessions,
		Health: map[string]handlers.Pinger{
			"mongodb": handlers.MongoPinger(db),
			"redis":   handlers.RedisPinger(rdb),
		},
		CookieSecure: cfg.Session.CookieSecure,
		Logger:       logger.Component("http"),
	})

	if err := apphttp.Serve(ctx, e, ":"+cfg.Port, log); err != nil {
		log.Error().Err(err).Msg("http server stopped")
		return
	}
	log.Info().Msg("bye")
}
