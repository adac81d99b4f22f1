package app

import (
	"context"
	"net/http"

	"pawtrails/internal/auth"
	"pawtrails/internal/config"
	"pawtrails/internal/db"
	dashboarddomain "pawtrails/internal/domain/dashboard"
	locationdomain "pawtrails/internal/domain/location"
	petdomain "pawtrails/internal/domain/pet"
	reviewdomain "pawtrails/internal/domain/review"
	tagdomain "pawtrails/internal/domain/tag"
	userdomain "pawtrails/internal/domain/user"
	dashboardrepo "pawtrails/internal/repository/neo4j/dashboard"
	locationrepo "pawtrails/internal/repository/neo4j/location"
	petrepo "pawtrails/internal/repository/neo4j/pet"
	reviewrepo "pawtrails/internal/repository/neo4j/review"
	tagrepo "pawtrails/internal/repository/neo4j/tag"
	userrepo "pawtrails/internal/repository/neo4j/user"
	"pawtrails/internal/transport/httpserver"
	"pawtrails/internal/transport/httpserver/handler"
	authmw "pawtrails/internal/transport/httpserver/middleware"
	"pawtrails/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *db.Client
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: connecting to neo4j", "uri", cfg.Neo4j.URI)
	client, err := db.NewNeo4j(ctx, cfg.Neo4j, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying schema constraints")
	if err := client.ApplySchema(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewNeo4j(client))
	pets := petdomain.NewService(petrepo.NewNeo4j(client))
	locations := locationdomain.NewService(locationrepo.NewNeo4j(client))
	reviews := reviewdomain.NewService(reviewrepo.NewNeo4j(client))
	tags := tagdomain.NewService(tagrepo.NewNeo4j(client))
	dashboard := dashboarddomain.NewService(dashboardrepo.NewNeo4j(client))

	tokens := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	handlers := handler.New(users, pets, locations, reviews, tags, dashboard, tokens, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, authmw.NewAuth(tokens, users, log))

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         client,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return a.db.Close(ctx)
}
