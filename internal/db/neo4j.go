package db

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"pawtrails/internal/config"
	"pawtrails/pkg/logger"
)

// Client wraps the Neo4j driver together with the target database name.
// One Client is constructed at startup and handed to every repository.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewNeo4j(ctx context.Context, cfg config.Neo4jConfig, log logger.Logger) (*Client, error) {
	log.Info("db: connecting to neo4j", "uri", cfg.URI, "database", cfg.Database)

	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.User, cfg.Password, ""),
		func(conf *neo4j.Config) {
			conf.MaxConnectionPoolSize = cfg.MaxConnPoolSize
			conf.MaxConnectionLifetime = cfg.MaxConnLifetime
			conf.ConnectionAcquisitionTimeout = cfg.ConnAcquireTimeout
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	client := &Client{driver: driver, database: cfg.Database}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j connectivity: %w", err)
	}

	log.Info("db: connected")
	return client, nil
}

// Run executes a single parameterized Cypher statement and buffers the full
// result. Session and transaction handling is left to the driver.
func (c *Client) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, c.driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(c.database),
	)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	return result, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}
