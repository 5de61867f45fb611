// Package store opens the movie repository selected by DB_DRIVER.
package store

import (
	"context"
	"fmt"
	"strconv"

	"movieapi/dynamodb"
	"movieapi/memory"
	"movieapi/movie"
	"movieapi/pkg/config"
	"movieapi/postgres"
	"movieapi/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

// Store is an open movie repository and the function releasing it.
type Store struct {
	Driver     string
	Repository movie.Repository
	Close      func() error
}

func nopClose() error { return nil }

// Open connects to the backend named by cfg.DB.Driver. Schemas are expected
// to exist already except for sqlite, which migrates itself on open.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.DB.Driver {
	case DriverPostgres:
		db, err := postgres.NewConnection(PostgresOptions(cfg))
		if err != nil {
			return nil, fmt.Errorf("store: open postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("store: open postgres: %w", err)
		}
		return &Store{
			Driver:     DriverPostgres,
			Repository: postgres.NewMovieRepository(db),
			Close:      sqlDB.Close,
		}, nil

	case DriverSQLite:
		db, err := sqlite.Open(cfg.DB.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:     DriverSQLite,
			Repository: sqlite.NewMovieRepository(db),
			Close:      db.Close,
		}, nil

	case DriverDynamoDB:
		client, err := dynamodb.NewClient(ctx, DynamoDBOptions(cfg))
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:     DriverDynamoDB,
			Repository: dynamodb.NewMovieRepository(client, cfg.DynamoDB.MoviesTable),
			Close:      nopClose,
		}, nil

	case DriverMemory:
		return &Store{
			Driver:     DriverMemory,
			Repository: memory.NewMovieRepository(),
			Close:      nopClose,
		}, nil
	}

	return nil, fmt.Errorf("store: unknown driver %q", cfg.DB.Driver)
}

func PostgresOptions(cfg *config.Config) postgres.Options {
	return postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	}
}

func DynamoDBOptions(cfg *config.Config) dynamodb.Options {
	return dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,
	}
}
