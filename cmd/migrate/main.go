package main

import (
	"context"
	"database/sql"
	"flag"
	"os"

	"movieapi/dynamodb"
	"movieapi/pkg/config"
	"movieapi/pkg/logger"
	"movieapi/sqlite"
	"movieapi/store"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

func main() {
	var (
		dir   string
		down  bool
		limit int
	)
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the postgres migrations")
	flag.BoolVar(&down, "down", false, "Roll migrations back instead of applying them")
	flag.IntVar(&limit, "limit", 0, "Maximum number of migrations to run (0 = all)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		basic, _ := zap.NewProduction()
		basic.Fatal("cannot load config", zap.Error(err))
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		basic, _ := zap.NewProduction()
		basic.Fatal("cannot init logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	direction := migrate.Up
	if down {
		direction = migrate.Down
	}

	ctx := context.Background()
	switch cfg.DB.Driver {
	case store.DriverPostgres:
		db, err := sql.Open("postgres", store.PostgresOptions(cfg).DSN())
		if err != nil {
			log.Errorw("cannot connect to db", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		total, err := migrate.ExecMax(db, "postgres", &migrate.FileMigrationSource{Dir: dir}, direction, limit)
		if err != nil {
			log.Errorw("cannot execute migration", "error", err)
			os.Exit(1)
		}
		log.Infow("applied migrations", "total", total, "down", down)

	case store.DriverSQLite:
		db, err := sqlite.Open(cfg.DB.SQLitePath)
		if err != nil {
			log.Errorw("cannot migrate sqlite", "path", cfg.DB.SQLitePath, "error", err)
			os.Exit(1)
		}
		_ = db.Close()
		log.Infow("sqlite schema is up to date", "path", cfg.DB.SQLitePath)

	case store.DriverDynamoDB:
		client, err := dynamodb.NewClient(ctx, store.DynamoDBOptions(cfg))
		if err != nil {
			log.Errorw("cannot create dynamodb client", "error", err)
			os.Exit(1)
		}
		if err := dynamodb.CreateMoviesTable(ctx, client, cfg.DynamoDB.MoviesTable); err != nil {
			log.Errorw("cannot create movies table", "table", cfg.DynamoDB.MoviesTable, "error", err)
			os.Exit(1)
		}
		log.Infow("movies table is ready", "table", cfg.DynamoDB.MoviesTable)

	default:
		log.Infow("nothing to migrate", "driver", cfg.DB.Driver)
	}
}
