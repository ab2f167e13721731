// server/cmd/api/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"five-whys-api-server/config"
	"five-whys-api-server/internal/api/routes"
	"five-whys-api-server/internal/database"
	"five-whys-api-server/internal/mailer"
	"five-whys-api-server/internal/s3"
	"five-whys-api-server/internal/socket"
	"five-whys-api-server/internal/store"
)

// Cached collection reads go stale on their own after this long even
// without a write, in case another instance mutates the store.
const cacheTTL = 5 * time.Minute

func main() {
	// .env is optional; container deployments set real env vars.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		slog.Error("could not load config", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		slog.Error("failed to connect to MongoDB", "err", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		slog.Error("MongoDB unreachable", "err", err)
		os.Exit(1)
	}

	documentStore := store.NewCachedStore(store.NewMongoStore(client.Database(cfg.Mongo.DBName)), cacheTTL)

	if err := database.SeedReferenceData(ctx, documentStore); err != nil {
		slog.Error("failed to seed reference data", "err", err)
		os.Exit(1)
	}

	var archiver *s3.Archiver
	if cfg.S3.Enabled {
		archiver, err = s3.NewArchiver(cfg.S3)
		if err != nil {
			slog.Error("failed to initialize S3 archiver", "err", err)
			os.Exit(1)
		}
	}

	dispatcher := mailer.New(cfg.SMTP)
	wsHub := socket.NewHub()

	router := routes.SetupRouter(cfg, documentStore, dispatcher, archiver, wsHub)

	slog.Info("starting API server", "port", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
