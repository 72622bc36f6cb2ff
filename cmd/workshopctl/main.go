package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/workshop-analytics/internal/analytics"
	"github.com/ukydev/workshop-analytics/internal/config"
	"github.com/ukydev/workshop-analytics/internal/db"
	"github.com/ukydev/workshop-analytics/internal/handlers"
)

func openMongoService(cfg config.Config) serviceFactory {
	return func(ctx context.Context) (handlers.ReportService, func(), error) {
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		store := db.NewStore(client.Database(cfg.MongoDB))
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.WithError(err).Warn("Failed to disconnect from MongoDB")
			}
		}
		return analytics.NewService(store, nil, log.StandardLogger()), closeFn, nil
	}
}

func main() {
	cfg := config.Load()
	cfg.ConfigureLogging()

	if err := newRootCmd(openMongoService(cfg)).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
