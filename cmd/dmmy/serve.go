package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/dmmy/internal/api"
	"github.com/samcharles93/dmmy/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		maxBytes    int64
		storeLimit  int64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the document decode API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "max-document-bytes",
				Usage:       "largest accepted request body",
				Value:       api.DefaultMaxDocumentBytes,
				Destination: &maxBytes,
			},
			&cli.Int64Flag{
				Name:        "store-limit",
				Usage:       "documents kept in memory before the oldest is evicted (0 = unbounded)",
				Value:       1024,
				Destination: &storeLimit,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyServeConfig(cmd, loadedConfig, &addr, &maxBytes, &storeLimit)
			log := logger.FromContext(ctx)

			store := api.NewDocumentStore(int(storeLimit))
			server := api.NewServer(store, api.Config{
				MaxDocumentBytes: maxBytes,
				Logger:           log,
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "max_document_bytes", maxBytes, "store_limit", storeLimit)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}

func applyServeConfig(cmd *cli.Command, cfg Config, addr *string, maxBytes, storeLimit *int64) {
	if cfg.ServerAddress != "" && !cmd.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.MaxDocumentBytes != nil && !cmd.IsSet("max-document-bytes") {
		*maxBytes = *cfg.MaxDocumentBytes
	}
	if cfg.StoreLimit != nil && !cmd.IsSet("store-limit") {
		*storeLimit = *cfg.StoreLimit
	}
}
