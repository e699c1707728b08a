package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/configs"
	"github.com/trinetrasoft/cloud-kitchen/app/db/seeders"
	"github.com/trinetrasoft/cloud-kitchen/app/models/migrations"
	"github.com/trinetrasoft/cloud-kitchen/app/routes"
	"github.com/trinetrasoft/cloud-kitchen/app/services/events"
)

const shutdownTimeout = 10 * time.Second

func NewCommand(env configs.ENV) *cli.Command {
	return &cli.Command{
		Name:  "trinetra",
		Usage: "Trinetra cloud kitchen storefront",
		Action: func(ctx context.Context, c *cli.Command) error {
			return Serve(ctx, env)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return Serve(ctx, env)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					zap.S().Infof("migrate: migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Migrate and install the demo catalogue",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					return seeders.DBSeed(db, env.DemoUserEmail)
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate session authentication and encryption keys",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: ".env.keys", Usage: "file to write the keys to"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					path := c.String("out")
					if _, _, err := configs.GenerateSessionKeys(path); err != nil {
						return err
					}
					zap.S().Infof("generate-keys: keys written to %s, copy them into your .env file", path)
					return nil
				},
			},
		},
	}
}

func RunCli(ctx context.Context, env configs.ENV, args []string) error {
	return NewCommand(env).Run(ctx, args)
}

// Serve runs the API until ctx is canceled or the process is interrupted.
func Serve(ctx context.Context, env configs.ENV) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := configs.OpenConnection(env)
	if err != nil {
		return err
	}
	if err := migrations.AutoMigrate(db); err != nil {
		return err
	}

	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return err
	}

	publisher, err := configs.NewPublisher(env)
	if err != nil {
		zap.S().Warnf("Serve: %s events unavailable, logging instead: %v", env.EventsBackend, err)
		publisher = events.LogPublisher{}
	}
	defer publisher.Close()

	server := &http.Server{
		Addr:              env.Port,
		Handler:           routes.NewRouter(db, env, keys, publisher),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infof("Serve: listening on %s", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zap.S().Infof("Serve: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
