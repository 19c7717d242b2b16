package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/plx/internal/server"
	"github.com/desertthunder/plx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the local backend until interrupted. Pending migrations are applied on startup.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	srvCfg := r.config.Server
	if cmd.IsSet("host") {
		srvCfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		srvCfg.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("security-page") {
		srvCfg.SecurityPage = cmd.Bool("security-page")
	}

	dbCfg := r.config.Database
	if cmd.IsSet("db") {
		dbCfg.Path = cmd.String("db")
	}

	db, err := r.openDatabase(dbCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := shared.RunMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if applied > 0 {
		r.logger.Info("applied migrations", "count", applied)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(srvCfg, db, r.logger.With("component", "server"))
	r.logger.Info("starting backend", "addr", srv.Addr(), "security_page", srvCfg.SecurityPage)
	return srv.Run(ctx)
}
