package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/kitesurf-admin/internal/config"
	"github.com/iliyamo/kitesurf-admin/internal/database"
	"github.com/iliyamo/kitesurf-admin/internal/logger"
)

const serviceName = "kitesurf-admin"

// app carries what every subcommand needs once the environment is loaded.
type app struct {
	envFile string
	cfg     config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "kitesurf-admin",
		Short:        "Admin API for kitesurf trips, hotels, clients and bookings",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newMigrateCmd(a))
	root.AddCommand(newConsumeCmd(a))
	return root
}

func (a *app) setup() error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel, serviceName)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// openStore connects, migrates and seeds. The caller closes the DB.
func (a *app) openStore(ctx context.Context) (database.DB, error) {
	db, err := database.Open(ctx, a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.log.Info("database connected", zap.String("dialect", string(db.Dialect())))

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	outcome, err := database.EnsureSeedAdmin(ctx, db, a.cfg.AdminPassword, a.cfg.BcryptCost)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	switch outcome {
	case database.SeedCreated:
		a.log.Info("seed admin created", zap.String("username", database.SeedAdminUsername))
	case database.SeedRoleRestored:
		a.log.Warn("seed admin role restored to admin", zap.String("username", database.SeedAdminUsername))
	}
	return db, nil
}
