package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/kitesurf-admin/internal/config"
	"github.com/iliyamo/kitesurf-admin/internal/database"
	"github.com/iliyamo/kitesurf-admin/internal/metrics"
	"github.com/iliyamo/kitesurf-admin/internal/router"
	"github.com/iliyamo/kitesurf-admin/internal/service"
	"github.com/iliyamo/kitesurf-admin/internal/session"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg, log := a.cfg, a.log

	db, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	rdb, err := config.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		if cfg.SessionStore == config.SessionStoreRedis {
			return fmt.Errorf("redis: %w", err)
		}
		log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	store, err := a.sessionStore(ctx, db, rdb)
	if err != nil {
		return err
	}
	sessions := session.NewManager(store, session.Options{
		Secret:  cfg.SessionSecret,
		TTL:     cfg.SessionTTL,
		Secure:  cfg.IsProduction(),
		Rolling: cfg.SessionRolling,
	})

	var pub service.EventPublisher = service.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		pub = service.NewAMQPPublisher(cfg.RabbitMQURL, cfg.BookingQueue, log)
		log.Info("booking events enabled", zap.String("queue", cfg.BookingQueue))
	}
	defer pub.Close()

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New("kitesurf")
	}

	e := router.New(router.Deps{
		Config:    cfg,
		DB:        db,
		Sessions:  sessions,
		Redis:     rdb,
		Publisher: pub,
		Metrics:   m,
		Log:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// sessionStore picks the backend named by SESSION_STORE and starts its
// expiry cleanup on ctx.
func (a *app) sessionStore(ctx context.Context, db database.DB, rdb *redis.Client) (session.Store, error) {
	switch a.cfg.SessionStore {
	case config.SessionStoreRedis:
		if rdb == nil {
			return nil, errors.New("SESSION_STORE=redis but no redis client")
		}
		a.log.Info("session store: redis")
		return session.NewRedisStore(rdb, ""), nil
	case config.SessionStoreDatabase:
		s := session.NewSQLStore(db)
		if err := s.Init(ctx); err != nil {
			return nil, fmt.Errorf("init session table: %w", err)
		}
		go a.pruneSessions(ctx, s)
		a.log.Info("session store: database")
		return s, nil
	default:
		s := session.NewMemoryStore()
		go s.RunSweeper(ctx, a.cfg.SessionSweep)
		if a.cfg.IsProduction() {
			a.log.Warn("session store: memory; sessions are lost on restart and not shared between instances")
		} else {
			a.log.Info("session store: memory")
		}
		return s, nil
	}
}

func (a *app) pruneSessions(ctx context.Context, s *session.SQLStore) {
	if a.cfg.SessionSweep <= 0 {
		return
	}
	t := time.NewTicker(a.cfg.SessionSweep)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.Prune(ctx)
			if err != nil {
				a.log.Warn("prune sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				a.log.Debug("pruned expired sessions", zap.Int64("count", n))
			}
		}
	}
}
