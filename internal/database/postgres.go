package database

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig tunes the Postgres connection pool. Zero values keep pgx defaults.
type PoolConfig struct {
	MaxConns      int
	MinConns      int
	MaxConnLife   time.Duration
	MaxConnIdle   time.Duration
	HealthCheck   time.Duration
	MaxRetries    int
	RetryInterval time.Duration
}

// DefaultPoolConfig returns the pool settings used when no overrides are set.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxConns:      10,
		MinConns:      1,
		MaxConnLife:   30 * time.Minute,
		MaxConnIdle:   5 * time.Minute,
		HealthCheck:   30 * time.Second,
		MaxRetries:    3,
		RetryInterval: time.Second,
	}
}

// PoolConfigFromEnv overlays DB_* environment variables on the defaults.
func PoolConfigFromEnv() PoolConfig {
	cfg := DefaultPoolConfig()
	if v, err := strconv.Atoi(os.Getenv("DB_MAX_CONNS")); err == nil && v > 0 {
		cfg.MaxConns = v
	}
	if v, err := strconv.Atoi(os.Getenv("DB_MIN_CONNS")); err == nil && v >= 0 {
		cfg.MinConns = v
	}
	if v, err := time.ParseDuration(os.Getenv("DB_MAX_CONN_LIFE")); err == nil {
		cfg.MaxConnLife = v
	}
	if v, err := time.ParseDuration(os.Getenv("DB_MAX_CONN_IDLE")); err == nil {
		cfg.MaxConnIdle = v
	}
	if v, err := time.ParseDuration(os.Getenv("DB_HEALTH_CHECK")); err == nil {
		cfg.HealthCheck = v
	}
	if v, err := strconv.Atoi(os.Getenv("DB_MAX_RETRIES")); err == nil && v >= 0 {
		cfg.MaxRetries = v
	}
	if v, err := time.ParseDuration(os.Getenv("DB_RETRY_INTERVAL")); err == nil {
		cfg.RetryInterval = v
	}
	return cfg
}

// Postgres is the networked store backed by a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres builds the pool for url and pings it, retrying up to
// cfg.MaxRetries times.
func OpenPostgres(ctx context.Context, url string, cfg PoolConfig) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, storeErr("open", "", fmt.Errorf("parse database url: %w", err))
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLife > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLife
	}
	if cfg.MaxConnIdle > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdle
	}
	if cfg.HealthCheck > 0 {
		poolCfg.HealthCheckPeriod = cfg.HealthCheck
	}

	var lastErr error
	for i := 0; i <= cfg.MaxRetries; i++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			lastErr = err
		} else {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = pool.Ping(pingCtx)
			cancel()
			if err == nil {
				return &Postgres{pool: pool}, nil
			}
			pool.Close()
			lastErr = err
		}
		if i < cfg.MaxRetries {
			select {
			case <-ctx.Done():
				return nil, storeErr("open", "", ctx.Err())
			case <-time.After(cfg.RetryInterval):
			}
		}
	}
	return nil, storeErr("open", "", fmt.Errorf("connect after %d retries: %w", cfg.MaxRetries, lastErr))
}

func (p *Postgres) Dialect() Dialect { return DialectPostgres }

func (p *Postgres) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	q := rebind(withReturningID(query))
	if !isInsert(q) {
		tag, err := p.pool.Exec(ctx, q, args...)
		if err != nil {
			return Result{}, storeErr("exec", q, err)
		}
		return Result{RowsAffected: tag.RowsAffected()}, nil
	}

	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return Result{}, storeErr("exec", q, err)
	}
	var out Result
	if rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			rows.Close()
			return Result{}, storeErr("exec", q, err)
		}
		if len(vals) > 0 {
			out.InsertedID = Row{"id": vals[0]}.Int64("id")
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Result{}, storeErr("exec", q, err)
	}
	out.RowsAffected = rows.CommandTag().RowsAffected()
	return out, nil
}

func (p *Postgres) QueryOne(ctx context.Context, query string, args ...any) (Row, error) {
	rows, err := p.QueryAll(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (p *Postgres) QueryAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	q := rebind(query)
	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, storeErr("query", q, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := make([]Row, 0)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, storeErr("scan", q, err)
		}
		row := make(Row, len(fields))
		for i, f := range fields {
			row[f.Name] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("query", q, err)
	}
	return out, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return storeErr("ping", "", p.pool.Ping(ctx))
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
