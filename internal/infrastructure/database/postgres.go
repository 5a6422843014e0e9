package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/config"
)

const (
	applicationName = "satellite-imagery-backend"
	pingTimeout     = 5 * time.Second
)

// NewPostgresPool opens a pool, pings it and checks that the postgis extension is available.
func NewPostgresPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(min(cfg.MaxIdleConns, cfg.MaxOpenConns))
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	poolCfg.MaxConnIdleTime = cfg.ConnMaxLifetime
	poolCfg.HealthCheckPeriod = time.Minute
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	var available bool
	err = pool.QueryRow(pingCtx, `SELECT EXISTS (SELECT 1 FROM pg_available_extensions WHERE name = 'postgis')`).Scan(&available)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("checking postgis: %w", err)
	}
	if !available {
		pool.Close()
		return nil, fmt.Errorf("postgis extension is not available on %s:%d", cfg.Host, cfg.Port)
	}

	return pool, nil
}
