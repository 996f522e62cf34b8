package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/roadside_dispatch/internal/config"
)

const (
	pingTimeout       = 5 * time.Second
	maxConnIdleTime   = 5 * time.Minute
	healthCheckPeriod = 30 * time.Second
)

// NewPostgresDB создаёт пул соединений и проверяет доступность базы
func NewPostgresDB(ctx context.Context, appCfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := PoolConfig(appCfg)
	if err != nil {
		return nil, err
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := dbpool.Ping(pingCtx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("postgres: ping failed: %w", err)
	}

	return dbpool, nil
}

// PoolConfig разбирает DATABASE_URL и применяет лимиты пула из конфигурации.
// Параметры pool_* в самой строке подключения имеют приоритет.
func PoolConfig(appCfg *config.Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(appCfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to parse DATABASE_URL: %w", err)
	}

	if appCfg.DBMaxConns > 0 && !hasParam(poolCfg, "pool_max_conns") {
		poolCfg.MaxConns = int32(appCfg.DBMaxConns)
	}
	if appCfg.DBMinConns > 0 && !hasParam(poolCfg, "pool_min_conns") {
		poolCfg.MinConns = int32(min(appCfg.DBMinConns, int(poolCfg.MaxConns)))
	}
	poolCfg.MaxConnIdleTime = maxConnIdleTime
	poolCfg.HealthCheckPeriod = healthCheckPeriod
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "roadside_dispatch"

	return poolCfg, nil
}

func hasParam(poolCfg *pgxpool.Config, name string) bool {
	return strings.Contains(poolCfg.ConnString(), name+"=")
}
