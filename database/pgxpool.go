package database

import (
	"context"
	"fmt"
	"time"

	"github.com/homeworkbot/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func GetPool(ctx context.Context, config *config.Config, logger *zap.SugaredLogger) (*pgxpool.Pool, error) {
	logger = logger.Named("database")
	ctx, cancelFunc := context.WithTimeout(ctx, 7*time.Second)
	defer cancelFunc()

	parseConfig, err := pgxpool.ParseConfig(config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("error parsing db config: %w", err)
	}
	if config.MaxPgxConn > 0 {
		parseConfig.MaxConns = config.MaxPgxConn
	}
	parseConfig.MaxConnIdleTime = 5 * time.Minute
	parseConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, parseConfig)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect db: %w", err)
	}

	deadline, _ := ctx.Deadline()
	logger.Infof("db pool estabilished, time left: %v", time.Until(deadline))

	return pool, nil
}
