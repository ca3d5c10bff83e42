package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PoolOptions sizes the connection pool. Zero fields keep the pgxpool default.
type PoolOptions struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	PingTimeout     time.Duration
}

func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 20 * time.Minute,
		PingTimeout:     2 * time.Second,
	}
}

// DB owns the pgx pool every store shares.
type DB struct {
	pool        *pgxpool.Pool
	pingTimeout time.Duration
	logger      *zap.Logger
}

// PoolConfig parses databaseURL and applies opts on top of it.
func PoolConfig(databaseURL string, opts PoolOptions) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.MinConns > opts.MaxConns && opts.MaxConns > 0 {
		return nil, errors.New("min connections exceed max connections")
	}

	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	if opts.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = opts.MaxConnIdleTime
	}
	cfg.HealthCheckPeriod = time.Minute
	return cfg, nil
}

// New opens the pool described by databaseURL and opts and pings it.
func New(ctx context.Context, databaseURL string, opts PoolOptions, logger *zap.Logger) (*DB, error) {
	cfg, err := PoolConfig(databaseURL, opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	d := &DB{pool: pool, pingTimeout: opts.PingTimeout, logger: logger}
	if err := d.Health(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("postgres pool ready",
		zap.String("host", cfg.ConnConfig.Host),
		zap.String("database", cfg.ConnConfig.Database),
		zap.Int32("min_conns", cfg.MinConns),
		zap.Int32("max_conns", cfg.MaxConns),
	)
	return d, nil
}

func (d *DB) Pool() *pgxpool.Pool { return d.pool }

// Health pings the database, bounded by the configured ping timeout.
func (d *DB) Health(ctx context.Context) error {
	if d.pingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.pingTimeout)
		defer cancel()
	}
	return d.pool.Ping(ctx)
}

func (d *DB) Close() {
	stat := d.pool.Stat()
	d.logger.Info("closing postgres pool",
		zap.Int32("total_conns", stat.TotalConns()),
		zap.Int64("acquires", stat.AcquireCount()),
	)
	d.pool.Close()
}
