package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskmaster/todo/internal/infrastructure/config"
	"github.com/taskmaster/todo/internal/infrastructure/logger"
)

// ErrBeginTx marks failures to start a transaction, usually connection acquisition
var ErrBeginTx = errors.New("begin transaction")

const serializationFailure = "40001"

// DB wraps sqlx.DB and provides additional functionality
type DB struct {
	DB     *sqlx.DB
	logger *logger.Logger

	transactions *prometheus.CounterVec
	txDuration   prometheus.Histogram
}

// New creates a new database connection pool and pings it
func New(cfg config.DatabaseConfig, appLogger *logger.Logger) (*DB, error) {
	db, err := sqlx.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return Wrap(db, appLogger), nil
}

// Wrap builds a DB around an already opened pool
func Wrap(db *sqlx.DB, appLogger *logger.Logger) *DB {
	return &DB{
		DB:     db,
		logger: appLogger.WithComponent("database"),
		transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_store_transactions_total",
				Help: "Store transactions by outcome",
			},
			[]string{"outcome"},
		),
		txDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "todo_store_transaction_duration_seconds",
			Help:    "Store transaction duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Collectors returns the transaction metrics for registration
func (db *DB) Collectors() []prometheus.Collector {
	return []prometheus.Collector{db.transactions, db.txDuration}
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.DB != nil {
		return db.DB.Close()
	}
	return nil
}

// Ping pings the database
func (db *DB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// HealthCheck checks database health
func (db *DB) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	return nil
}

// GetConnectionInfo returns connection pool statistics
func (db *DB) GetConnectionInfo() map[string]interface{} {
	stats := db.DB.Stats()

	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration.String(),
	}
}

// WithSerializableTx runs fn in a SERIALIZABLE transaction with all constraints deferred
// to commit. The transaction is rolled back if fn fails or panics. Nothing is retried:
// serialization failures are returned to the caller.
func (db *DB) WithSerializableTx(ctx context.Context, fn func(*sqlx.Tx) error) (err error) {
	start := time.Now()
	outcome := "committed"
	defer func() {
		db.transactions.WithLabelValues(outcome).Inc()
		db.txDuration.Observe(time.Since(start).Seconds())
		db.logger.LogTransaction(outcome, float64(time.Since(start).Nanoseconds())/1e6, err)
	}()

	tx, err := db.DB.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		outcome = "begin_failed"
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			outcome = "panicked"
			err = fmt.Errorf("transaction panicked: %v", p)
			tx.Rollback()
			panic(p)
		}
	}()

	if _, err = tx.ExecContext(ctx, "SET CONSTRAINTS ALL DEFERRED"); err != nil {
		outcome = rollback(tx, err)
		return fmt.Errorf("defer constraints: %w", err)
	}

	if err = fn(tx); err != nil {
		outcome = rollback(tx, err)
		return err
	}

	if err = tx.Commit(); err != nil {
		outcome = classifyOutcome(err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func rollback(tx *sqlx.Tx, cause error) string {
	if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		return "rollback_failed"
	}
	return classifyOutcome(cause)
}

func classifyOutcome(err error) string {
	if IsSerializationFailure(err) {
		return "serialization_failure"
	}
	return "rolled_back"
}

// IsSerializationFailure reports whether err is a postgres serialization conflict (40001).
// The whole operation can be resubmitted by the caller.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == serializationFailure
	}
	return false
}
