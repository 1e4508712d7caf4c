// Package db provides a lightweight GORM-based SQLite wrapper for the lottery
// node's receipt index: one row per delivered operation plus the events it
// emitted.
package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pushchain/tl-lottery/indexer/store"
)

const (
	// InMemorySQLiteDSN is a special DSN to create an ephemeral in-memory SQLite database.
	InMemorySQLiteDSN = ":memory:"

	// dbDirPermissions sets directory permissions to 750 (rwxr-x---).
	dbDirPermissions = 0o750

	// defaultListLimit caps ListReceipts when the filter sets no limit.
	defaultListLimit = 100
)

var (
	// gormConfig disables logging output; the node logs through zerolog.
	gormConfig = &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	// schemaModels lists the structs to be auto-migrated into the database.
	schemaModels = []any{
		&store.Receipt{},
		&store.EventRecord{},
	}
)

// DB wraps a GORM client and provides simplified DB lifecycle management.
type DB struct {
	client *gorm.DB
}

// OpenFileDB opens (or creates) a file-backed SQLite database located in the given directory.
// If `migrateSchema` is true, all defined schema models are automatically migrated.
func OpenFileDB(dir, filename string, migrateSchema bool) (*DB, error) {
	dsn, err := prepareFilePath(dir, filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare database path")
	}
	return openSQLite(dsn, migrateSchema)
}

// OpenInMemoryDB opens a non-persistent SQLite database in memory.
func OpenInMemoryDB(migrateSchema bool) (*DB, error) {
	return openSQLite(InMemorySQLiteDSN, migrateSchema)
}

func openSQLite(dsn string, migrateSchema bool) (*DB, error) {
	// WAL parameters only apply to file databases
	if dsn != InMemorySQLiteDSN && !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000&cache=shared&mode=rwc"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	if migrateSchema {
		if err := db.AutoMigrate(schemaModels...); err != nil {
			return nil, errors.Wrap(err, "failed to auto-migrate database schema")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get underlying sql.DB")
	}

	// A single connection keeps an in-memory database alive and avoids
	// SQLITE_BUSY between the API and the cleaner.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return &DB{client: db}, nil
}

// Client returns the internal *gorm.DB instance for direct usage in queries.
func (d *DB) Client() *gorm.DB {
	return d.client
}

// Close safely closes the underlying database connection.
func (d *DB) Close() error {
	sqlDB, err := d.client.DB()
	if err != nil {
		return errors.Wrap(err, "failed to retrieve native sql.DB")
	}

	if err := sqlDB.Close(); err != nil {
		return errors.Wrap(err, "failed to close database connection")
	}

	return nil
}

// ReceiptFilter narrows ListReceipts. Zero values match everything.
type ReceiptFilter struct {
	Sender     string
	Operation  string
	FromHeight int64
	OnlyFailed bool
	Limit      int
	Offset     int
}

// SaveReceipt inserts r together with its events.
func (d *DB) SaveReceipt(r *store.Receipt) error {
	if err := d.client.Create(r).Error; err != nil {
		return errors.Wrapf(err, "failed to save receipt for %s at height %d", r.Operation, r.Height)
	}
	return nil
}

// ListReceipts returns receipts matching f in delivery order, events included.
func (d *DB) ListReceipts(f ReceiptFilter) ([]store.Receipt, error) {
	q := d.client.Model(&store.Receipt{}).Preload("Events")
	if f.Sender != "" {
		q = q.Where("sender = ?", strings.ToLower(f.Sender))
	}
	if f.Operation != "" {
		q = q.Where("operation = ?", f.Operation)
	}
	if f.FromHeight > 0 {
		q = q.Where("height >= ?", f.FromHeight)
	}
	if f.OnlyFailed {
		q = q.Where("success = ?", false)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var receipts []store.Receipt
	if err := q.Order("id ASC").Limit(limit).Offset(f.Offset).Find(&receipts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list receipts")
	}
	return receipts, nil
}

// DeleteOldReceipts permanently removes receipts (and their events) that were
// indexed more than retention ago. It returns the number of receipts removed.
func (d *DB) DeleteOldReceipts(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)

	var deleted int64
	err := d.client.Transaction(func(tx *gorm.DB) error {
		old := tx.Unscoped().Model(&store.Receipt{}).Select("id").Where("created_at < ?", cutoff)

		if err := tx.Unscoped().Where("receipt_id IN (?)", old).Delete(&store.EventRecord{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete events")
		}

		res := tx.Unscoped().Where("created_at < ?", cutoff).Delete(&store.Receipt{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to delete receipts")
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// prepareFilePath ensures the target directory exists and returns the full database file path.
// If the directory contains the in-memory DSN string, it is returned as-is.
func prepareFilePath(dir, filename string) (string, error) {
	if strings.Contains(dir, InMemorySQLiteDSN) {
		return dir, nil
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, dbDirPermissions); err != nil {
			return "", errors.Wrapf(err, "failed to create directory: %s", dir)
		}
	} else if err != nil {
		return "", errors.Wrap(err, "error checking directory")
	}

	return fmt.Sprintf("%s/%s", dir, filename), nil
}
