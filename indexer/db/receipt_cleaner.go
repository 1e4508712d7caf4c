package db

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pushchain/tl-lottery/config"
)

// ReceiptCleaner periodically prunes receipts older than the retention period.
type ReceiptCleaner struct {
	database        *DB
	ticker          *time.Ticker
	logger          zerolog.Logger
	stopCh          chan struct{}
	doneCh          chan struct{}
	cleanupInterval time.Duration
	retentionPeriod time.Duration
}

// NewReceiptCleaner creates a new receipt cleaner
func NewReceiptCleaner(database *DB, cfg config.IndexerConfig, logger zerolog.Logger) *ReceiptCleaner {
	return &ReceiptCleaner{
		database:        database,
		cleanupInterval: time.Duration(cfg.CleanupIntervalSeconds) * time.Second,
		retentionPeriod: time.Duration(cfg.RetentionPeriodSeconds) * time.Second,
		logger:          logger.With().Str("component", "receipt_cleaner").Logger(),
		stopCh:          make(chan struct{}),
		doneCh:          make(chan struct{}),
	}
}

// Start runs one cleanup immediately and then one per cleanup interval until
// ctx is cancelled or Stop is called.
func (rc *ReceiptCleaner) Start(ctx context.Context) error {
	rc.logger.Info().
		Dur("cleanup_interval", rc.cleanupInterval).
		Dur("retention_period", rc.retentionPeriod).
		Msg("starting receipt cleaner")

	if err := rc.performCleanup(); err != nil {
		// startup continues, the next tick retries
		rc.logger.Error().Err(err).Msg("failed to perform initial cleanup")
	}

	rc.ticker = time.NewTicker(rc.cleanupInterval)

	go func() {
		defer close(rc.doneCh)
		defer rc.ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				rc.logger.Info().Msg("context cancelled, stopping receipt cleaner")
				return
			case <-rc.stopCh:
				rc.logger.Info().Msg("stop signal received, stopping receipt cleaner")
				return
			case <-rc.ticker.C:
				if err := rc.performCleanup(); err != nil {
					rc.logger.Error().Err(err).Msg("failed to perform scheduled cleanup")
				}
			}
		}
	}()

	return nil
}

// Stop gracefully stops the cleaner and waits for the loop to exit.
func (rc *ReceiptCleaner) Stop() {
	rc.logger.Info().Msg("stopping receipt cleaner")
	select {
	case <-rc.stopCh:
	default:
		close(rc.stopCh)
	}
	if rc.ticker != nil {
		<-rc.doneCh
	}
}

func (rc *ReceiptCleaner) performCleanup() error {
	start := time.Now()

	deleted, err := rc.database.DeleteOldReceipts(rc.retentionPeriod)
	if err != nil {
		return err
	}

	if deleted > 0 {
		rc.logger.Info().
			Int64("deleted_count", deleted).
			Dur("duration", time.Since(start)).
			Msg("receipt cleanup completed")
		rc.checkpointWAL()
	} else {
		rc.logger.Debug().
			Dur("duration", time.Since(start)).
			Msg("receipt cleanup completed - no receipts to delete")
	}
	return nil
}

// checkpointWAL truncates the WAL file after a prune so it does not keep growing.
func (rc *ReceiptCleaner) checkpointWAL() {
	if err := rc.database.Client().Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
		rc.logger.Warn().Err(err).Msg("failed to checkpoint WAL")
		return
	}
	rc.logger.Debug().Msg("WAL checkpoint completed")
}
