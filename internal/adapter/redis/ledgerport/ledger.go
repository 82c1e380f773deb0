package ledgerport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/railsync.net/internal/core/ports/primary"
	"gitlab.com/railsync.net/internal/core/ports/secondary"
	"gitlab.com/railsync.net/internal/domain"
)

const (
	runKeyPrefix     = "sync:run:"
	ledgerExpiration = 30 * 24 * time.Hour
)

var _ secondary.SyncLedger = (*LedgerRepository)(nil)

// LedgerRepository implements the SyncLedger interface with Redis.
// Each run's history is a list of JSON encoded reports.
type LedgerRepository struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewLedgerRepository creates a new Redis ledger
func NewLedgerRepository(redisClient *redis.Client, logger primary.Logger) *LedgerRepository {
	return &LedgerRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

func runKey(runID int) string {
	return fmt.Sprintf("%s%d", runKeyPrefix, runID)
}

// SaveReport appends the report to the run list and refreshes its expiration
func (r *LedgerRepository) SaveReport(ctx context.Context, report *domain.SyncReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		r.logger.Error("Failed to marshal sync report", "error", err)
		return fmt.Errorf("failed to marshal sync report: %w", err)
	}

	key := runKey(report.RunID)
	pipe := r.redisClient.TxPipeline()
	pipe.RPush(ctx, key, reportJSON)
	pipe.Expire(ctx, key, ledgerExpiration)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to save sync report", "runId", report.RunID, "error", err)
		return fmt.Errorf("failed to save sync report: %w", err)
	}

	return nil
}

// GetReports reads the whole run list
func (r *LedgerRepository) GetReports(ctx context.Context, runID int) ([]*domain.SyncReport, error) {
	items, err := r.redisClient.LRange(ctx, runKey(runID), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []*domain.SyncReport{}, nil
		}
		r.logger.Error("Failed to get sync reports", "runId", runID, "error", err)
		return nil, fmt.Errorf("failed to get sync reports: %w", err)
	}

	reports := make([]*domain.SyncReport, 0, len(items))
	for _, item := range items {
		var report domain.SyncReport
		if err := json.Unmarshal([]byte(item), &report); err != nil {
			r.logger.Warn("Skipping unreadable sync report", "runId", runID, "error", err)
			continue
		}
		reports = append(reports, &report)
	}

	return reports, nil
}
