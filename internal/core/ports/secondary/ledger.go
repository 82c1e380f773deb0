package secondary

import (
	"context"

	"gitlab.com/railsync.net/internal/domain"
)

// SyncLedger keeps the history of sync cycles per run
type SyncLedger interface {
	// SaveReport appends a report to the run's history
	SaveReport(ctx context.Context, report *domain.SyncReport) error

	// GetReports returns the run's history, oldest first
	GetReports(ctx context.Context, runID int) ([]*domain.SyncReport, error)
}
