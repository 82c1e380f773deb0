package syncer

import (
	"context"

	"gitlab.com/railsync.net/internal/domain"
)

// ISynchronizer defines the interface for reporting one spec execution to TestRail
type ISynchronizer interface {
	// SyncSpec reconciles, submits and attaches screenshots for one spec.
	// It never fails: problems are logged and recorded on the returned report.
	SyncSpec(ctx context.Context, spec domain.SpecResults) *domain.SyncReport

	// RunID returns the run results are submitted to
	RunID() int
}
