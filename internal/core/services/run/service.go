package run

import (
	"context"

	"gitlab.com/railsync.net/internal/domain"
)

// StartRunRequest describes a run to create from spec files
type StartRunRequest struct {
	Name        string
	Description string
	Specs       []string
}

// IRunService defines the reporting workflow around a TestRail run
type IRunService interface {
	// GetRun retrieves the run metadata
	GetRun(ctx context.Context, runID int) (*domain.Run, error)

	// CloseRun closes an open run
	CloseRun(ctx context.Context, runID int) (*domain.Run, error)

	// StartRun creates a run with the cases tagged in the given specs
	StartRun(ctx context.Context, req StartRunRequest) (*domain.Run, error)

	// GetSyncHistory returns the recorded sync cycles of the run
	GetSyncHistory(ctx context.Context, runID int) ([]*domain.SyncReport, error)
}
