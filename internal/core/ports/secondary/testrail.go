package secondary

import (
	"context"

	"gitlab.com/railsync.net/internal/domain"
)

// ResultSubmitter submits result records for a run
type ResultSubmitter interface {
	// AddResultsForCases submits all records in one bulk call
	AddResultsForCases(ctx context.Context, runID int, records []domain.ResultRecord) ([]domain.RemoteResult, error)
}

// RunTestFetcher fetches the tests of a run
type RunTestFetcher interface {
	// GetTestsForRun returns every test of the run, following pagination
	GetTestsForRun(ctx context.Context, runID int) ([]domain.RemoteRunTest, error)
}

// AttachmentClient uploads files to a result
type AttachmentClient interface {
	// UploadAttachment uploads the file at path to the result
	UploadAttachment(ctx context.Context, resultID int, path string) error
}

// TestRailClient is the full set of TestRail API calls railsync uses.
type TestRailClient interface {
	ResultSubmitter
	RunTestFetcher
	AttachmentClient

	// GetRun retrieves run metadata
	GetRun(ctx context.Context, runID int) (*domain.Run, error)

	// CloseRun closes the run, after which it can no longer receive results
	CloseRun(ctx context.Context, runID int) (*domain.Run, error)

	// AddRun creates a new run in the project
	AddRun(ctx context.Context, projectID int, run domain.NewRun) (*domain.Run, error)
}

// SyncClient is the subset of TestRailClient the synchronizer needs
type SyncClient interface {
	ResultSubmitter
	RunTestFetcher
}
