package syncer

import (
	"context"
	"fmt"

	"gitlab.com/railsync.net/internal/config"
	"gitlab.com/railsync.net/internal/core/ports/primary"
	"gitlab.com/railsync.net/internal/core/ports/secondary"
	"gitlab.com/railsync.net/internal/core/services/attachment"
	"gitlab.com/railsync.net/internal/core/services/reconcile"
	"gitlab.com/railsync.net/internal/domain"
)

var _ ISynchronizer = (*Synchronizer)(nil)

// Synchronizer implements the ISynchronizer interface
type Synchronizer struct {
	client   secondary.SyncClient
	uploader attachment.IAttachmentUploader
	ledger   secondary.SyncLedger
	logger   primary.Logger
	runID    int
	workers  int
}

// NewSynchronizer creates a synchronizer bound to a single run
func NewSynchronizer(
	runID int,
	client secondary.SyncClient,
	uploader attachment.IAttachmentUploader,
	ledger secondary.SyncLedger,
	logger primary.Logger,
	cfg *config.SyncConfig,
) *Synchronizer {
	workers := 1
	if cfg != nil && cfg.UploadWorkers > 0 {
		workers = cfg.UploadWorkers
	}
	return &Synchronizer{
		client:   client,
		uploader: uploader,
		ledger:   ledger,
		logger:   logger,
		runID:    runID,
		workers:  workers,
	}
}

func (s *Synchronizer) RunID() int {
	return s.runID
}

// SyncSpec runs reconcile, submit, fetch run tests and attachment dispatch
// in that order. Each step starts only after the previous one resolved.
func (s *Synchronizer) SyncSpec(ctx context.Context, spec domain.SpecResults) (report *domain.SyncReport) {
	report = domain.NewSyncReport(s.runID, spec.Spec.Relative)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Recovered from panic while syncing spec", "spec", spec.Spec.Relative, "panic", r)
			report.Finish(domain.OutcomeAborted, fmt.Errorf("panic: %v", r))
			s.saveReport(ctx, report)
		}
	}()

	records := reconcile.Results(spec.Tests)
	if len(records) == 0 {
		s.logger.Debug("No TestRail cases in spec", "spec", spec.Spec.Relative)
		report.Finish(domain.OutcomeSkipped, nil)
		s.saveReport(ctx, report)
		return report
	}
	report.Records = records

	s.logger.Info("Sending test results to TestRail",
		"spec", spec.Spec.Relative,
		"runId", s.runID,
		"count", len(records))

	results, err := s.client.AddResultsForCases(ctx, s.runID, records)
	if err != nil {
		s.logger.Error("Error sending TestRail results", "spec", spec.Spec.Relative, "runId", s.runID, "error", err)
		report.Finish(domain.OutcomeAborted, fmt.Errorf("failed to submit results: %w", err))
		s.saveReport(ctx, report)
		return report
	}
	s.advance(report, domain.PhaseResultsSubmitted)
	s.logger.Debug("TestRail response", "results", results)

	tests, err := s.client.GetTestsForRun(ctx, s.runID)
	if err != nil {
		s.logger.Error("Failed to get tests for run", "runId", s.runID, "error", err)
		report.Finish(domain.OutcomeAborted, fmt.Errorf("failed to get tests for run: %w", err))
		s.saveReport(ctx, report)
		return report
	}
	if len(tests) == 0 {
		s.logger.Warn("Run has no tests, skipping screenshots", "runId", s.runID)
		report.Finish(domain.OutcomeCompleted, nil)
		s.saveReport(ctx, report)
		return report
	}

	for _, summary := range s.dispatch(ctx, FailedResults(results), tests) {
		report.AddUploads(summary)
	}
	s.advance(report, domain.PhaseAttachmentsUploaded)

	report.Finish(domain.OutcomeCompleted, nil)
	s.logger.Info("Spec synced",
		"spec", spec.Spec.Relative,
		"cycleId", report.ID,
		"uploaded", report.Uploaded,
		"uploadFailures", report.UploadFails)
	s.saveReport(ctx, report)
	return report
}

// advance moves the report forward. An illegal move leaves the phase as is.
func (s *Synchronizer) advance(report *domain.SyncReport, next domain.SyncPhase) {
	if err := report.Advance(next); err != nil {
		s.logger.Warn("Unexpected sync phase", "cycleId", report.ID, "phase", report.Phase, "error", err)
	}
}

func (s *Synchronizer) saveReport(ctx context.Context, report *domain.SyncReport) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.SaveReport(ctx, report); err != nil {
		s.logger.Warn("Failed to record sync report", "cycleId", report.ID, "error", err)
	}
}

// FailedResults keeps the results submitted with the Failed status
func FailedResults(results []domain.RemoteResult) []domain.RemoteResult {
	failed := make([]domain.RemoteResult, 0)
	for _, result := range results {
		if result.StatusID == domain.StatusFailed {
			failed = append(failed, result)
		}
	}
	return failed
}
