package run

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/railsync.net/internal/config"
	"gitlab.com/railsync.net/internal/core/ports/primary"
	"gitlab.com/railsync.net/internal/core/ports/secondary"
	"gitlab.com/railsync.net/internal/core/services/casefinder"
	"gitlab.com/railsync.net/internal/domain"
	"gitlab.com/railsync.net/internal/static/errs"
)

var _ IRunService = (*RunService)(nil)

// RunService implements the IRunService interface
type RunService struct {
	client     secondary.TestRailClient
	ledger     secondary.SyncLedger
	trCfg      *config.TestRailConfig
	logger     primary.Logger
	readSpec   casefinder.SpecReader
	runIDDir   string
	saveRunIDs bool
}

// NewRunService creates a new run service. When runIDDir is not empty,
// StartRun writes the new run id to runId.txt in that folder.
func NewRunService(
	client secondary.TestRailClient,
	ledger secondary.SyncLedger,
	trCfg *config.TestRailConfig,
	logger primary.Logger,
	runIDDir string,
) *RunService {
	return &RunService{
		client:     client,
		ledger:     ledger,
		trCfg:      trCfg,
		logger:     logger,
		runIDDir:   runIDDir,
		saveRunIDs: runIDDir != "",
	}
}

// SetSpecReader replaces the reader used to load spec sources
func (s *RunService) SetSpecReader(read casefinder.SpecReader) {
	if read != nil {
		s.readSpec = read
	}
}

// GetRun retrieves the run metadata
func (s *RunService) GetRun(ctx context.Context, runID int) (*domain.Run, error) {
	s.logger.Debug("Getting run", "runId", runID)

	run, err := s.client.GetRun(ctx, runID)
	if err != nil {
		s.logger.Error("Failed to get run", "runId", runID, "error", err)
		return nil, fmt.Errorf("failed to get run %d: %w", runID, err)
	}
	return run, nil
}

// CloseRun closes the run and records the CLOSED phase in the ledger
func (s *RunService) CloseRun(ctx context.Context, runID int) (*domain.Run, error) {
	s.logger.Info("Closing run", "runId", runID)

	current, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if current.IsCompleted {
		return nil, fmt.Errorf("%w: %d", errs.ErrRunClosed, runID)
	}

	closed, err := s.client.CloseRun(ctx, runID)
	if err != nil {
		s.logger.Error("Failed to close run", "runId", runID, "error", err)
		return nil, fmt.Errorf("failed to close run %d: %w", runID, err)
	}

	report := domain.NewSyncReport(runID, "")
	if last := s.lastPhase(ctx, runID); last != "" {
		report.Phase = last
	}
	if err := report.Advance(domain.PhaseClosed); err != nil {
		s.logger.Warn("Unexpected run phase on close", "runId", runID, "error", err)
		report.Phase = domain.PhaseClosed
	}
	report.Finish(domain.OutcomeCompleted, nil)
	if err := s.ledger.SaveReport(ctx, report); err != nil {
		s.logger.Warn("Failed to record run close", "runId", runID, "error", err)
	}

	s.logger.Info("Run closed", "runId", runID)
	return closed, nil
}

// StartRun finds the cases tagged in the specs and creates a run for them.
// Without any tagged case the run includes every case of the suite.
func (s *RunService) StartRun(ctx context.Context, req StartRunRequest) (*domain.Run, error) {
	caseIDs, err := casefinder.FindCases(req.Specs, s.readSpec)
	if err != nil {
		return nil, err
	}
	caseIDs = casefinder.Unique(caseIDs)

	name := req.Name
	if name == "" {
		name = "Started run " + time.Now().Format(time.RFC3339)
	}
	newRun := domain.NewRun{
		SuiteID:     s.trCfg.SuiteID,
		Name:        name,
		Description: req.Description,
		IncludeAll:  len(caseIDs) == 0,
		CaseIDs:     caseIDs,
	}

	s.logger.Info("Creating run", "projectId", s.trCfg.ProjectID, "suiteId", s.trCfg.SuiteID, "cases", len(caseIDs))

	run, err := s.client.AddRun(ctx, s.trCfg.ProjectID, newRun)
	if err != nil {
		s.logger.Error("Failed to create run", "projectId", s.trCfg.ProjectID, "error", err)
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	if s.saveRunIDs {
		filename, err := config.SaveRunID(s.runIDDir, run.ID)
		if err != nil {
			return run, err
		}
		s.logger.Info("Saved run id", "runId", run.ID, "file", filename)
	}

	return run, nil
}

// GetSyncHistory returns the recorded sync cycles of the run
func (s *RunService) GetSyncHistory(ctx context.Context, runID int) ([]*domain.SyncReport, error) {
	reports, err := s.ledger.GetReports(ctx, runID)
	if err != nil {
		s.logger.Error("Failed to get sync history", "runId", runID, "error", err)
		return nil, fmt.Errorf("failed to get sync history: %w", err)
	}
	return reports, nil
}

func (s *RunService) lastPhase(ctx context.Context, runID int) domain.SyncPhase {
	reports, err := s.ledger.GetReports(ctx, runID)
	if err != nil || len(reports) == 0 {
		return ""
	}
	return reports[len(reports)-1].Phase
}
