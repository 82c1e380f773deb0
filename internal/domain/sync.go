package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitlab.com/railsync.net/internal/static/errs"
)

// SyncPhase tracks how far a run got in the reporting lifecycle
type SyncPhase string

const (
	PhaseOpen                SyncPhase = "OPEN"
	PhaseResultsSubmitted    SyncPhase = "RESULTS_SUBMITTED"
	PhaseAttachmentsUploaded SyncPhase = "ATTACHMENTS_UPLOADED"
	PhaseClosed              SyncPhase = "CLOSED"
)

var phaseTransitions = map[SyncPhase][]SyncPhase{
	PhaseOpen:                {PhaseResultsSubmitted, PhaseClosed},
	PhaseResultsSubmitted:    {PhaseAttachmentsUploaded, PhaseResultsSubmitted, PhaseClosed},
	PhaseAttachmentsUploaded: {PhaseResultsSubmitted, PhaseClosed},
	PhaseClosed:              nil,
}

// CanTransitionTo reports whether next is a legal successor of p.
func (p SyncPhase) CanTransitionTo(next SyncPhase) bool {
	for _, allowed := range phaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SyncOutcome is how a single synchronization cycle ended
type SyncOutcome string

const (
	OutcomeSkipped   SyncOutcome = "SKIPPED"
	OutcomeAborted   SyncOutcome = "ABORTED"
	OutcomeCompleted SyncOutcome = "COMPLETED"
)

// UploadSummary counts screenshot uploads for one failed result.
type UploadSummary struct {
	CaseID   CaseID `json:"case_id"`
	ResultID int    `json:"result_id"`
	Uploaded int    `json:"uploaded"`
	Failed   int    `json:"failed"`
}

// SyncReport describes one spec-completion cycle, or a run close.
type SyncReport struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	RunID       int            `json:"run_id" db:"run_id"`
	Spec        string         `json:"spec" db:"spec"`
	Phase       SyncPhase      `json:"phase" db:"phase"`
	Outcome     SyncOutcome    `json:"outcome" db:"outcome"`
	Records     []ResultRecord `json:"records" db:"-"`
	Uploaded    int            `json:"uploaded" db:"uploaded"`
	UploadFails int            `json:"upload_failures" db:"upload_failures"`
	Error       string         `json:"error,omitempty" db:"error"`
	StartedAt   time.Time      `json:"started_at" db:"started_at"`
	FinishedAt  *time.Time     `json:"finished_at,omitempty" db:"finished_at"`
}

// NewSyncReport creates an open report for the given run and spec
func NewSyncReport(runID int, spec string) *SyncReport {
	return &SyncReport{
		ID:        uuid.New(),
		RunID:     runID,
		Spec:      spec,
		Phase:     PhaseOpen,
		Records:   []ResultRecord{},
		StartedAt: time.Now(),
	}
}

// Advance moves the report to the next phase.
func (r *SyncReport) Advance(next SyncPhase) error {
	if !r.Phase.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, r.Phase, next)
	}
	r.Phase = next
	return nil
}

// Finish stamps the outcome. err may be nil.
func (r *SyncReport) Finish(outcome SyncOutcome, err error) {
	now := time.Now()
	r.Outcome = outcome
	r.FinishedAt = &now
	if err != nil {
		r.Error = err.Error()
	}
}

// AddUploads folds an upload summary into the report totals
func (r *SyncReport) AddUploads(s UploadSummary) {
	r.Uploaded += s.Uploaded
	r.UploadFails += s.Failed
}
