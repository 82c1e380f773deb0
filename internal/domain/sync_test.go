package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/railsync.net/internal/static/errs"
)

func TestSyncPhase_Transitions(t *testing.T) {
	tests := []struct {
		from SyncPhase
		to   SyncPhase
		ok   bool
	}{
		{PhaseOpen, PhaseResultsSubmitted, true},
		{PhaseOpen, PhaseAttachmentsUploaded, false},
		{PhaseOpen, PhaseClosed, true},
		{PhaseResultsSubmitted, PhaseAttachmentsUploaded, true},
		{PhaseResultsSubmitted, PhaseResultsSubmitted, true},
		{PhaseAttachmentsUploaded, PhaseResultsSubmitted, true},
		{PhaseAttachmentsUploaded, PhaseOpen, false},
		{PhaseClosed, PhaseResultsSubmitted, false},
		{PhaseClosed, PhaseClosed, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSyncReport_AdvanceRejectsIllegalTransition(t *testing.T) {
	report := NewSyncReport(12, "cypress/e2e/login.cy.js")
	require.NoError(t, report.Advance(PhaseResultsSubmitted))
	require.NoError(t, report.Advance(PhaseAttachmentsUploaded))
	require.NoError(t, report.Advance(PhaseClosed))

	err := report.Advance(PhaseResultsSubmitted)
	assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
	assert.Equal(t, PhaseClosed, report.Phase)
}

func TestSyncReport_FinishRecordsError(t *testing.T) {
	report := NewSyncReport(1, "a.cy.js")
	report.AddUploads(UploadSummary{Uploaded: 2, Failed: 1})
	report.AddUploads(UploadSummary{Uploaded: 1})
	report.Finish(OutcomeAborted, errors.New("boom"))

	assert.Equal(t, OutcomeAborted, report.Outcome)
	assert.Equal(t, "boom", report.Error)
	assert.NotNil(t, report.FinishedAt)
	assert.Equal(t, 3, report.Uploaded)
	assert.Equal(t, 1, report.UploadFails)
}

func TestLocalTestResult_LeafTitle(t *testing.T) {
	assert.Equal(t, "C55 should work", LocalTestResult{Title: []string{"suite", "C55 should work"}}.LeafTitle())
	assert.Equal(t, "", LocalTestResult{}.LeafTitle())
}

func TestStatusID_String(t *testing.T) {
	assert.Equal(t, "Passed", StatusPassed.String())
	assert.Equal(t, "Failed", StatusFailed.String())
	assert.Equal(t, "Unknown", StatusID(9).String())
}
