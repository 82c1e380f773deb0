package ledgerrepository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/railsync.net/internal/adapter/logging"
	"gitlab.com/railsync.net/internal/domain"
)

var reportColumns = []string{
	"id", "run_id", "spec", "phase", "outcome", "records",
	"uploaded", "upload_failures", "error", "started_at", "finished_at",
}

func newRepository(t *testing.T) (*LedgerRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewLedgerRepository(sqlx.NewDb(db, "postgres"), logging.NewNopLogger(), "public"), mock
}

func TestQualifiedTable(t *testing.T) {
	assert.Equal(t, `"public"."sync_reports"`, qualifiedTable("public"))
	assert.Equal(t, `"sync_reports"`, qualifiedTable(""))
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "public"."sync_reports"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_Error(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS`)).
		WillReturnError(errors.New("permission denied"))

	err := repo.EnsureSchema(context.Background())

	assert.ErrorContains(t, err, "permission denied")
}

func TestSaveReport_BindsEveryColumn(t *testing.T) {
	repo, mock := newRepository(t)
	report := domain.NewSyncReport(3, "a.cy.js")
	report.Records = []domain.ResultRecord{{CaseID: 5, StatusID: domain.StatusFailed}}
	report.Phase = domain.PhaseAttachmentsUploaded
	report.Uploaded = 2
	report.UploadFails = 1
	report.Finish(domain.OutcomeCompleted, errors.New("one upload failed"))

	mock.ExpectExec(`INSERT INTO "public"\."sync_reports" \(\s*id, run_id, spec, phase, outcome, records,\s*uploaded, upload_failures, error, started_at, finished_at\s*\) VALUES \(\s*\$1, \$2, \$3, \$4, \$5, \$6,\s*\$7, \$8, \$9, \$10, \$11\s*\)\s*ON CONFLICT \(id\) DO UPDATE`).
		WithArgs(
			report.ID.String(), 3, "a.cy.js", "ATTACHMENTS_UPLOADED", "COMPLETED",
			`[{"case_id":5,"status_id":5}]`, 2, 1, "one upload failed",
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveReport(context.Background(), report))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveReport_Error(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectExec(`INSERT INTO`).WillReturnError(errors.New("connection reset"))

	err := repo.SaveReport(context.Background(), domain.NewSyncReport(3, "a.cy.js"))

	assert.ErrorContains(t, err, "failed to save sync report")
}

func TestGetReports_OrderedByStart(t *testing.T) {
	repo, mock := newRepository(t)
	first, second := uuid.New(), uuid.New()
	started := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	finished := started.Add(time.Minute)

	mock.ExpectQuery(`FROM "public"\."sync_reports"\s+WHERE run_id = \$1\s+ORDER BY started_at ASC`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(reportColumns).
			AddRow(first.String(), 3, "a.cy.js", "ATTACHMENTS_UPLOADED", "COMPLETED",
				`[{"case_id":5,"status_id":5}]`, 1, 0, "", started, finished).
			AddRow(second.String(), 3, "", "CLOSED", "COMPLETED",
				`[]`, 0, 0, "", started.Add(time.Hour), nil))

	reports, err := repo.GetReports(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, first, reports[0].ID)
	assert.Equal(t, []domain.ResultRecord{{CaseID: 5, StatusID: domain.StatusFailed}}, reports[0].Records)
	require.NotNil(t, reports[0].FinishedAt)
	assert.True(t, finished.Equal(*reports[0].FinishedAt))
	assert.Equal(t, second, reports[1].ID)
	assert.Equal(t, domain.PhaseClosed, reports[1].Phase)
	assert.Nil(t, reports[1].FinishedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReports_BadRecords(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery(`FROM "public"\."sync_reports"`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(reportColumns).
			AddRow(uuid.New().String(), 3, "a.cy.js", "OPEN", "", `{`, 0, 0, "", time.Now(), nil))

	_, err := repo.GetReports(context.Background(), 3)

	assert.ErrorContains(t, err, "failed to unmarshal records")
}

func TestGetReports_QueryError(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery(`FROM "public"\."sync_reports"`).WillReturnError(errors.New("timeout"))

	_, err := repo.GetReports(context.Background(), 3)

	assert.ErrorContains(t, err, "failed to get sync reports")
}

func TestReportRow_ToDomain(t *testing.T) {
	id := uuid.New()
	row := reportRow{
		ID:      id,
		RunID:   3,
		Spec:    "a.cy.js",
		Phase:   string(domain.PhaseAttachmentsUploaded),
		Outcome: string(domain.OutcomeCompleted),
		Records: `[{"case_id":5,"status_id":5}]`,
	}

	report, err := row.toDomain()

	require.NoError(t, err)
	assert.Equal(t, id, report.ID)
	assert.Equal(t, domain.PhaseAttachmentsUploaded, report.Phase)
	assert.Equal(t, []domain.ResultRecord{{CaseID: 5, StatusID: domain.StatusFailed}}, report.Records)
}
