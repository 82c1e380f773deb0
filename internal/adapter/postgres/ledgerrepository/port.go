// Package ledgerrepository stores sync reports in PostgreSQL.
package ledgerrepository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/railsync.net/internal/core/ports/primary"
	"gitlab.com/railsync.net/internal/core/ports/secondary"
	"gitlab.com/railsync.net/internal/domain"
)

var _ secondary.SyncLedger = (*LedgerRepository)(nil)

const tableName = "sync_reports"

// LedgerRepository implements the SyncLedger interface with PostgreSQL
type LedgerRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	table  string
}

// reportRow mirrors the sync_reports table
type reportRow struct {
	ID          uuid.UUID  `db:"id"`
	RunID       int        `db:"run_id"`
	Spec        string     `db:"spec"`
	Phase       string     `db:"phase"`
	Outcome     string     `db:"outcome"`
	Records     string     `db:"records"`
	Uploaded    int        `db:"uploaded"`
	UploadFails int        `db:"upload_failures"`
	Error       string     `db:"error"`
	StartedAt   time.Time  `db:"started_at"`
	FinishedAt  *time.Time `db:"finished_at"`
}

// NewLedgerRepository creates a new PostgreSQL ledger in the given schema
func NewLedgerRepository(db *sqlx.DB, logger primary.Logger, schema string) *LedgerRepository {
	return &LedgerRepository{
		db:     db,
		logger: logger,
		table:  qualifiedTable(schema),
	}
}

func qualifiedTable(schema string) string {
	if schema == "" {
		return pq.QuoteIdentifier(tableName)
	}
	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(tableName)
}

// EnsureSchema creates the sync_reports table when missing
func (r *LedgerRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			run_id INTEGER NOT NULL,
			spec TEXT NOT NULL DEFAULT '',
			phase TEXT NOT NULL,
			outcome TEXT NOT NULL DEFAULT '',
			records JSONB NOT NULL DEFAULT '[]',
			uploaded INTEGER NOT NULL DEFAULT 0,
			upload_failures INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ
		)`, r.table)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.logger.Error("Failed to create sync_reports table", "error", err)
		return fmt.Errorf("failed to create sync_reports table: %w", err)
	}
	return nil
}

// SaveReport inserts the report, or updates it when the id already exists
func (r *LedgerRepository) SaveReport(ctx context.Context, report *domain.SyncReport) error {
	recordsJSON, err := json.Marshal(report.Records)
	if err != nil {
		r.logger.Error("Failed to marshal records", "error", err)
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	row := reportRow{
		ID:          report.ID,
		RunID:       report.RunID,
		Spec:        report.Spec,
		Phase:       string(report.Phase),
		Outcome:     string(report.Outcome),
		Records:     string(recordsJSON),
		Uploaded:    report.Uploaded,
		UploadFails: report.UploadFails,
		Error:       report.Error,
		StartedAt:   report.StartedAt,
		FinishedAt:  report.FinishedAt,
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, run_id, spec, phase, outcome, records,
			uploaded, upload_failures, error, started_at, finished_at
		) VALUES (
			:id, :run_id, :spec, :phase, :outcome, :records,
			:uploaded, :upload_failures, :error, :started_at, :finished_at
		)
		ON CONFLICT (id) DO UPDATE SET
			phase = EXCLUDED.phase,
			outcome = EXCLUDED.outcome,
			records = EXCLUDED.records,
			uploaded = EXCLUDED.uploaded,
			upload_failures = EXCLUDED.upload_failures,
			error = EXCLUDED.error,
			finished_at = EXCLUDED.finished_at
	`, r.table)

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		r.logger.Error("Failed to save sync report", "runId", report.RunID, "error", err)
		return fmt.Errorf("failed to save sync report: %w", err)
	}

	return nil
}

// GetReports returns the run's reports ordered by start time
func (r *LedgerRepository) GetReports(ctx context.Context, runID int) ([]*domain.SyncReport, error) {
	query := fmt.Sprintf(`
		SELECT id, run_id, spec, phase, outcome, records,
			   uploaded, upload_failures, error, started_at, finished_at
		FROM %s
		WHERE run_id = $1
		ORDER BY started_at ASC
	`, r.table)

	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, runID); err != nil {
		r.logger.Error("Failed to get sync reports", "runId", runID, "error", err)
		return nil, fmt.Errorf("failed to get sync reports: %w", err)
	}

	reports := make([]*domain.SyncReport, 0, len(rows))
	for _, row := range rows {
		report, err := row.toDomain()
		if err != nil {
			r.logger.Error("Failed to unmarshal records", "reportId", row.ID, "error", err)
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, nil
}

func (row reportRow) toDomain() (*domain.SyncReport, error) {
	records := make([]domain.ResultRecord, 0)
	if len(row.Records) > 0 {
		if err := json.Unmarshal([]byte(row.Records), &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal records: %w", err)
		}
	}
	return &domain.SyncReport{
		ID:          row.ID,
		RunID:       row.RunID,
		Spec:        row.Spec,
		Phase:       domain.SyncPhase(row.Phase),
		Outcome:     domain.SyncOutcome(row.Outcome),
		Records:     records,
		Uploaded:    row.Uploaded,
		UploadFails: row.UploadFails,
		Error:       row.Error,
		StartedAt:   row.StartedAt,
		FinishedAt:  row.FinishedAt,
	}, nil
}
