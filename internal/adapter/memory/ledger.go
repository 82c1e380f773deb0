package memory

import (
	"context"
	"sync"

	"gitlab.com/railsync.net/internal/core/ports/secondary"
	"gitlab.com/railsync.net/internal/domain"
)

var _ secondary.SyncLedger = (*Ledger)(nil)

// Ledger keeps sync reports in process memory. It is the default when no
// ledger driver is configured.
type Ledger struct {
	mu      sync.RWMutex
	reports map[int][]*domain.SyncReport
}

func NewLedger() *Ledger {
	return &Ledger{reports: make(map[int][]*domain.SyncReport)}
}

func (l *Ledger) SaveReport(ctx context.Context, report *domain.SyncReport) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *report
	cp.Records = append([]domain.ResultRecord(nil), report.Records...)
	l.reports[report.RunID] = append(l.reports[report.RunID], &cp)
	return nil
}

func (l *Ledger) GetReports(ctx context.Context, runID int) ([]*domain.SyncReport, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*domain.SyncReport, len(l.reports[runID]))
	copy(out, l.reports[runID])
	return out, nil
}
