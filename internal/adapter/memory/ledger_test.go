package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/railsync.net/internal/domain"
)

func TestLedger_KeepsReportsPerRunInOrder(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	first := domain.NewSyncReport(1, "a.cy.js")
	second := domain.NewSyncReport(1, "b.cy.js")
	other := domain.NewSyncReport(2, "c.cy.js")

	require.NoError(t, ledger.SaveReport(ctx, first))
	require.NoError(t, ledger.SaveReport(ctx, other))
	require.NoError(t, ledger.SaveReport(ctx, second))

	reports, err := ledger.GetReports(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "a.cy.js", reports[0].Spec)
	assert.Equal(t, "b.cy.js", reports[1].Spec)

	empty, err := ledger.GetReports(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLedger_StoresCopies(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	report := domain.NewSyncReport(1, "a.cy.js")
	report.Records = []domain.ResultRecord{{CaseID: 1, StatusID: domain.StatusPassed}}
	require.NoError(t, ledger.SaveReport(ctx, report))

	report.Spec = "mutated"
	report.Records[0].CaseID = 2

	reports, _ := ledger.GetReports(ctx, 1)
	assert.Equal(t, "a.cy.js", reports[0].Spec)
	assert.Equal(t, domain.CaseID(1), reports[0].Records[0].CaseID)
}
