package ledgerport

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/railsync.net/internal/adapter/logging"
	"gitlab.com/railsync.net/internal/domain"
)

func newRepository(t *testing.T) (*LedgerRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLedgerRepository(client, logging.NewNopLogger()), mr
}

func TestRunKey(t *testing.T) {
	assert.Equal(t, "sync:run:42", runKey(42))
}

func TestSaveReport_AppendsWithExpiry(t *testing.T) {
	repo, mr := newRepository(t)
	ctx := context.Background()

	first := domain.NewSyncReport(42, "a.cy.js")
	first.Records = []domain.ResultRecord{{CaseID: 1, StatusID: domain.StatusFailed}}
	second := domain.NewSyncReport(42, "b.cy.js")

	require.NoError(t, repo.SaveReport(ctx, first))
	require.NoError(t, repo.SaveReport(ctx, second))

	items, err := mr.List("sync:run:42")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, ledgerExpiration, mr.TTL("sync:run:42"))
}

func TestGetReports_KeepsSaveOrder(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := context.Background()

	for _, spec := range []string{"a.cy.js", "b.cy.js", "c.cy.js"} {
		require.NoError(t, repo.SaveReport(ctx, domain.NewSyncReport(7, spec)))
	}
	require.NoError(t, repo.SaveReport(ctx, domain.NewSyncReport(8, "other.cy.js")))

	reports, err := repo.GetReports(ctx, 7)

	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "a.cy.js", reports[0].Spec)
	assert.Equal(t, "b.cy.js", reports[1].Spec)
	assert.Equal(t, "c.cy.js", reports[2].Spec)
}

func TestGetReports_SkipsUnreadableEntries(t *testing.T) {
	repo, mr := newRepository(t)
	ctx := context.Background()

	report := domain.NewSyncReport(9, "a.cy.js")
	report.Records = []domain.ResultRecord{{CaseID: 3, StatusID: domain.StatusPassed}}
	report.Finish(domain.OutcomeCompleted, nil)
	require.NoError(t, repo.SaveReport(ctx, report))
	_, err := mr.RPush("sync:run:9", "not json")
	require.NoError(t, err)

	reports, err := repo.GetReports(ctx, 9)

	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report.ID, reports[0].ID)
	assert.Equal(t, report.Records, reports[0].Records)
	assert.Equal(t, domain.OutcomeCompleted, reports[0].Outcome)
	require.NotNil(t, reports[0].FinishedAt)
}

func TestGetReports_UnknownRun(t *testing.T) {
	repo, _ := newRepository(t)

	reports, err := repo.GetReports(context.Background(), 404)

	require.NoError(t, err)
	assert.Empty(t, reports)
}
