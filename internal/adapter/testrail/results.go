package testrail

import (
	"context"

	"gitlab.com/railsync.net/internal/domain"
)

type addResultsRequest struct {
	Results []domain.ResultRecord `json:"results"`
}

// AddResultsForCases posts all records to add_results_for_cases in one call
func (c *Client) AddResultsForCases(ctx context.Context, runID int, records []domain.ResultRecord) ([]domain.RemoteResult, error) {
	c.logger.Debug("Sending test results to TestRail", "count", len(records), "runId", runID)

	var results []domain.RemoteResult
	err := c.postJSON(ctx, "add_results_for_cases", c.endpoint("add_results_for_cases/%d", runID), addResultsRequest{Results: records}, &results)
	if err != nil {
		return nil, err
	}
	return results, nil
}
