package testrail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/railsync.net/internal/domain"
	"gitlab.com/railsync.net/internal/static/errs"
)

// maxPages stops a server that keeps returning the same next link
const maxPages = 1000

// testsPage is the paginated get_tests envelope of TestRail 6.7 and later.
// Older servers return a bare array.
type testsPage struct {
	Tests []domain.RemoteRunTest `json:"tests"`
	Links struct {
		Next *string `json:"next"`
	} `json:"_links"`
}

// GetTestsForRun returns every test of the run, following _links.next
func (c *Client) GetTestsForRun(ctx context.Context, runID int) ([]domain.RemoteRunTest, error) {
	url := c.endpoint("get_tests/%d", runID)
	tests := make([]domain.RemoteRunTest, 0)

	for page := 0; page < maxPages; page++ {
		var raw json.RawMessage
		if err := c.getJSON(ctx, "get_tests", url, &raw); err != nil {
			return nil, err
		}

		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var list []domain.RemoteRunTest
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return nil, &errs.TransportError{Op: "get_tests", Err: fmt.Errorf("failed to decode tests: %w", err)}
			}
			return append(tests, list...), nil
		}

		var p testsPage
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, &errs.TransportError{Op: "get_tests", Err: fmt.Errorf("failed to decode tests page: %w", err)}
		}
		tests = append(tests, p.Tests...)

		if p.Links.Next == nil || *p.Links.Next == "" {
			return tests, nil
		}
		url = c.nextPage(*p.Links.Next)
	}

	return nil, &errs.TransportError{Op: "get_tests", Err: fmt.Errorf("more than %d pages", maxPages)}
}

// nextPage turns a "/api/v2/get_tests/1&offset=250" link into a full URL
func (c *Client) nextPage(next string) string {
	if strings.HasPrefix(next, "http://") || strings.HasPrefix(next, "https://") {
		return next
	}
	return c.host + "/index.php?" + next
}
