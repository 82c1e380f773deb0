package testrail

import (
	"context"

	"gitlab.com/railsync.net/internal/domain"
)

func (c *Client) GetRun(ctx context.Context, runID int) (*domain.Run, error) {
	var run domain.Run
	if err := c.getJSON(ctx, "get_run", c.endpoint("get_run/%d", runID), &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (c *Client) CloseRun(ctx context.Context, runID int) (*domain.Run, error) {
	var run domain.Run
	if err := c.postJSON(ctx, "close_run", c.endpoint("close_run/%d", runID), struct{}{}, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (c *Client) AddRun(ctx context.Context, projectID int, newRun domain.NewRun) (*domain.Run, error) {
	var run domain.Run
	if err := c.postJSON(ctx, "add_run", c.endpoint("add_run/%d", projectID), newRun, &run); err != nil {
		return nil, err
	}
	return &run, nil
}
