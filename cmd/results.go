package main

import (
	"encoding/json"
	"errors"

	"gitlab.com/railsync.net/internal/domain"
)

// moduleResults is the part of the Cypress module API results we read
type moduleResults struct {
	Runs []domain.SpecResults `json:"runs"`
}

// parseResults accepts module API results or a single after:spec payload
func parseResults(data []byte) ([]domain.SpecResults, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	if _, ok := probe["runs"]; ok {
		var results moduleResults
		if err := json.Unmarshal(data, &results); err != nil {
			return nil, err
		}
		return results.Runs, nil
	}

	if _, ok := probe["tests"]; !ok {
		return nil, errors.New("expected a \"runs\" or \"tests\" field")
	}
	var spec domain.SpecResults
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	return []domain.SpecResults{spec}, nil
}
