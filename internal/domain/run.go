package domain

// Run is the TestRail run metadata returned by get_run and close_run
type Run struct {
	ID            int    `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	SuiteID       int    `json:"suite_id,omitempty" yaml:"suite_id,omitempty"`
	ProjectID     int    `json:"project_id" yaml:"project_id"`
	IsCompleted   bool   `json:"is_completed" yaml:"is_completed"`
	CompletedOn   *int64 `json:"completed_on,omitempty" yaml:"completed_on,omitempty"`
	PassedCount   int    `json:"passed_count" yaml:"passed_count"`
	BlockedCount  int    `json:"blocked_count" yaml:"blocked_count"`
	UntestedCount int    `json:"untested_count" yaml:"untested_count"`
	RetestCount   int    `json:"retest_count" yaml:"retest_count"`
	FailedCount   int    `json:"failed_count" yaml:"failed_count"`
	URL           string `json:"url,omitempty" yaml:"url,omitempty"`
}

// NewRun is the add_run request body.
type NewRun struct {
	SuiteID     int      `json:"suite_id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	IncludeAll  bool     `json:"include_all"`
	CaseIDs     []CaseID `json:"case_ids,omitempty"`
}
