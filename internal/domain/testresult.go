package domain

// TestState is the state Cypress reports for an executed test
type TestState string

const (
	TestStatePassed  TestState = "passed"
	TestStateFailed  TestState = "failed"
	TestStatePending TestState = "pending"
	TestStateSkipped TestState = "skipped"
)

// LocalTestResult is one executed test as reported by the runner.
// Title is the suite path ending with the test name.
type LocalTestResult struct {
	Title []string  `json:"title"`
	State TestState `json:"state"`
}

// LeafTitle returns the test name without the suite titles.
func (r LocalTestResult) LeafTitle() string {
	if len(r.Title) == 0 {
		return ""
	}
	return r.Title[len(r.Title)-1]
}

type SpecInfo struct {
	Name     string `json:"name,omitempty"`
	Relative string `json:"relative"`
	Absolute string `json:"absolute,omitempty"`
}

// SpecResults is the after:spec payload for one spec execution
type SpecResults struct {
	Spec  SpecInfo          `json:"spec"`
	Tests []LocalTestResult `json:"tests"`
}

// ResultRecord is a single entry of the add_results_for_cases payload.
type ResultRecord struct {
	CaseID   CaseID   `json:"case_id"`
	StatusID StatusID `json:"status_id"`
}

// RemoteResult is a result created by TestRail in response to a submit.
type RemoteResult struct {
	ID       int      `json:"id"`
	TestID   int      `json:"test_id"`
	StatusID StatusID `json:"status_id"`
	CaseID   CaseID   `json:"case_id,omitempty"`
}

// RemoteRunTest links a test entry of a run to its case.
type RemoteRunTest struct {
	ID     int    `json:"id"`
	CaseID CaseID `json:"case_id"`
	Title  string `json:"title,omitempty"`
}
