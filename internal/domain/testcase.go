package domain

// CaseID is the TestRail primary key of a test case.
type CaseID int

// StatusID is a TestRail result status.
type StatusID int

const (
	StatusPassed   StatusID = 1
	StatusBlocked  StatusID = 2
	StatusUntested StatusID = 3
	StatusRetest   StatusID = 4
	StatusFailed   StatusID = 5
)

func (s StatusID) String() string {
	switch s {
	case StatusPassed:
		return "Passed"
	case StatusBlocked:
		return "Blocked"
	case StatusUntested:
		return "Untested"
	case StatusRetest:
		return "Retest"
	case StatusFailed:
		return "Failed"
	}
	return "Unknown"
}
