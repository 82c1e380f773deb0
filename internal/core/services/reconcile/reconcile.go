// Package reconcile turns runner results into TestRail result records.
package reconcile

import (
	"regexp"
	"strconv"

	"gitlab.com/railsync.net/internal/domain"
)

// leafCaseIDRegExp is looser than the title and spec patterns: the id only
// needs to be followed by whitespace. Only the first match is used.
var leafCaseIDRegExp = regexp.MustCompile(`C(\d+)\s`)

// MapState maps a runner state to a TestRail status.
// Only Passed and Failed are ever produced.
func MapState(state domain.TestState) domain.StatusID {
	if state == domain.TestStatePassed {
		return domain.StatusPassed
	}
	return domain.StatusFailed
}

// LeafCaseID returns the case id tagged in a leaf test title.
func LeafCaseID(title string) (domain.CaseID, bool) {
	m := leafCaseIDRegExp.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil || id <= 0 {
		return 0, false
	}
	return domain.CaseID(id), true
}

// Results builds one record per test whose leaf title carries a case id.
// Suite titles are never scanned. Untagged tests are dropped.
func Results(tests []domain.LocalTestResult) []domain.ResultRecord {
	records := make([]domain.ResultRecord, 0, len(tests))
	for _, test := range tests {
		caseID, ok := LeafCaseID(test.LeafTitle())
		if !ok {
			continue
		}
		records = append(records, domain.ResultRecord{
			CaseID:   caseID,
			StatusID: MapState(test.State),
		})
	}
	return records
}
