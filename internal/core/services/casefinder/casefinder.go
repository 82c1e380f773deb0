// Package casefinder extracts TestRail case ids from test titles and spec sources.
package casefinder

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gitlab.com/railsync.net/internal/domain"
)

var (
	titleCaseIDRegExp = regexp.MustCompile(`\bT?C(\d+)\b`)
	specCaseIDRegExp  = regexp.MustCompile(`C\d+`)
)

// SpecReader loads the source of a spec file.
type SpecReader func(path string) ([]byte, error)

// TitleToCaseIDs returns every C123 or TC123 word in title, in order.
// Duplicates are kept.
func TitleToCaseIDs(title string) []domain.CaseID {
	caseIDs := make([]domain.CaseID, 0)
	for _, m := range titleCaseIDRegExp.FindAllStringSubmatch(title, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil || id <= 0 {
			continue
		}
		caseIDs = append(caseIDs, domain.CaseID(id))
	}
	return caseIDs
}

// FindCasesInSpec returns the case ids found in raw spec source.
// A C<digits> token counts only when a quote, backtick or whitespace sits
// directly before or after it, e.g. it('C101: title') yields 101.
func FindCasesInSpec(source string) []domain.CaseID {
	caseIDs := make([]domain.CaseID, 0)
	for _, loc := range specCaseIDRegExp.FindAllStringIndex(source, -1) {
		start, end := loc[0], loc[1]
		before := start > 0 && isDelimiter(source[start-1])
		after := end < len(source) && isDelimiter(source[end])
		if !before && !after {
			continue
		}
		id, err := strconv.Atoi(source[start+1 : end])
		if err != nil || id <= 0 {
			continue
		}
		caseIDs = append(caseIDs, domain.CaseID(id))
	}
	return caseIDs
}

// FindCases reads every spec and concatenates their case ids, keeping
// per-spec order. A nil reader reads from disk.
func FindCases(specs []string, read SpecReader) ([]domain.CaseID, error) {
	if read == nil {
		read = os.ReadFile
	}
	caseIDs := make([]domain.CaseID, 0)
	for _, spec := range specs {
		source, err := read(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to read spec %s: %w", spec, err)
		}
		caseIDs = append(caseIDs, FindCasesInSpec(string(source))...)
	}
	return caseIDs, nil
}

// Unique drops repeated ids, keeping first occurrences.
func Unique(caseIDs []domain.CaseID) []domain.CaseID {
	seen := make(map[domain.CaseID]struct{}, len(caseIDs))
	out := make([]domain.CaseID, 0, len(caseIDs))
	for _, id := range caseIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func isDelimiter(c byte) bool {
	return strings.IndexByte("'\"` \t\r\n", c) >= 0
}
