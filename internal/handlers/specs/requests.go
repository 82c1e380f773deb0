package specs

import "gitlab.com/railsync.net/internal/domain"

// ExtractCasesRequest lists the test titles to scan for case ids
type ExtractCasesRequest struct {
	Titles []string `json:"titles"`
}

// ExtractCasesResponse maps every requested title to its case ids
type ExtractCasesResponse struct {
	Cases map[string][]domain.CaseID `json:"cases"`
}
