package attachment

import (
	"context"

	"gitlab.com/railsync.net/internal/domain"
)

// IAttachmentUploader defines the interface for attaching screenshots to results
type IAttachmentUploader interface {
	// UploadScreenshots uploads every failure screenshot of caseID to resultID
	UploadScreenshots(ctx context.Context, caseID domain.CaseID, resultID int) domain.UploadSummary
}
