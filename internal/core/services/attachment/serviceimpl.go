package attachment

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"gitlab.com/railsync.net/internal/core/ports/primary"
	"gitlab.com/railsync.net/internal/core/ports/secondary"
	"gitlab.com/railsync.net/internal/domain"
)

var _ IAttachmentUploader = (*Uploader)(nil)

var failureShotRegExp = regexp.MustCompile(`failed|attempt`)

// Uploader attaches screenshots of failed tests to TestRail results
type Uploader struct {
	client secondary.AttachmentClient
	store  secondary.ScreenshotStore
	logger primary.Logger
}

// NewUploader creates a new screenshot uploader
func NewUploader(client secondary.AttachmentClient, store secondary.ScreenshotStore, logger primary.Logger) *Uploader {
	return &Uploader{
		client: client,
		store:  store,
		logger: logger,
	}
}

// MatchesCase reports whether a screenshot path belongs to a failure of caseID.
func MatchesCase(path string, caseID domain.CaseID) bool {
	return strings.Contains(path, fmt.Sprintf("C%d", caseID)) && failureShotRegExp.MatchString(path)
}

// UploadScreenshots uploads every matching screenshot, one file at a time.
// A failed upload is logged and the next file is still attempted.
func (u *Uploader) UploadScreenshots(ctx context.Context, caseID domain.CaseID, resultID int) domain.UploadSummary {
	summary := domain.UploadSummary{CaseID: caseID, ResultID: resultID}
	u.logger.Debug("Uploading screenshots", "caseId", caseID, "resultId", resultID)

	files, err := u.store.ListFiles(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			u.logger.Debug("No screenshots folder, nothing to upload", "caseId", caseID)
			return summary
		}
		u.logger.Error("Unable to scan screenshots folder", "error", err)
		return summary
	}
	u.logger.Debug("Found screenshots", "count", len(files))

	for _, file := range files {
		if !MatchesCase(file, caseID) {
			continue
		}
		if err := u.client.UploadAttachment(ctx, resultID, file); err != nil {
			u.logger.Error("Screenshot upload error", "file", file, "resultId", resultID, "error", err)
			summary.Failed++
			continue
		}
		u.logger.Info("Screenshot uploaded", "file", file, "resultId", resultID)
		summary.Uploaded++
	}

	return summary
}
