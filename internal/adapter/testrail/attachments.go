package testrail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"gitlab.com/railsync.net/internal/static/errs"
)

type attachmentResponse struct {
	AttachmentID interface{} `json:"attachment_id"`
}

// UploadAttachment sends the file as multipart field "attachment" to add_attachment_to_result
func (c *Client) UploadAttachment(ctx context.Context, resultID int, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open attachment %s: %w", path, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("attachment", filepath.Base(path))
	if err != nil {
		return &errs.TransportError{Op: "add_attachment_to_result", Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read attachment %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return &errs.TransportError{Op: "add_attachment_to_result", Err: err}
	}

	var resp attachmentResponse
	err = c.do(ctx, "add_attachment_to_result", http.MethodPost,
		c.endpoint("add_attachment_to_result/%d", resultID), &body, writer.FormDataContentType(), &resp)
	if err != nil {
		return err
	}

	c.logger.Debug("Attachment added", "resultId", resultID, "file", path, "attachmentId", resp.AttachmentID)
	return nil
}
