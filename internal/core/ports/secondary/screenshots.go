package secondary

import "context"

// ScreenshotStore lists screenshot files produced by the runner.
type ScreenshotStore interface {
	// ListFiles returns every file below the screenshots root.
	// A missing root is reported as an error wrapping fs.ErrNotExist.
	ListFiles(ctx context.Context) ([]string, error)
}
