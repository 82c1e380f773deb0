package screenshots

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gitlab.com/railsync.net/internal/core/ports/secondary"
)

const DefaultRoot = "cypress/screenshots"

var _ secondary.ScreenshotStore = (*Store)(nil)

// Store lists screenshot files below a root folder.
// Nothing is cached, every call walks the tree again.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	if root == "" {
		root = DefaultRoot
	}
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

// ListFiles walks the root recursively and returns regular file paths in
// lexical order.
func (s *Store) ListFiles(ctx context.Context) ([]string, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat screenshots folder %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("screenshots path %s is not a folder: %w", s.root, fs.ErrNotExist)
	}

	var files []string
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk screenshots folder %s: %w", s.root, err)
	}

	sort.Strings(files)
	return files, nil
}
