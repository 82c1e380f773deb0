package screenshots

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFiles_Recursive(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"b/C2-failed.png", "a/nested/C1 (attempt 2).png", "top.png"} {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}

	files, err := NewStore(root).ListFiles(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a/nested/C1 (attempt 2).png"),
		filepath.Join(root, "b/C2-failed.png"),
		filepath.Join(root, "top.png"),
	}, files)
}

func TestListFiles_MissingRoot(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "nope")).ListFiles(context.Background())

	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestListFiles_CancelledContext(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.png"), nil, 0o600))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore(root).ListFiles(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewStore_DefaultRoot(t *testing.T) {
	assert.Equal(t, DefaultRoot, NewStore("").Root())
}
