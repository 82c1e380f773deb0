package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gitlab.com/railsync.net/internal/static/errs"
)

const (
	EnvRunID  = "TESTRAIL_RUN_ID"
	RunIDFile = "runId.txt"
)

// ResolveRunID reads the run id from TESTRAIL_RUN_ID, falling back to
// runId.txt in dir.
func ResolveRunID(env map[string]string, dir string) (int, error) {
	if v, ok := env[EnvRunID]; ok {
		return parseRunID(v, EnvRunID)
	}

	filename := filepath.Join(dir, RunIDFile)
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: set %s or write %s", errs.ErrMissingRunID, EnvRunID, filename)
		}
		return 0, errs.Configuration("failed to read %s: %v", filename, err)
	}
	return parseRunID(string(data), filename)
}

// SaveRunID writes the run id to runId.txt in dir.
func SaveRunID(dir string, runID int) (string, error) {
	filename := filepath.Join(dir, RunIDFile)
	if err := os.WriteFile(filename, []byte(strconv.Itoa(runID)+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

func parseRunID(raw, source string) (int, error) {
	s := strings.TrimSpace(raw)
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid run id %q in %s", errs.ErrMissingRunID, s, source)
	}
	return id, nil
}
