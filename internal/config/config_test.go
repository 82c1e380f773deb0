package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/railsync.net/internal/static/errs"
)

func validEnv() map[string]string {
	return map[string]string{
		EnvHost:      "https://acme.testrail.io/",
		EnvUsername:  "qa@acme.io",
		EnvPassword:  "api-key",
		EnvProjectID: "3",
	}
}

func TestNewTestRailConfig_Valid(t *testing.T) {
	env := validEnv()
	env[EnvSuiteID] = "12"

	cfg, err := NewTestRailConfig(env)

	require.NoError(t, err)
	assert.Equal(t, "https://acme.testrail.io", cfg.Host)
	assert.Equal(t, 3, cfg.ProjectID)
	assert.Equal(t, 12, cfg.SuiteID)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestNewTestRailConfig_MissingFields(t *testing.T) {
	tests := []struct {
		drop string
		want string
	}{
		{EnvHost, "TESTRAIL_HOST is required"},
		{EnvUsername, "TESTRAIL_USERNAME is required"},
		{EnvPassword, "TESTRAIL_PASSWORD is required. Could be an API key."},
		{EnvProjectID, "TESTRAIL_PROJECTID is required"},
	}
	for _, tt := range tests {
		t.Run(tt.drop, func(t *testing.T) {
			env := validEnv()
			delete(env, tt.drop)

			_, err := NewTestRailConfig(env)

			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrConfiguration))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewTestRailConfig_NonNumericProject(t *testing.T) {
	env := validEnv()
	env[EnvProjectID] = "abc"

	_, err := NewTestRailConfig(env)

	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestHasConfig(t *testing.T) {
	assert.False(t, HasConfig(map[string]string{"PATH": "/bin"}))
	assert.True(t, HasConfig(map[string]string{EnvPassword: ""}))
	assert.True(t, HasConfig(validEnv()))
}

func TestMasked(t *testing.T) {
	cfg, err := NewTestRailConfig(validEnv())
	require.NoError(t, err)

	assert.Equal(t, "<masked>", cfg.Masked().Password)
	assert.Equal(t, "api-key", cfg.Password)
}

func TestResolveRunID_FromEnv(t *testing.T) {
	id, err := ResolveRunID(map[string]string{EnvRunID: " 77 "}, t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 77, id)
}

func TestResolveRunID_FromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RunIDFile), []byte("123\n"), 0o600))

	id, err := ResolveRunID(map[string]string{}, dir)

	require.NoError(t, err)
	assert.Equal(t, 123, id)
}

func TestResolveRunID_Missing(t *testing.T) {
	_, err := ResolveRunID(map[string]string{}, t.TempDir())

	assert.ErrorIs(t, err, errs.ErrMissingRunID)
}

func TestResolveRunID_Invalid(t *testing.T) {
	_, err := ResolveRunID(map[string]string{EnvRunID: "run-1"}, t.TempDir())

	assert.ErrorIs(t, err, errs.ErrMissingRunID)
}

func TestSaveRunID_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveRunID(dir, 555)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, RunIDFile), path)

	id, err := ResolveRunID(map[string]string{}, dir)
	require.NoError(t, err)
	assert.Equal(t, 555, id)
}

func TestNewSystemConfig_Defaults(t *testing.T) {
	cfg, err := NewSystemConfig(validEnv())

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "cypress/screenshots", cfg.SyncConfig.ScreenshotsDir)
	assert.Equal(t, 4, cfg.SyncConfig.UploadWorkers)
	assert.Equal(t, 8082, cfg.ServerConfig.Port)
	assert.Equal(t, LedgerMemory, cfg.LedgerConfig.Driver)
	assert.False(t, cfg.JwtConfig.Enabled())
}

func TestNewSystemConfig_Overrides(t *testing.T) {
	env := validEnv()
	env["DEBUG_MODE"] = "true"
	env["SCREENSHOTS_DIR"] = "shots"
	env["SYNC_UPLOAD_WORKERS"] = "0"
	env["SERVER_JWT_SECRET"] = "s3cret"
	env["LEDGER_DRIVER"] = LedgerRedis

	cfg, err := NewSystemConfig(env)

	require.NoError(t, err)
	assert.True(t, cfg.DebugMode)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "shots", cfg.SyncConfig.ScreenshotsDir)
	assert.Equal(t, 1, cfg.SyncConfig.UploadWorkers)
	assert.True(t, cfg.JwtConfig.Enabled())
	assert.Equal(t, LedgerRedis, cfg.LedgerConfig.Driver)
}

func TestEnviron(t *testing.T) {
	t.Setenv("RAILSYNC_TEST_VAR", "a=b")

	assert.Equal(t, "a=b", Environ()["RAILSYNC_TEST_VAR"])
}
