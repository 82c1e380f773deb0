package config

const (
	defaultScreenshotsDir = "cypress/screenshots"
	defaultUploadWorkers  = 4
)

type SyncConfig struct {
	ScreenshotsDir string
	UploadWorkers  int
}

func NewSyncConfig(env map[string]string) *SyncConfig {
	workers := getInt(env, "SYNC_UPLOAD_WORKERS", defaultUploadWorkers)
	if workers < 1 {
		workers = 1
	}
	return &SyncConfig{
		ScreenshotsDir: getString(env, "SCREENSHOTS_DIR", defaultScreenshotsDir),
		UploadWorkers:  workers,
	}
}
