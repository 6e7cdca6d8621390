package config

import (
	"errors"
	"os"
	"path/filepath"
)

const defaultConfig = `boards:
  - name: Scale Army Careers
    url: https://api.ashbyhq.com/posting-api/job-board/Scale%20Army%20Careers

state:
  file: jobs.json

archive:
  enabled: true
  file: jobwatch.db

fetch:
  timeout_seconds: 15

notify:
  heartbeat: true
  timeout_seconds: 10
  retry_delay_seconds: 5
  messages_per_second: 1
  snippet_max_runes: 200
`

// EnsureUserConfig returns the path of the user config inside dataDir,
// writing the built-in default there first if none exists yet.
func EnsureUserConfig(dataDir string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := os.WriteFile(userPath, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}
	return userPath, nil
}
