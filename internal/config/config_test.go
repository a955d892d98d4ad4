package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NOTESBOARD_CONFIG", "USERS_API_URL", "NOTES_API_URL", "PORT", "LOG_LEVEL",
		"POLL_INTERVAL", "NOTIFY_TIMEOUT", "REQUEST_TIMEOUT", "SESSION_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 15*time.Second, cfg.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.NotifyTimeout)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
users_base_url: http://users.internal:5000
notes_base_url: http://notes.internal:5001
poll_interval: 30s
log_level: debug
`), 0o644))

	t.Setenv("NOTES_API_URL", "http://override:9000")
	t.Setenv("NOTIFY_TIMEOUT", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://users.internal:5000", cfg.UsersBaseURL)
	assert.Equal(t, "http://override:9000", cfg.NotesBaseURL)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "3000", cfg.Port)
}

func TestLoad_PathFromEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"8080\"\n"), 0o644))
	t.Setenv("NOTESBOARD_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("POLL_INTERVAL", "soon")
	_, err = Load("")
	assert.ErrorContains(t, err, "POLL_INTERVAL")

	t.Setenv("POLL_INTERVAL", "0s")
	_, err = Load("")
	assert.ErrorContains(t, err, "poll interval")

	t.Setenv("POLL_INTERVAL", "500ms")
	_, err = Load("")
	assert.ErrorContains(t, err, "poll interval must be at least 1s")

	t.Setenv("POLL_INTERVAL", "1500ms")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.PollInterval)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("NOTESBOARD_TEST_KEY", "")
	assert.Equal(t, "fallback", GetEnv("NOTESBOARD_TEST_KEY", "fallback"))

	t.Setenv("NOTESBOARD_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("NOTESBOARD_TEST_KEY", "fallback"))
}
