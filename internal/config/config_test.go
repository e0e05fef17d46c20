package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9100
  log_level: debug
archive:
  data_dir: /var/archive
  fetch_concurrency: 5
upstream:
  url: https://upstream.test/v2
  max_retries: 2
workspaces:
  - name: HKEAA
    board_ids: ["100", "101"]
    dev_board_ids: ["100"]
  - name: HAD
    board_ids: ["200"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8010, cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.Equal(t, "data", cfg.Archive.DataDir)
	assert.Equal(t, 10, cfg.Archive.FetchConcurrency)
	assert.Equal(t, 20, cfg.Archive.DownloadConcurrency)
	assert.Equal(t, "https://api.monday.com/v2", cfg.Upstream.URL)
	assert.Equal(t, 3, cfg.Upstream.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Upstream.RetryDelay)
	assert.Empty(t, cfg.Workspaces)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "/var/archive", cfg.Archive.DataDir)
	assert.Equal(t, 5, cfg.Archive.FetchConcurrency)
	assert.Equal(t, "https://upstream.test/v2", cfg.Upstream.URL)
	assert.Equal(t, 2, cfg.Upstream.MaxRetries)
	// Untouched keys keep their defaults.
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	require.Len(t, cfg.Workspaces, 2)
	assert.Equal(t, []string{"100", "101"}, cfg.Workspaces[0].BoardIDs)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DATA_DIR", "/tmp/override")
	t.Setenv("MONDAY_API_URL", "https://env.test/v2")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, "/tmp/override", cfg.Archive.DataDir)
	assert.Equal(t, "https://env.test/v2", cfg.Upstream.URL)
}

func TestLoad_WorkspaceTokens(t *testing.T) {
	t.Setenv("MONDAY_API_TOKEN", "shared")
	t.Setenv("MONDAY_API_TOKEN_2", "had-token")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "shared", cfg.Workspaces[0].Token)
	assert.Equal(t, "had-token", cfg.Workspaces[1].Token)
	assert.True(t, cfg.HasTokens())
}

func TestHasTokens(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.HasTokens())

	cfg.Workspaces = []WorkspaceConfig{{Name: "A", Token: "t"}, {Name: "B"}}
	assert.False(t, cfg.HasTokens())

	cfg.Workspaces[1].Token = "u"
	assert.True(t, cfg.HasTokens())
}

func TestSelectBoards(t *testing.T) {
	cfg := &Config{Workspaces: []WorkspaceConfig{
		{Name: "HKEAA", Token: "t1", BoardIDs: []string{"100", "101"}, DevBoardIDs: []string{"100"}},
		{Name: "HAD", Token: "t2", BoardIDs: []string{"200"}},
	}}

	all := cfg.SelectBoards(false)
	require.Len(t, all, 3)
	assert.Equal(t, BoardSelection{BoardID: "100", Workspace: "HKEAA", Token: "t1"}, all[0])
	assert.Equal(t, BoardSelection{BoardID: "200", Workspace: "HAD", Token: "t2"}, all[2])

	// Dev mode archives each workspace's dev subset only.
	dev := cfg.SelectBoards(true)
	require.Len(t, dev, 1)
	assert.Equal(t, "100", dev[0].BoardID)
}

func TestWorkspaceFor(t *testing.T) {
	cfg := &Config{Workspaces: []WorkspaceConfig{
		{Name: "HKEAA", BoardIDs: []string{"100"}, DevBoardIDs: []string{"150"}},
		{Name: "HAD", BoardIDs: []string{"200"}},
	}}

	assert.Equal(t, "HKEAA", cfg.WorkspaceFor("100"))
	assert.Equal(t, "HKEAA", cfg.WorkspaceFor("150"))
	assert.Equal(t, "HAD", cfg.WorkspaceFor("200"))
	assert.Equal(t, "", cfg.WorkspaceFor("999"))
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [not a map"))
	assert.Error(t, err)
}
