package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig      `yaml:"server"`
	Archive    ArchiveConfig     `yaml:"archive"`
	Upstream   UpstreamConfig    `yaml:"upstream"`
	Workspaces []WorkspaceConfig `yaml:"workspaces"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	BasePath        string        `yaml:"base_path"`
	Env             string        `yaml:"env"`
	LogLevel        string        `yaml:"log_level"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type ArchiveConfig struct {
	DataDir             string        `yaml:"data_dir"`
	FetchConcurrency    int           `yaml:"fetch_concurrency"`
	DownloadConcurrency int           `yaml:"download_concurrency"`
	DownloadTimeout     time.Duration `yaml:"download_timeout"`
}

type UpstreamConfig struct {
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// WorkspaceConfig names one upstream workspace: its API token and the board
// identifiers archived from it. The same table is the serving-side grouping.
type WorkspaceConfig struct {
	Name        string   `yaml:"name"`
	Token       string   `yaml:"token"`
	BoardIDs    []string `yaml:"board_ids"`
	DevBoardIDs []string `yaml:"dev_board_ids"`
}

// BoardSelection pairs one board identifier with the token of its workspace.
type BoardSelection struct {
	BoardID   string
	Workspace string
	Token     string
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            8010,
			BasePath:        "/api",
			Env:             "dev",
			LogLevel:        "info",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Archive: ArchiveConfig{
			DataDir:             "data",
			FetchConcurrency:    10,
			DownloadConcurrency: 20,
			DownloadTimeout:     10 * time.Minute,
		},
		Upstream: UpstreamConfig{
			URL:        "https://api.monday.com/v2",
			Timeout:    5 * time.Minute,
			MaxRetries: 3,
			RetryDelay: 2 * time.Second,
		},
	}

	// Load from yaml file if exists
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// Override with environment variables
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Server.Env = env
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		cfg.Archive.DataDir = dataDir
	}
	if apiURL := os.Getenv("MONDAY_API_URL"); apiURL != "" {
		cfg.Upstream.URL = apiURL
	}

	// Workspace tokens: MONDAY_API_TOKEN_<n> (1-based position in the
	// workspace table) with MONDAY_API_TOKEN as the shared fallback.
	fallback := os.Getenv("MONDAY_API_TOKEN")
	for i := range cfg.Workspaces {
		if token := os.Getenv(fmt.Sprintf("MONDAY_API_TOKEN_%d", i+1)); token != "" {
			cfg.Workspaces[i].Token = token
		} else if cfg.Workspaces[i].Token == "" {
			cfg.Workspaces[i].Token = fallback
		}
	}

	return cfg, nil
}

// SelectBoards flattens the workspace table into per-board selections.
// In dev mode each workspace contributes its dev subset instead.
func (c *Config) SelectBoards(dev bool) []BoardSelection {
	var selections []BoardSelection
	for _, ws := range c.Workspaces {
		boardIDs := ws.BoardIDs
		if dev {
			boardIDs = ws.DevBoardIDs
		}
		for _, boardID := range boardIDs {
			selections = append(selections, BoardSelection{
				BoardID:   boardID,
				Workspace: ws.Name,
				Token:     ws.Token,
			})
		}
	}
	return selections
}

// HasTokens reports whether every workspace carries an API token.
func (c *Config) HasTokens() bool {
	if len(c.Workspaces) == 0 {
		return false
	}
	for _, ws := range c.Workspaces {
		if ws.Token == "" {
			return false
		}
	}
	return true
}

// WorkspaceFor returns the workspace name a board identifier belongs to,
// or "" when the board is outside every configured mapping.
func (c *Config) WorkspaceFor(boardID string) string {
	for _, ws := range c.Workspaces {
		for _, id := range ws.BoardIDs {
			if id == boardID {
				return ws.Name
			}
		}
		for _, id := range ws.DevBoardIDs {
			if id == boardID {
				return ws.Name
			}
		}
	}
	return ""
}
