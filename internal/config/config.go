package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Generation Generation `yaml:"generation"`
	Blog       Blog       `yaml:"blog"`
	Store      Store      `yaml:"store"`
	Server     Server     `yaml:"server"`
	Schedule   Schedule   `yaml:"schedule"`
}

type Generation struct {
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float64 `yaml:"temperature"`
	SiteURL     string  `yaml:"site_url"`
}

// APIKey reads the generation-service credential from the environment.
// An empty result means generation is not configured.
func (g Generation) APIKey() string {
	return os.Getenv(g.APIKeyEnv)
}

type Blog struct {
	PostLimit int `yaml:"post_limit"`
}

type Store struct {
	Driver     string `yaml:"driver"`
	RedisAddr  string `yaml:"redis_addr"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Configured reports whether a persistence binding is set for this
// deployment. An unconfigured store degrades reads to empty and
// refuses refreshes; it is not an error state.
func (s Store) Configured() bool {
	return s.Driver != ""
}

type Server struct {
	Port            int    `yaml:"port"`
	RefreshTokenEnv string `yaml:"refresh_token_env"`
}

// RefreshToken reads the manual-refresh bearer token from the
// environment. When empty the refresh endpoint is open, which is the
// intended low-friction default for preview deployments.
func (s Server) RefreshToken() string {
	return os.Getenv(s.RefreshTokenEnv)
}

type Schedule struct {
	Enabled  bool   `yaml:"enabled"`
	Interval string `yaml:"interval"`
}

// TickInterval parses the schedule interval, defaulting to 24h.
func (s Schedule) TickInterval() (time.Duration, error) {
	if s.Interval == "" {
		return 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s.Interval)
	if err != nil {
		return 0, fmt.Errorf("parsing schedule interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("schedule interval must be positive, got %s", s.Interval)
	}
	return d, nil
}

// ConfigDir returns the XDG config directory for blogpress.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "blogpress")
}

// DataDir returns the XDG data directory for blogpress.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "blogpress")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/blogpress/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'blogpress init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Generation: Generation{
			Model:       "gpt-4.1-mini",
			BaseURL:     "https://api.openai.com/v1",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.7,
			SiteURL:     "https://epf-2025.pages.dev",
		},
		Blog: Blog{PostLimit: 30},
		Store: Store{
			RedisAddr: "localhost:6379",
		},
		Server: Server{
			Port:            8080,
			RefreshTokenEnv: "BLOG_CRON_TOKEN",
		},
		Schedule: Schedule{Enabled: false, Interval: "24h"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Blog.PostLimit <= 0 {
		return nil, fmt.Errorf("blog.post_limit must be positive, got %d", cfg.Blog.PostLimit)
	}

	return cfg, nil
}

// SQLitePath returns the effective sqlite file path from config or the
// XDG default.
func (c *Config) SQLitePath() string {
	if c.Store.SQLitePath != "" {
		return c.Store.SQLitePath
	}
	return filepath.Join(DataDir(), "blogpress.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
