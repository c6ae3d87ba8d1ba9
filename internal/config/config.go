// Package config provides the Config struct and loader for
// .conclave.yaml project-level configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/conclave-dev/conclave/internal/hooks"
)

// Default values for configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultRepo          = "."
	DefaultMemoryDir     = ".conclave/memory"
	DefaultTranscriptDir = ".conclave/transcripts"

	DefaultGatewayAddr = "127.0.0.1:7463"
	DefaultInboxPath   = ".conclave/inbox.db"
)

// MemoryConfig holds persistent memory settings.
type MemoryConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// TranscriptConfig holds session transcript settings.
type TranscriptConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// GatewayConfig holds gateway server settings.
type GatewayConfig struct {
	Addr  string `yaml:"addr,omitempty"`
	Inbox string `yaml:"inbox,omitempty"`
}

// Config is the top-level configuration loaded from .conclave.yaml.
type Config struct {
	Repo        string             `yaml:"repo,omitempty"`
	Memory      MemoryConfig       `yaml:"memory,omitempty"`
	Transcripts TranscriptConfig   `yaml:"transcripts,omitempty"`
	Gateway     GatewayConfig      `yaml:"gateway,omitempty"`
	Hooks       []hooks.HookConfig `yaml:"hooks,omitempty"`
}

// New returns a Config with all hard-coded defaults populated.
func New() *Config {
	return &Config{
		Repo:        DefaultRepo,
		Memory:      MemoryConfig{Dir: DefaultMemoryDir},
		Transcripts: TranscriptConfig{Dir: DefaultTranscriptDir},
		Gateway: GatewayConfig{
			Addr:  DefaultGatewayAddr,
			Inbox: DefaultInboxPath,
		},
	}
}

// Load finds .conclave.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*Config, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .conclave.yaml: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .conclave.yaml: %w", err)
	}

	mergeConfig(cfg, &fileCfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid .conclave.yaml: %w", err)
	}
	return cfg, nil
}

// Validate checks constraints a merged config must satisfy.
func (c *Config) Validate() error {
	if c.Memory.Dir == "" {
		return errors.New("memory.dir must not be empty")
	}
	if c.Gateway.Addr == "" {
		return errors.New("gateway.addr must not be empty")
	}
	for i, h := range c.Hooks {
		if h.Command == "" {
			return fmt.Errorf("hooks[%d]: command must not be empty", i)
		}
	}
	return nil
}

// findConfigFile walks up from dir looking for .conclave.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently
// swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".conclave.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *Config) {
	if src.Repo != "" {
		dst.Repo = src.Repo
	}
	if src.Memory.Dir != "" {
		dst.Memory.Dir = src.Memory.Dir
	}
	if src.Transcripts.Dir != "" {
		dst.Transcripts.Dir = src.Transcripts.Dir
	}
	if src.Gateway.Addr != "" {
		dst.Gateway.Addr = src.Gateway.Addr
	}
	if src.Gateway.Inbox != "" {
		dst.Gateway.Inbox = src.Gateway.Inbox
	}
	if len(src.Hooks) > 0 {
		dst.Hooks = src.Hooks
	}
}
