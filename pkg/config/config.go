// Package config loads the optional sprout.yaml file and resolves defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/sprout-ui/sprout/pkg/executor"
)

// FileName is the name of the configuration file looked up in a project root.
const FileName = "sprout.yaml"

// Executor modes.
const (
	ModeEmbedded = "embedded"
	ModeHost     = "host"
)

// Config represents the optional sprout.yaml configuration.
type Config struct {
	App      AppConfig      `yaml:"app" json:"app"`
	Executor ExecutorConfig `yaml:"executor" json:"executor"`
	Composer ComposerConfig `yaml:"composer" json:"composer"`
	Log      LogConfig      `yaml:"log" json:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// ExecutorConfig selects the queue size and who drives the loop.
type ExecutorConfig struct {
	QueueCapacity int    `yaml:"queue_capacity,omitempty" json:"queue_capacity,omitempty"`
	Mode          string `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// ComposerConfig contains composer settings.
type ComposerConfig struct {
	// StrictParent turns adds without a parent into errors.
	StrictParent bool `yaml:"strict_parent" json:"strict_parent"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level   string `yaml:"level,omitempty" json:"level,omitempty"`
	Format  string `yaml:"format,omitempty" json:"format,omitempty"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string `yaml:"-" json:"root"`
	ModulePath string `yaml:"module,omitempty" json:"module,omitempty"`
	Config     `yaml:",inline"`
}

// LoadOptional reads sprout.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads sprout.yaml (if present) and resolves defaults. A directory
// without go.mod is allowed; the app name then comes from the directory.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults(modulePath, dir)

	if verbose := os.Getenv("SPROUT_VERBOSE"); verbose == "1" || verbose == "true" {
		cfg.Log.Verbose = true
	}
	if cfg.Log.Verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		Config:     *cfg,
	}, nil
}

// Default returns the configuration used when no file or module is present.
func Default() Config {
	var cfg Config
	cfg.applyDefaults("", "")
	return cfg
}

func (c *Config) applyDefaults(modulePath, dir string) {
	c.App.Name = strings.TrimSpace(c.App.Name)
	if c.App.Name == "" {
		c.App.Name = defaultAppName(modulePath, dir)
	}
	if c.Executor.QueueCapacity == 0 {
		c.Executor.QueueCapacity = executor.DefaultQueueCapacity
	}
	c.Executor.Mode = strings.ToLower(strings.TrimSpace(c.Executor.Mode))
	if c.Executor.Mode == "" {
		c.Executor.Mode = ModeEmbedded
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Executor.QueueCapacity <= 0 {
		return fmt.Errorf("executor.queue_capacity must be positive (got %d)", c.Executor.QueueCapacity)
	}
	switch c.Executor.Mode {
	case ModeEmbedded, ModeHost:
	default:
		return fmt.Errorf("executor.mode must be %q or %q (got %q)", ModeEmbedded, ModeHost, c.Executor.Mode)
	}
	if _, ok := levels[c.Log.Level]; !ok {
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	return nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := ""
	if dir != "" {
		base = filepath.Base(dir)
	}
	if modulePath != "" {
		prefix, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "sprout_app"
	}
	return base
}
