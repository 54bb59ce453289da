package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config stores options for a single generation run.
type Config struct {
	Pattern   string   `yaml:"package" toml:"package"`
	Types     []string `yaml:"types" toml:"types"`
	Filename  string   `yaml:"output" toml:"output"`
	BuildTags []string `yaml:"tags" toml:"tags"`
	Jobs      int      `yaml:"jobs" toml:"jobs"`
	NoColor   bool     `yaml:"no_color" toml:"no_color"`
	Verbose   bool     `yaml:"verbose" toml:"verbose"`

	ConfigFile  string `yaml:"-" toml:"-"`
	Check       bool   `yaml:"-" toml:"-"`
	Dump        bool   `yaml:"-" toml:"-"`
	ShowVersion bool   `yaml:"-" toml:"-"`
}

// OutputFilename returns destination file path for generator layer.
func (c *Config) OutputFilename() string {
	return c.Filename
}

// LoadFile reads a YAML or TOML config file, chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q, want .yaml, .yml or .toml", path, ext)
	}

	cfg.Types = trimList(cfg.Types)
	cfg.BuildTags = trimList(cfg.BuildTags)
	return cfg, nil
}

func trimList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
