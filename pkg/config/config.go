// Package config loads the tagcycle configuration file.
//
// The file is TOML. Generators are listed in cycling order as [[generator]]
// tables; when the file has no generator key at all the built-in list is
// used. Unset numeric fields fall back to the generator defaults.
package config

import (
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"os"
	"sort"
	"strings"
	"time"
)

const relConfigPath = "tagcycle/config.toml"

var (
	ErrUnknownGenerator = errors.New("unknown generator type")
	ErrUnknownBackend   = errors.New("unknown store backend")
	ErrUnknownKeys      = errors.New("unknown configuration keys")
)

type Backend string

const (
	BackendMemory Backend = "memory"
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

type Config struct {
	Debug      bool              `toml:"debug"`
	Store      StoreConfig       `toml:"store"`
	Generators []GeneratorConfig `toml:"generator"`
}

type StoreConfig struct {
	Backend      Backend  `toml:"backend"`
	Path         string   `toml:"path"`
	SaveInterval Duration `toml:"save_interval"`
}

// Duration is a time.Duration written as a Go duration string, like "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Store:      StoreConfig{Backend: BackendMemory},
		Generators: DefaultGenerators(),
	}
}

// Load reads the configuration at path. An empty path searches the XDG
// config directories and falls back to Default when nothing is found.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(relConfigPath)
		if err != nil {
			return Default(), nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(string(data))
}

// Parse decodes a configuration document.
func Parse(doc string) (*Config, error) {
	cfg := &Config{Store: StoreConfig{Backend: BackendMemory}}

	md, err := toml.Decode(doc, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}

	if !md.IsDefined("generator") {
		cfg.Generators = DefaultGenerators()
	}

	switch cfg.Store.Backend {
	case BackendMemory, BackendJSON, BackendSQLite:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Store.Backend)
	}

	return cfg, nil
}

// StorePath returns the configured store path, or a file in the XDG state
// directory named after the backend.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}

	name := "cursors.db"
	if c.Store.Backend == BackendJSON {
		name = "cursors.json"
	}

	path, err := xdg.StateFile("tagcycle/" + name)
	if err != nil {
		return "", fmt.Errorf("get state file path: %w", err)
	}
	return path, nil
}
