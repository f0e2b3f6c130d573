// Package config loads familytree settings from a TOML file and FAMILYTREE_*
// environment variables. Environment variables override the file, and
// command-line flags override both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

type Config struct {
	Store         string        `toml:"store"`          // FAMILYTREE_STORE (default "file")
	DataFile      string        `toml:"data_file"`      // FAMILYTREE_DATA_FILE (file store snapshot path)
	DatabaseURL   string        `toml:"database_url"`   // FAMILYTREE_DATABASE_URL (required for postgres)
	MongoURI      string        `toml:"mongo_uri"`      // FAMILYTREE_MONGO_URI (required for mongo)
	MongoDatabase string        `toml:"mongo_database"` // FAMILYTREE_MONGO_DATABASE (default "familytree")
	HTTPAddr      string        `toml:"http_addr"`      // FAMILYTREE_HTTP_ADDR (default ":8080")
	NATSURL       string        `toml:"nats_url"`       // FAMILYTREE_NATS_URL (optional, empty = no events)
	RedisURL      string        `toml:"redis_url"`      // FAMILYTREE_REDIS_URL (optional, empty = file cache)
	CacheDir      string        `toml:"cache_dir"`      // FAMILYTREE_CACHE_DIR (default XDG cache dir)
	Timeout       time.Duration `toml:"timeout"`        // FAMILYTREE_TIMEOUT (default 30s)

	Layout Layout `toml:"layout"`
}

// Layout holds layout overrides. Zero values keep the layout defaults.
type Layout struct {
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
	RankSep    float64 `toml:"rank_sep"`
	NodeSep    float64 `toml:"node_sep"`
	SpouseGap  float64 `toml:"spouse_gap"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store:         StoreFile,
		DataFile:      DefaultDataFile(),
		MongoDatabase: "familytree",
		HTTPAddr:      ":8080",
		Timeout:       30 * time.Second,
	}
}

// DefaultPath returns ~/.config/familytree/config.toml (or the XDG
// equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "familytree", "config.toml")
}

// DefaultDataFile returns the snapshot path used by the file store:
// $XDG_DATA_HOME/familytree/tree.json or ~/.local/share/familytree/tree.json.
func DefaultDataFile() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "familytree", "tree.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "familytree", "tree.json")
}

// Load reads the file at path over the defaults and applies environment
// overrides. An empty path tries [DefaultPath]; a missing default file is
// not an error, a missing explicit one is.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	c.Store = envOrDefault("FAMILYTREE_STORE", c.Store)
	c.DataFile = envOrDefault("FAMILYTREE_DATA_FILE", c.DataFile)
	c.DatabaseURL = envOrDefault("FAMILYTREE_DATABASE_URL", c.DatabaseURL)
	c.MongoURI = envOrDefault("FAMILYTREE_MONGO_URI", c.MongoURI)
	c.MongoDatabase = envOrDefault("FAMILYTREE_MONGO_DATABASE", c.MongoDatabase)
	c.HTTPAddr = envOrDefault("FAMILYTREE_HTTP_ADDR", c.HTTPAddr)
	c.NATSURL = envOrDefault("FAMILYTREE_NATS_URL", c.NATSURL)
	c.RedisURL = envOrDefault("FAMILYTREE_REDIS_URL", c.RedisURL)
	c.CacheDir = envOrDefault("FAMILYTREE_CACHE_DIR", c.CacheDir)

	if v := os.Getenv("FAMILYTREE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FAMILYTREE_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	for key, dst := range map[string]*float64{
		"FAMILYTREE_NODE_WIDTH":  &c.Layout.NodeWidth,
		"FAMILYTREE_NODE_HEIGHT": &c.Layout.NodeHeight,
		"FAMILYTREE_RANK_SEP":    &c.Layout.RankSep,
		"FAMILYTREE_NODE_SEP":    &c.Layout.NodeSep,
		"FAMILYTREE_SPOUSE_GAP":  &c.Layout.SpouseGap,
	} {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = f
		}
	}
	return nil
}

// Validate checks that the selected store has its connection settings.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreFile:
		if c.DataFile == "" {
			return fmt.Errorf("data_file (FAMILYTREE_DATA_FILE) is required for the file store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url (FAMILYTREE_DATABASE_URL) is required for the postgres store")
		}
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("mongo_uri (FAMILYTREE_MONGO_URI) is required for the mongo store")
		}
	default:
		return fmt.Errorf("unknown store %q (want file, memory, postgres or mongo)", c.Store)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
