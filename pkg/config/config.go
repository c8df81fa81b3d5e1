// Package config loads archdiagram settings from a TOML file.
//
// The file is optional. Lookup order is an explicit path, then
// $ARCHDIAGRAM_CONFIG, then $XDG_CONFIG_HOME/archdiagram/config.toml
// (~/.config/archdiagram/config.toml when XDG_CONFIG_HOME is unset). Missing
// keys keep their defaults:
//
//	[layout]
//	width = 1600
//	break_cycles = true
//
//	[layout.constants]
//	node_width = 200
//
//	[render]
//	theme = "dark"
//	formats = ["svg", "png"]
//
//	[cache]
//	backend = "redis"
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	store = "mongo"
//	[server.mongo]
//	uri = "mongodb://localhost:27017"
package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jbass698-121/aveva-diagram-style/pkg/cache"
	"github.com/jbass698-121/aveva-diagram-style/pkg/errors"
	"github.com/jbass698-121/aveva-diagram-style/pkg/layout"
	"github.com/jbass698-121/aveva-diagram-style/pkg/pipeline"
	"github.com/jbass698-121/aveva-diagram-style/pkg/store"
)

// EnvPath names the environment variable holding a config file path.
const EnvPath = "ARCHDIAGRAM_CONFIG"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Diagram stores.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config is the whole settings file.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`

	// Path is the file the values were read from, empty for defaults.
	Path string `toml:"-"`
}

// LayoutConfig holds lane engine settings.
type LayoutConfig struct {
	Engine      string           `toml:"engine"`
	Width       float64          `toml:"width"`
	Height      float64          `toml:"height"`
	LaneGap     float64          `toml:"lane_gap"`
	LanePadding float64          `toml:"lane_padding"`
	Autolayout  bool             `toml:"autolayout"`
	BreakCycles bool             `toml:"break_cycles"`
	Constants   layout.Constants `toml:"constants"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	Theme   string   `toml:"theme"`
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
	Icons   bool     `toml:"icons"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend string            `toml:"backend"`
	Dir     string            `toml:"dir"` // file backend; empty selects the user cache dir
	Redis   cache.RedisConfig `toml:"redis"`
}

// ServerConfig configures `archdiagram serve`.
type ServerConfig struct {
	Addr           string            `toml:"addr"`
	Store          string            `toml:"store"`
	Mongo          store.MongoConfig `toml:"mongo"`
	MaxBody        int64             `toml:"max_body"`
	RequestTimeout time.Duration     `toml:"request_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	d := layout.DefaultOptions()
	return Config{
		Layout: LayoutConfig{
			Engine:      pipeline.DefaultEngine,
			Width:       d.Width,
			Height:      d.Height,
			LaneGap:     d.LaneGap,
			LanePadding: d.LanePadding,
			Autolayout:  true,
			Constants:   layout.DefaultConstants(),
		},
		Render: RenderConfig{
			Formats: []string{pipeline.FormatSVG},
			Scale:   pipeline.DefaultScale,
			Icons:   true,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			Redis:   cache.RedisConfig{Addr: "localhost:6379", Prefix: "archdiagram:"},
		},
		Server: ServerConfig{
			Addr:           ":8080",
			Store:          StoreMemory,
			Mongo:          store.MongoConfig{Database: "archdiagram", Collection: "diagrams"},
			MaxBody:        1 << 20,
			RequestTimeout: 30 * time.Second,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "archdiagram", "config.toml")
}

// Load reads the config at path. An empty path falls back to $ARCHDIAGRAM_CONFIG
// and then to DefaultPath; only the default location may be absent.
func Load(path string) (Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		path, explicit = DefaultPath(), false
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open config %s", path)
	}
	defer f.Close()

	if cfg, err = Decode(f); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeParseFailed, err, "invalid config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks every section.
func (c Config) Validate() error {
	opts := c.PipelineOptions()
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidInput, "cache backend", c.Cache.Backend,
		[]string{CacheFile, CacheRedis, CacheNone}); err != nil {
		return err
	}
	if c.Cache.Backend == CacheRedis && c.Cache.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis.addr is required for the redis backend")
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidInput, "server store", c.Server.Store,
		[]string{StoreMemory, StoreMongo}); err != nil {
		return err
	}
	if c.Server.Store == StoreMongo && c.Server.Mongo.URI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server.mongo.uri is required for the mongo store")
	}
	if c.Server.MaxBody < 0 || c.Server.RequestTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server limits cannot be negative")
	}
	return nil
}

// PipelineOptions converts the layout and render sections into pipeline
// options. Callers override fields from flags or request parameters.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Engine:       c.Layout.Engine,
		Width:        c.Layout.Width,
		Height:       c.Layout.Height,
		LaneGap:      c.Layout.LaneGap,
		LanePadding:  c.Layout.LanePadding,
		NoAutolayout: !c.Layout.Autolayout,
		BreakCycles:  c.Layout.BreakCycles,
		Constants:    c.Layout.Constants,
		Formats:      slices.Clone(c.Render.Formats),
		Theme:        c.Render.Theme,
		Scale:        c.Render.Scale,
		NoIcons:      !c.Render.Icons,
	}
}
