// Package config loads chipless settings from an HCL file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/chipless/internal/kvstore"
	"github.com/lox/chipless/internal/ledger"
	"github.com/lox/chipless/internal/session"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "chipless.hcl"

// Config is the complete chipless configuration
type Config struct {
	Log    LogSettings
	Ledger LedgerSettings
	Table  TableSettings
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// LedgerSettings selects where the debt graph persists
type LedgerSettings struct {
	Backend       string `hcl:"backend,optional"`
	Path          string `hcl:"path,optional"`
	Key           string `hcl:"key,optional"`
	RedisAddr     string `hcl:"redis_addr,optional"`
	RedisPassword string `hcl:"redis_password,optional"`
	RedisDB       int    `hcl:"redis_db,optional"`
	TimeoutMs     int    `hcl:"timeout_ms,optional"`
}

// TableSettings describes the game and who sits at it
type TableSettings struct {
	Game    string   `hcl:"game,optional"`
	Players []string `hcl:"players,optional"`
	Dealer  string   `hcl:"dealer,optional"`
	Seed    int64    `hcl:"seed,optional"`
	PaceMs  int      `hcl:"pace_ms,optional"`
}

// fileConfig mirrors the HCL layout. Every block is optional.
type fileConfig struct {
	Log    *LogSettings    `hcl:"log,block"`
	Ledger *LedgerSettings `hcl:"ledger,block"`
	Table  *tableBlock     `hcl:"table,block"`
}

// tableBlock keeps pace_ms as a pointer so an explicit 0 can be told
// apart from an omitted attribute.
type tableBlock struct {
	Game    string   `hcl:"game,optional"`
	Players []string `hcl:"players,optional"`
	Dealer  string   `hcl:"dealer,optional"`
	Seed    int64    `hcl:"seed,optional"`
	PaceMs  *int     `hcl:"pace_ms,optional"`
}

// envConfig lists the environment overrides.
type envConfig struct {
	LogLevel      string `env:"CHIPLESS_LOG_LEVEL"`
	LogFile       string `env:"CHIPLESS_LOG_FILE"`
	LedgerBackend string `env:"CHIPLESS_LEDGER_BACKEND"`
	LedgerPath    string `env:"CHIPLESS_LEDGER_PATH"`
	RedisAddr     string `env:"CHIPLESS_REDIS_ADDR"`
	RedisPassword string `env:"CHIPLESS_REDIS_PASSWORD"`
	RedisDB       *int   `env:"CHIPLESS_REDIS_DB"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Log: LogSettings{
			Level: "info",
			File:  "chipless.log",
		},
		Ledger: LedgerSettings{
			Backend:   kvstore.BackendFile,
			Path:      ".chipless",
			Key:       ledger.DefaultKey,
			RedisAddr: "localhost:6379",
			TimeoutMs: 2000,
		},
		Table: TableSettings{
			Game:   session.GameBlackjack,
			PaceMs: 600,
		},
	}
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if fc.Log != nil {
		cfg.Log = *fc.Log
	}
	if fc.Ledger != nil {
		cfg.Ledger = *fc.Ledger
	}
	if fc.Table != nil {
		cfg.Table = TableSettings{
			Game:    fc.Table.Game,
			Players: fc.Table.Players,
			Dealer:  fc.Table.Dealer,
			Seed:    fc.Table.Seed,
			PaceMs:  cfg.Table.PaceMs,
		}
		if fc.Table.PaceMs != nil {
			cfg.Table.PaceMs = *fc.Table.PaceMs
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills fields a partial block left empty.
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}

	if c.Ledger.Backend == "" {
		c.Ledger.Backend = defaults.Ledger.Backend
	}
	if c.Ledger.Path == "" {
		c.Ledger.Path = defaults.Ledger.Path
	}
	if c.Ledger.Key == "" {
		c.Ledger.Key = defaults.Ledger.Key
	}
	if c.Ledger.RedisAddr == "" {
		c.Ledger.RedisAddr = defaults.Ledger.RedisAddr
	}
	if c.Ledger.TimeoutMs == 0 {
		c.Ledger.TimeoutMs = defaults.Ledger.TimeoutMs
	}

	if c.Table.Game == "" {
		c.Table.Game = defaults.Table.Game
	}
}

// ApplyEnv overrides settings from CHIPLESS_* environment variables.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(env.Options{})
}

func (c *Config) applyEnv(opts env.Options) error {
	var e envConfig
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Log.Level, e.LogLevel)
	set(&c.Log.File, e.LogFile)
	set(&c.Ledger.Backend, e.LedgerBackend)
	set(&c.Ledger.Path, e.LedgerPath)
	set(&c.Ledger.RedisAddr, e.RedisAddr)
	set(&c.Ledger.RedisPassword, e.RedisPassword)
	if e.RedisDB != nil {
		c.Ledger.RedisDB = *e.RedisDB
	}
	return nil
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

var validBackends = []string{kvstore.BackendMemory, kvstore.BackendFile, kvstore.BackendRedis, kvstore.BackendSQLite}

// Validate checks the configuration
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, c.Log.Level) {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if !slices.Contains(validBackends, c.Ledger.Backend) {
		return fmt.Errorf("invalid ledger backend: %s", c.Ledger.Backend)
	}
	if c.Ledger.Backend == kvstore.BackendRedis && c.Ledger.RedisAddr == "" {
		return fmt.Errorf("redis backend requires redis_addr")
	}
	if (c.Ledger.Backend == kvstore.BackendFile || c.Ledger.Backend == kvstore.BackendSQLite) && c.Ledger.Path == "" {
		return fmt.Errorf("%s backend requires a path", c.Ledger.Backend)
	}
	if c.Ledger.RedisDB < 0 {
		return fmt.Errorf("redis db cannot be negative")
	}
	if c.Ledger.TimeoutMs <= 0 {
		return fmt.Errorf("ledger timeout must be positive")
	}
	if !slices.Contains(session.Games, c.Table.Game) {
		return fmt.Errorf("invalid game: %s (want one of %s)", c.Table.Game, strings.Join(session.Games, ", "))
	}
	if c.Table.PaceMs < 0 {
		return fmt.Errorf("pace cannot be negative")
	}
	if len(c.Table.Players) > 0 && len(c.Table.Players) < 2 {
		return fmt.Errorf("need at least 2 players, got %d", len(c.Table.Players))
	}
	if c.Table.Dealer != "" && !slices.ContainsFunc(c.Table.Players, func(p string) bool {
		return strings.EqualFold(p, c.Table.Dealer)
	}) {
		return fmt.Errorf("dealer %q is not one of the players", c.Table.Dealer)
	}
	return nil
}

// StoreOptions returns the kvstore options for the ledger backend.
func (c *Config) StoreOptions() kvstore.Options {
	return kvstore.Options{
		Backend:       c.Ledger.Backend,
		Path:          c.Ledger.Path,
		RedisAddr:     c.Ledger.RedisAddr,
		RedisPassword: c.Ledger.RedisPassword,
		RedisDB:       c.Ledger.RedisDB,
	}
}

// LedgerTimeout bounds each ledger store call.
func (c *Config) LedgerTimeout() time.Duration {
	return time.Duration(c.Ledger.TimeoutMs) * time.Millisecond
}

// Pace is the delay between dealer steps in the TUI.
func (c *Config) Pace() time.Duration {
	return time.Duration(c.Table.PaceMs) * time.Millisecond
}
