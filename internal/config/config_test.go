package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadFromArgs_EnvDefaultsAndFlags checks that environment values seed
// defaults and explicit flags override them.
func TestLoadFromArgs_EnvDefaultsAndFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	env := map[string]string{
		"DB_DRIVER":     "sqlite",
		"DB_DSN":        "file:test.db",
		"QUERY_TIMEOUT": "3s",
		"RATE_LIMIT":    "30",
	}
	getenv := func(k string) string { return env[k] }

	cfg, err := LoadFromArgs(fs, getenv, []string{"-rate-limit=60", "-cache-ttl=0"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.DBDriver != DriverSQLite || cfg.DSN != "file:test.db" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.QueryTimeout != 3*time.Second {
		t.Fatalf("QueryTimeout = %v, want 3s", cfg.QueryTimeout)
	}
	if cfg.RateLimit != 60 {
		t.Fatalf("flag should override env: RateLimit = %d", cfg.RateLimit)
	}
	if cfg.CacheTTL != 0 {
		t.Fatalf("CacheTTL = %v, want 0", cfg.CacheTTL)
	}
	if cfg.Port != ":8080" {
		t.Fatalf("Port = %q, want default", cfg.Port)
	}
}

// TestLoadFromArgs_InvalidEnvFallsBack ensures unparsable env values keep defaults.
func TestLoadFromArgs_InvalidEnvFallsBack(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	env := map[string]string{
		"DB_MAX_OPEN_CONNS": "lots",
		"QUERY_TIMEOUT":     "soon",
		"DB_BOOTSTRAP":      "maybe",
	}
	getenv := func(k string) string { return env[k] }

	cfg, err := LoadFromArgs(fs, getenv, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxOpenConns != 10 || cfg.QueryTimeout != 10*time.Second || cfg.Bootstrap {
		t.Fatalf("defaults not kept: %+v", cfg)
	}
	if cfg.DBDriver != DriverMySQL {
		t.Fatalf("DBDriver = %q, want mysql", cfg.DBDriver)
	}
}

func TestLoadFromArgs_UnsupportedDriver(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	getenv := func(string) string { return "" }

	if _, err := LoadFromArgs(fs, getenv, []string{"-db-driver=oracle"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

// TestLoadFromArgs_YAMLFile checks the file overlay sits between env and flags.
func TestLoadFromArgs_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "securecheck.yaml")
	data := []byte("db_driver: postgres\ndb_dsn: postgres://u:p@localhost/securecheck\nquery_timeout: 2s\nport: \":9090\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	env := map[string]string{"DB_DRIVER": "sqlite", "CONFIG_FILE": path}
	getenv := func(k string) string { return env[k] }

	cfg, err := LoadFromArgs(fs, getenv, []string{"-port=:7070"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != DriverPostgres {
		t.Fatalf("file should override env: DBDriver = %q", cfg.DBDriver)
	}
	if cfg.QueryTimeout != 2*time.Second {
		t.Fatalf("QueryTimeout = %v, want 2s", cfg.QueryTimeout)
	}
	if cfg.Port != ":7070" {
		t.Fatalf("flag should override file: Port = %q", cfg.Port)
	}
}

func TestLoadFromArgs_ConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("cache_ttl: 1m\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := LoadFromArgs(fs, func(string) string { return "" }, []string{"-config", path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CacheTTL != time.Minute {
		t.Fatalf("CacheTTL = %v, want 1m", cfg.CacheTTL)
	}
}

func TestLoadFromArgs_MissingFile(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := LoadFromArgs(fs, func(string) string { return "" }, []string{"-config=" + missing}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
