package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Supported store drivers
const (
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverDuckDB   = "duckdb"
)

// Config 应用配置
type Config struct {
	Port         string
	DBDriver     string // mysql, sqlite, postgres, duckdb
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	QueryTimeout time.Duration // bounds every store round-trip
	CacheTTL     time.Duration // 0 keeps records until invalidated
	RateLimit    int           // requests per minute per client
	Bootstrap    bool          // create traffic_logs when absent
}

// Load 加载配置
func Load() (*Config, error) {
	return LoadFromArgs(flag.CommandLine, os.Getenv, os.Args[1:])
}

// LoadFromArgs builds a Config from environment defaults, an optional YAML
// file and command-line flags, in increasing precedence.
func LoadFromArgs(fs *flag.FlagSet, getenv func(string) string, args []string) (*Config, error) {
	envOr := func(k, d string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return d
	}
	intEnvOr := func(k string, d int) int {
		if v := getenv(k); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				return i
			}
		}
		return d
	}
	durEnvOr := func(k string, d time.Duration) time.Duration {
		if v := getenv(k); v != "" {
			if dur, err := time.ParseDuration(v); err == nil && dur >= 0 {
				return dur
			}
		}
		return d
	}
	boolEnvOr := func(k string, d bool) bool {
		if v := getenv(k); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
		return d
	}

	cfg := &Config{
		Port:         envOr("PORT", ":8080"),
		DBDriver:     envOr("DB_DRIVER", DriverMySQL),
		DSN:          envOr("DB_DSN", "root:@tcp(localhost:3306)/securecheck"),
		MaxOpenConns: intEnvOr("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns: intEnvOr("DB_MAX_IDLE_CONNS", 5),
		QueryTimeout: durEnvOr("QUERY_TIMEOUT", 10*time.Second),
		CacheTTL:     durEnvOr("CACHE_TTL", 5*time.Minute),
		RateLimit:    intEnvOr("RATE_LIMIT", 120),
		Bootstrap:    boolEnvOr("DB_BOOTSTRAP", false),
	}

	// The config file is found first so that flags still win over it.
	configFile := envOr("CONFIG_FILE", "")
	for i, a := range args {
		switch {
		case strings.HasPrefix(a, "-config="), strings.HasPrefix(a, "--config="):
			configFile = a[strings.Index(a, "=")+1:]
		case (a == "-config" || a == "--config") && i+1 < len(args):
			configFile = args[i+1]
		}
	}
	if configFile != "" {
		if err := loadFile(cfg, configFile); err != nil {
			return nil, err
		}
	}

	fs.String("config", configFile, "YAML config file")
	fs.StringVar(&cfg.Port, "port", cfg.Port, "listen address")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "store driver: mysql, sqlite, postgres or duckdb")
	fs.StringVar(&cfg.DSN, "db-dsn", cfg.DSN, "store DSN")
	fs.IntVar(&cfg.MaxOpenConns, "db-max-open", cfg.MaxOpenConns, "max open store connections")
	fs.IntVar(&cfg.MaxIdleConns, "db-max-idle", cfg.MaxIdleConns, "max idle store connections")
	fs.DurationVar(&cfg.QueryTimeout, "query-timeout", cfg.QueryTimeout, "store round-trip timeout")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "record cache TTL, 0 disables expiry")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "requests per minute per client")
	fs.BoolVar(&cfg.Bootstrap, "bootstrap", cfg.Bootstrap, "create traffic_logs when absent")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrapf(err, "failed to parse flags")
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have no safe default
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverSQLite, DriverPostgres, DriverDuckDB:
	default:
		return errors.Errorf("unsupported db driver %q", c.DBDriver)
	}
	if c.DBDriver != DriverDuckDB && strings.TrimSpace(c.DSN) == "" {
		return errors.New("db dsn must not be empty")
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 10
	}
	if c.MaxIdleConns < 0 || c.MaxIdleConns > c.MaxOpenConns {
		c.MaxIdleConns = c.MaxOpenConns
	}
	if c.RateLimit <= 0 {
		c.RateLimit = 120
	}
	return nil
}

// fileConfig mirrors Config with string durations for YAML
type fileConfig struct {
	Port         *string `yaml:"port"`
	DBDriver     *string `yaml:"db_driver"`
	DSN          *string `yaml:"db_dsn"`
	MaxOpenConns *int    `yaml:"db_max_open_conns"`
	MaxIdleConns *int    `yaml:"db_max_idle_conns"`
	QueryTimeout *string `yaml:"query_timeout"`
	CacheTTL     *string `yaml:"cache_ttl"`
	RateLimit    *int    `yaml:"rate_limit"`
	Bootstrap    *bool   `yaml:"bootstrap"`
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read from %s", path)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return errors.Wrapf(err, "failed to unmarshal %s", path)
	}

	if fc.Port != nil {
		cfg.Port = *fc.Port
	}
	if fc.DBDriver != nil {
		cfg.DBDriver = *fc.DBDriver
	}
	if fc.DSN != nil {
		cfg.DSN = *fc.DSN
	}
	if fc.MaxOpenConns != nil {
		cfg.MaxOpenConns = *fc.MaxOpenConns
	}
	if fc.MaxIdleConns != nil {
		cfg.MaxIdleConns = *fc.MaxIdleConns
	}
	if fc.RateLimit != nil {
		cfg.RateLimit = *fc.RateLimit
	}
	if fc.Bootstrap != nil {
		cfg.Bootstrap = *fc.Bootstrap
	}
	if fc.QueryTimeout != nil {
		d, err := time.ParseDuration(*fc.QueryTimeout)
		if err != nil {
			return errors.Wrapf(err, "invalid query_timeout in %s", path)
		}
		cfg.QueryTimeout = d
	}
	if fc.CacheTTL != nil {
		d, err := time.ParseDuration(*fc.CacheTTL)
		if err != nil {
			return errors.Wrapf(err, "invalid cache_ttl in %s", path)
		}
		cfg.CacheTTL = d
	}
	return nil
}
