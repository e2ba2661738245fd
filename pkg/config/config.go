package config

import (
	"net/url"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const configFileENV = "CONFIG_FILE"

const defaultConfigFile = "/config/shelfsearch.yaml"

// Config is loaded from, in increasing precedence: the defaults below, the
// YAML file named by CONFIG_FILE, and environment variables named after the
// upper-cased keys (DATABASE_FILE_PATH for database_file_path).
type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout" default:"5s"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count" default:"5"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay" default:"2s"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseDriver            string        `koanf:"database_driver" default:"sqlite"`
	DatabaseDSN               string        `koanf:"database_dsn"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	CORSAllowedOrigins        []string      `koanf:"cors_allowed_origins" default:"[\"*\"]"`
	PublicURL                 string        `koanf:"public_url"`
	QueryTimeout              time.Duration `koanf:"query_timeout" default:"10s"`
	RateLimitPerSecond        float64       `koanf:"rate_limit_per_second" default:"20"`
	ServerHost                string        `koanf:"server_host" default:"0.0.0.0"`
	ServerPort                int           `koanf:"server_port" default:"8000"`

	publicURL *url.URL
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = defaultConfigFile
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	keys := knownKeys()
	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if !keys[key] {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.WithStack(err)
	}

	cfg.CORSAllowedOrigins = splitList(cfg.CORSAllowedOrigins)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a config pointing at an in-memory database.
func NewForTest() *Config {
	cfg := &Config{}
	_ = defaults.Set(cfg)
	cfg.DatabaseFilePath = ":memory:"
	cfg.ServerHost = "127.0.0.1"
	cfg.RateLimitPerSecond = 0
	return cfg
}

// PublicBaseURL is the parsed public_url, or nil when links should be built
// from the incoming request.
func (cfg *Config) PublicBaseURL() *url.URL {
	if cfg.publicURL == nil && cfg.PublicURL != "" {
		u, err := url.Parse(cfg.PublicURL)
		if err != nil {
			return nil
		}
		cfg.publicURL = u
	}
	return cfg.publicURL
}

func (cfg *Config) validate() error {
	switch cfg.DatabaseDriver {
	case DriverSQLite:
		if cfg.DatabaseFilePath == "" {
			return missing("DatabaseFilePath")
		}
	case DriverPostgres:
		if cfg.DatabaseDSN == "" {
			return missing("DatabaseDSN")
		}
	default:
		return errors.Errorf("invalid config: database_driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.DatabaseDriver)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return errors.Errorf("invalid config: server_port must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	if cfg.PublicURL != "" {
		u, err := url.Parse(cfg.PublicURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.Errorf("invalid config: public_url must be an absolute URL, got %q", cfg.PublicURL)
		}
		cfg.publicURL = u
	}

	return nil
}

func missing(field string) error {
	key := toSnakeCase(field)
	return errors.Errorf("missing required config: %s (%s)", strings.ToUpper(key), key)
}

// splitList flattens comma separated entries, which is how lists arrive from
// the environment.
func splitList(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func toSnakeCase(s string) string {
	return strcase.ToSnake(s)
}

// knownKeys lists the koanf keys of Config so unrelated environment variables
// are never loaded.
func knownKeys() map[string]bool {
	keys := map[string]bool{}
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("koanf"); tag != "" {
			keys[tag] = true
		}
	}
	return keys
}
