package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the nameres API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Solr     SolrConfig     `yaml:"solr"`
	Cache    CacheConfig    `yaml:"cache"`
	Lookup   LookupConfig   `yaml:"lookup"`
	Metadata MetadataConfig `yaml:"metadata"`
	CORS     CORSConfig     `yaml:"cors"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SolrConfig holds search engine connection settings.
type SolrConfig struct {
	URL        string `yaml:"url"`         // e.g. http://localhost:8983
	Core       string `yaml:"core"`        // collection queried by lookups
	StatusCore string `yaml:"status_core"` // core reported by /status
	TimeoutSec int    `yaml:"timeout_sec"` // 0 = no timeout
}

// Timeout returns the per-request timeout, zero meaning none.
func (s SolrConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

// CacheConfig holds the optional select response cache settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	TTLSec           int      `yaml:"ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSec) * time.Second
}

// LookupConfig holds lookup orchestration settings.
type LookupConfig struct {
	BulkConcurrency int `yaml:"bulk_concurrency"`
}

// MetadataConfig describes the data release served by this instance.
type MetadataConfig struct {
	BabelVersion    string `yaml:"babel_version"`
	BabelVersionURL string `yaml:"babel_version_url"`
	BiolinkModelTag string `yaml:"biolink_model_tag"`
	BiolinkModelURL string `yaml:"biolink_model_url"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads configuration from a YAML file by environment name (local, docker, prod).
// A .env file in the working directory, if present, is loaded first.
func Load(env string) (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config data, expanding ${VAR} references and applying defaults.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads .env without overriding variables already set.
// A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if !fileExists(p) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 2433
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Solr.URL == "" {
		c.Solr.URL = "http://localhost:8983"
	}
	if c.Solr.Core == "" {
		c.Solr.Core = "name_lookup"
	}
	if c.Solr.StatusCore == "" {
		c.Solr.StatusCore = "name_lookup_shard1_replica_n1"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 3600
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Lookup.BulkConcurrency <= 0 {
		c.Lookup.BulkConcurrency = 8
	}
	if c.Metadata.BabelVersion == "" {
		c.Metadata.BabelVersion = "unknown"
	}
	if c.Metadata.BiolinkModelTag == "" {
		c.Metadata.BiolinkModelTag = "unknown"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if !strings.HasPrefix(c.Solr.URL, "http://") && !strings.HasPrefix(c.Solr.URL, "https://") {
		return fmt.Errorf("solr.url must start with http:// or https://, got %q", c.Solr.URL)
	}
	if c.Solr.TimeoutSec < 0 {
		return fmt.Errorf("solr.timeout_sec must not be negative, got %d", c.Solr.TimeoutSec)
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache is enabled")
	}
	if c.Lookup.BulkConcurrency > 256 {
		return fmt.Errorf("lookup.bulk_concurrency must be at most 256, got %d", c.Lookup.BulkConcurrency)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
