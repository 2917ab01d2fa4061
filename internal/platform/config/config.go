package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	DataDir       string `mapstructure:"-"`
	DBPath        string `mapstructure:"db_path"`
	FixturesDir   string `mapstructure:"fixtures_dir"`

	Storage    StorageConfig    `mapstructure:"storage"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Latency    LatencyConfig    `mapstructure:"latency"`
	Query      QueryConfig      `mapstructure:"query"`
	Enrollment EnrollmentConfig `mapstructure:"enrollment"`
	Log        LogConfig        `mapstructure:"log"`
}

type StorageConfig struct {
	Driver    string `mapstructure:"driver"`
	Prefix    string `mapstructure:"prefix"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
}

type CacheConfig struct {
	DefaultStale   time.Duration `mapstructure:"default_stale"`
	CatalogStale   time.Duration `mapstructure:"catalog_stale"`
	SearchStale    time.Duration `mapstructure:"search_stale"`
	RecommendStale time.Duration `mapstructure:"recommend_stale"`
	GCTime         time.Duration `mapstructure:"gc_time"`
	MaxEntries     int           `mapstructure:"max_entries"`
	Retries        int           `mapstructure:"retries"`
	RetryInterval  time.Duration `mapstructure:"retry_interval"`
}

type LatencyConfig struct {
	Profile time.Duration `mapstructure:"profile"`
	Enroll  time.Duration `mapstructure:"enroll"`
}

type QueryConfig struct {
	MinSearchLength int `mapstructure:"min_search_length"`
	RecommendLimit  int `mapstructure:"recommend_limit"`
}

type EnrollmentConfig struct {
	StrictValidation bool `mapstructure:"strict_validation"`
}

type LogConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// New loads configuration for the given data directory. An optional
// learnify.yaml inside dataDir and LEARNIFY_* environment variables override
// the defaults.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	v := viper.New()
	setDefaults(v, dataDir)
	v.SetConfigName("learnify")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix("LEARNIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.DataDir = dataDir
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without reading files or env.
func Default(dataDir string) Config {
	v := viper.New()
	setDefaults(v, dataDir)
	cfg := Config{}
	_ = v.Unmarshal(&cfg)
	cfg.DataDir = dataDir
	return cfg
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case StorageSQLite, StorageMemory:
	case StorageRedis:
		if strings.TrimSpace(c.Storage.RedisAddr) == "" {
			return fmt.Errorf("storage.redis_addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Cache.Retries < 1 {
		return fmt.Errorf("cache.retries must be at least 1")
	}
	if c.Query.RecommendLimit < 1 {
		return fmt.Errorf("query.recommend_limit must be at least 1")
	}
	return nil
}

func setDefaults(v *viper.Viper, dataDir string) {
	v.SetDefault("db_path", filepath.Join(dataDir, ".learnify", "learnify.db"))
	v.SetDefault("fixtures_dir", "")

	v.SetDefault("storage.driver", StorageSQLite)
	v.SetDefault("storage.prefix", "learnify_")
	v.SetDefault("storage.redis_addr", "")
	v.SetDefault("storage.redis_db", 0)

	v.SetDefault("cache.default_stale", 5*time.Minute)
	v.SetDefault("cache.catalog_stale", 10*time.Minute)
	v.SetDefault("cache.search_stale", 2*time.Minute)
	v.SetDefault("cache.recommend_stale", 15*time.Minute)
	v.SetDefault("cache.gc_time", 10*time.Minute)
	v.SetDefault("cache.max_entries", 512)
	v.SetDefault("cache.retries", 3)
	v.SetDefault("cache.retry_interval", 200*time.Millisecond)

	v.SetDefault("latency.profile", time.Second)
	v.SetDefault("latency.enroll", 2*time.Second)

	v.SetDefault("query.min_search_length", 3)
	v.SetDefault("query.recommend_limit", 4)

	v.SetDefault("enrollment.strict_validation", false)

	v.SetDefault("log.mode", "development")
	v.SetDefault("log.level", "info")
}
