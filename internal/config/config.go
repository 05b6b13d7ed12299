package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/seeuferweg-catalog/internal/domain"
)

type Config struct {
	Server    ServerConfig
	Feeds     FeedsConfig
	Region    domain.BoundingBox
	Favorites FavoritesConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Notify    NotifyConfig
	Log       LogConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// FeedsConfig - откуда загружать фиды: BaseURL (HTTP) или Dir (локальные файлы)
type FeedsConfig struct {
	BaseURL      string
	Dir          string
	ManifestPath string
	Timeout      time.Duration
	Sources      []FeedSource
}

// FavoritesConfig - хранилище избранного
type FavoritesConfig struct {
	Backend    string
	StorageKey string
	BoltPath   string
	AppName    string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// NotifyConfig - внешняя публикация изменений избранного: none, redis или kafka
type NotifyConfig struct {
	Backend string
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	ReloadInterval    time.Duration
}

// Хранилища избранного
const (
	FavoritesBackendBolt     = "bolt"
	FavoritesBackendRedis    = "redis"
	FavoritesBackendPostgres = "postgres"
	FavoritesBackendMemory   = "memory"
)

// Публикаторы изменений
const (
	NotifyNone  = "none"
	NotifyRedis = "redis"
	NotifyKafka = "kafka"
)

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile читает конфигурацию из env-файла path и окружения. Отсутствующий файл не ошибка
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Feeds: FeedsConfig{
			BaseURL:      strings.TrimRight(v.GetString("FEEDS_BASE_URL"), "/"),
			Dir:          v.GetString("FEEDS_DIR"),
			ManifestPath: v.GetString("FEEDS_MANIFEST"),
			Timeout:      time.Duration(v.GetInt("FEEDS_TIMEOUT")) * time.Second,
		},
		Region: domain.BoundingBox{
			MinLat: v.GetFloat64("REGION_MIN_LAT"),
			MaxLat: v.GetFloat64("REGION_MAX_LAT"),
			MinLon: v.GetFloat64("REGION_MIN_LON"),
			MaxLon: v.GetFloat64("REGION_MAX_LON"),
		},
		Favorites: FavoritesConfig{
			Backend:    strings.ToLower(v.GetString("FAVORITES_BACKEND")),
			StorageKey: v.GetString("FAVORITES_STORAGE_KEY"),
			BoltPath:   v.GetString("FAVORITES_BOLT_PATH"),
			AppName:    v.GetString("APP_NAME"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Brokers: parseList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_FAVORITES_TOPIC"),
		},
		Notify: NotifyConfig{
			Backend: strings.ToLower(v.GetString("NOTIFY_BACKEND")),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			ReloadInterval:    time.Duration(v.GetInt("CATALOG_RELOAD_INTERVAL")) * time.Second,
		},
	}

	applyDefaults(cfg)

	if err := cfg.loadManifest(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Feeds.Dir == "" && cfg.Feeds.BaseURL == "" {
		cfg.Feeds.Dir = "data"
	}
	if cfg.Feeds.Timeout == 0 {
		cfg.Feeds.Timeout = 10 * time.Second
	}
	if cfg.Region.IsZero() {
		cfg.Region = domain.WalenseeRegion
	}
	if cfg.Favorites.Backend == "" {
		cfg.Favorites.Backend = FavoritesBackendBolt
	}
	if cfg.Favorites.StorageKey == "" {
		cfg.Favorites.StorageKey = "seeuferweg_favorites"
	}
	if cfg.Favorites.BoltPath == "" {
		cfg.Favorites.BoltPath = "data/favorites.db"
	}
	if cfg.Favorites.AppName == "" {
		cfg.Favorites.AppName = "seeuferweg"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 5
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "favorites-changed"
	}
	if cfg.Notify.Backend == "" {
		cfg.Notify.Backend = NotifyNone
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "catalog-reload-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
}

func (c *Config) loadManifest() error {
	if c.Feeds.ManifestPath == "" {
		c.Feeds.Sources = DefaultFeedSources()
		return nil
	}
	manifest, err := LoadFeedManifest(c.Feeds.ManifestPath)
	if err != nil {
		return err
	}
	if manifest.BaseURL != "" && c.Feeds.BaseURL == "" {
		c.Feeds.BaseURL = strings.TrimRight(manifest.BaseURL, "/")
	}
	c.Feeds.Sources = manifest.Feeds
	return nil
}

func (c *Config) validate() error {
	switch c.Favorites.Backend {
	case FavoritesBackendBolt, FavoritesBackendRedis, FavoritesBackendPostgres, FavoritesBackendMemory:
	default:
		return fmt.Errorf("unsupported FAVORITES_BACKEND %q", c.Favorites.Backend)
	}
	switch c.Notify.Backend {
	case NotifyNone, NotifyRedis:
	case NotifyKafka:
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("NOTIFY_BACKEND=kafka requires KAFKA_BROKERS")
		}
	default:
		return fmt.Errorf("unsupported NOTIFY_BACKEND %q", c.Notify.Backend)
	}
	if c.Region.MinLat > c.Region.MaxLat || c.Region.MinLon > c.Region.MaxLon {
		return fmt.Errorf("invalid region bounding box: %+v", c.Region)
	}
	return nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN - строка подключения в формате key=value для pgx
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
