package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	RepositoryMemory   = "memory"
	RepositoryPostgres = "postgres"

	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Repository  RepositoryConfig
	Storage     StorageConfig
	S3          S3Config
	Provider    ProviderConfig
	Acquisition AcquisitionConfig
	Analyzer    AnalyzerConfig
	JWT         JWTConfig
	Analytics   AnalyticsConfig
	Log         LogConfig
	Metrics     MetricsConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"10m"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	MaxAcquisitions int64         `envconfig:"SERVER_MAX_CONCURRENT_ACQUISITIONS" default:"4"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"postgres"`
	Password        string        `envconfig:"DB_PASSWORD"`
	Name            string        `envconfig:"DB_NAME" default:"imagery"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	MigrationsPath  string        `envconfig:"DB_MIGRATIONS_PATH" default:"migrations"`
	AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type RepositoryConfig struct {
	Driver     string `envconfig:"REPOSITORY_DRIVER" default:"memory"`
	MemorySize int    `envconfig:"REPOSITORY_MEMORY_SIZE" default:"1000"`
}

type StorageConfig struct {
	Driver    string `envconfig:"STORAGE_DRIVER" default:"local"`
	LocalDir  string `envconfig:"STORAGE_LOCAL_DIR" default:"data"`
	PublicURL string `envconfig:"STORAGE_PUBLIC_URL" default:"/files"`
}

type S3Config struct {
	Endpoint        string `envconfig:"S3_ENDPOINT"`
	Region          string `envconfig:"S3_REGION" default:"us-east-1"`
	Bucket          string `envconfig:"S3_BUCKET"`
	AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `envconfig:"S3_USE_PATH_STYLE" default:"false"`
	PublicURL       string `envconfig:"S3_PUBLIC_URL"`
	KeyPrefix       string `envconfig:"S3_KEY_PREFIX"`
	// SignedURLTTL > 0 returns presigned URLs for private buckets.
	SignedURLTTL time.Duration `envconfig:"S3_SIGNED_URL_TTL" default:"0s"`
}

type ProviderConfig struct {
	DownwardBaseURL        string        `envconfig:"PROVIDER_DOWNWARD_BASE_URL" default:"https://khms1.google.com"`
	ObliqueBaseURL         string        `envconfig:"PROVIDER_OBLIQUE_BASE_URL" default:"https://khms1.googleapis.com"`
	DiscoveryURL           string        `envconfig:"PROVIDER_DISCOVERY_URL" default:"https://maps.googleapis.com/maps/api/js"`
	UserAgent              string        `envconfig:"PROVIDER_USER_AGENT" default:"Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/35.0.1916.114 Safari/537.36"`
	RequestTimeout         time.Duration `envconfig:"PROVIDER_REQUEST_TIMEOUT" default:"30s"`
	VersionCacheTTL        time.Duration `envconfig:"PROVIDER_VERSION_CACHE_TTL" default:"1h"`
	DiscoveryEnabled       bool          `envconfig:"PROVIDER_DISCOVERY_ENABLED" default:"true"`
	FallbackVersion        int           `envconfig:"ACQUISITION_FALLBACK_VERSION" default:"908"`
	FallbackObliqueVersion int           `envconfig:"ACQUISITION_FALLBACK_OBLIQUE_VERSION" default:"131"`
}

type AcquisitionConfig struct {
	IdenticalThreshold int  `envconfig:"ACQUISITION_IDENTICAL_THRESHOLD" default:"3"`
	MissingThreshold   int  `envconfig:"ACQUISITION_MISSING_THRESHOLD" default:"3"`
	StopAfterFirst     bool `envconfig:"ACQUISITION_STOP_AFTER_FIRST" default:"false"`
	JPEGQuality        int  `envconfig:"ACQUISITION_JPEG_QUALITY" default:"90"`
	DefaultImageSize   int  `envconfig:"ACQUISITION_DEFAULT_IMAGE_SIZE" default:"2048"`
}

type AnalyzerConfig struct {
	URL              string        `envconfig:"ANALYZER_URL"`
	APIToken         string        `envconfig:"ANALYZER_API_TOKEN"`
	BoxThreshold     float64       `envconfig:"ANALYZER_BOX_THRESHOLD" default:"0.2"`
	TextThreshold    float64       `envconfig:"ANALYZER_TEXT_THRESHOLD" default:"0.2"`
	OverlapThreshold float64       `envconfig:"ANALYZER_OVERLAP_THRESHOLD" default:"0.5"`
	Timeout          time.Duration `envconfig:"ANALYZER_TIMEOUT" default:"5m"`
}

func (c AnalyzerConfig) Enabled() bool {
	return c.URL != ""
}

type JWTConfig struct {
	SecretKey string `envconfig:"JWT_SECRET_KEY"`
	Issuer    string `envconfig:"JWT_ISSUER"`
}

func (c JWTConfig) Enabled() bool {
	return c.SecretKey != ""
}

type AnalyticsConfig struct {
	APIKey string `envconfig:"POSTHOG_API_KEY"`
	Host   string `envconfig:"POSTHOG_HOST" default:"https://us.i.posthog.com"`
}

func (c AnalyticsConfig) Enabled() bool {
	return c.APIKey != ""
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Repository.Driver {
	case RepositoryMemory:
	case RepositoryPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres repository")
		}
	default:
		return fmt.Errorf("unknown REPOSITORY_DRIVER %q", c.Repository.Driver)
	}

	switch c.Storage.Driver {
	case StorageLocal:
	case StorageS3:
		if c.S3.Bucket == "" || c.S3.AccessKeyID == "" || c.S3.SecretAccessKey == "" {
			return fmt.Errorf("S3_BUCKET, S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY are required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Acquisition.JPEGQuality < 1 || c.Acquisition.JPEGQuality > 100 {
		return fmt.Errorf("ACQUISITION_JPEG_QUALITY must be between 1 and 100")
	}
	return nil
}
