package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

type Config struct {
	Minio   *MinIOCfg
	Http    *HTTPConfig
	Grpc    *GRPCConfig
	Db      *PGDBCfg
	Redis   *RedisCfg
	Cache   *CacheCfg
	Kafka   *KafkaCfg
	Pricing *PricingCfg
	Tracing *TracingCfg
	Log     *LogCfg
}

type KafkaCfg struct {
	Topic               string        `env:"KAFKA_TOPIC" envDefault:"cart-events" validate:"required"`
	Brokers             []string      `env:"KAFKA_BROKERS" envSeparator:"," validate:"required,min=1,dive,hostname_port"`
	NetworkMode         string        `env:"KAFKA_NETWORK_MODE" envDefault:"tcp" validate:"oneof=tcp tcp4 tcp6"`
	Partitions          int           `env:"KAFKA_PARTITIONS" envDefault:"3" validate:"min=1"`
	ReplicationFactor   int           `env:"REPLICATION_FACTOR" envDefault:"1" validate:"min=1"`
	BatchSize           int           `env:"OUTBOX_BATCH_SIZE" envDefault:"100" validate:"min=1,max=1000"`
	ReconnectBackoff    time.Duration `env:"OUTBOX_RECONNECT_BACKOFF" envDefault:"2s"`
	ReconnectMaxBackoff time.Duration `env:"OUTBOX_RECONNECT_MAX_BACKOFF" envDefault:"30s"`
}

type MinIOCfg struct {
	MinioEndpoint     string        `env:"MINIO_ENDPOINT" envDefault:"minio:9000" validate:"required"` // Адрес конечной точки Minio
	BucketName        string        `env:"BUCKET_NAME" envDefault:"product-images" validate:"required"` // Название бакета с изображениями товаров
	MinioRootUser     string        `env:"MINIO_ROOT_USER"`                                              // Имя пользователя для доступа к Minio
	MinioRootPassword string        `env:"MINIO_ROOT_PASSWORD"`                                          // Пароль для доступа к Minio
	MinioUseSSL       bool          `env:"MINIO_USE_SSL" envDefault:"false"`
	UploadImagesLimit int           `env:"UPLOAD_IMAGES_LIMIT" envDefault:"10" validate:"min=1,max=50"` // Лимит на макс кол-во загружаемых в S3 фото
	MaxImageSize      int64         `env:"MAX_IMAGE_SIZE" envDefault:"15728640" validate:"min=1"`
	CleanupBackoff    time.Duration `env:"MINIO_CLEANUP_BACKOFF" envDefault:"1s"` // Пауза перед повторным удалением объекта
	CleanupMaxBackoff time.Duration `env:"MINIO_CLEANUP_MAX_BACKOFF" envDefault:"8s"`
}

type HTTPConfig struct {
	Port         string        `env:"HTTP_PORT" envDefault:"8080" validate:"required,numeric"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout  time.Duration `env:"KEEP_ALIVE" envDefault:"60s"`
}

type GRPCConfig struct {
	Port        string `env:"GRPC_PORT" envDefault:"8091" validate:"required,numeric"`
	NetworkMode string `env:"GRPC_NETWORK_MODE" envDefault:"tcp" validate:"oneof=tcp tcp4 tcp6"`
}

type PGDBCfg struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     string `env:"POSTGRES_PORT" envDefault:"5432" validate:"numeric"`
	User     string `env:"POSTGRES_USER" validate:"required"`
	Password string `env:"POSTGRES_PASSWORD" validate:"required"`
	DBName   string `env:"POSTGRES_DB" validate:"required"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

// DSN возвращает строку подключения для pgxpool и migrate.
func (c *PGDBCfg) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

type RedisCfg struct {
	Addr         string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password     string        `env:"REDIS_PASSWORD"`
	User         string        `env:"REDIS_USER"`
	DB           int           `env:"REDIS_DB_ID" envDefault:"0" validate:"min=0"`
	MaxRetries   int           `env:"MAX_RETRIES" envDefault:"3" validate:"min=0"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
	Timeout      time.Duration
}

// CacheCfg — кэш карточек товара. Провайдер memory не требует Redis.
type CacheCfg struct {
	Provider   string        `env:"CACHE_PROVIDER" envDefault:"redis" validate:"oneof=memory redis"`
	ProductTTL time.Duration `env:"PRODUCT_TTL" envDefault:"3m"`
	Size       int           `env:"CACHE_SIZE" envDefault:"1024" validate:"min=1"`
}

type PricingCfg struct {
	EnforceOwnership  bool `env:"PRICING_ENFORCE_OWNERSHIP" envDefault:"true"`
	CheckDependencies bool `env:"PRICING_CHECK_DEPENDENCIES" envDefault:"false"`
}

type TracingCfg struct {
	ServiceName    string `env:"SERVICE_NAME" envDefault:"bikeshop-backend" validate:"required"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT" validate:"omitempty,url"`
}

// Enabled сообщает, нужно ли экспортировать трейсы.
func (c *TracingCfg) Enabled() bool {
	return c.JaegerEndpoint != ""
}

type LogCfg struct {
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	Format string     `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

var cfgValidator = validator.New()

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
// Переменные из файла .env подхватываются, если файл есть; окружение процесса имеет приоритет.
func Load(log logger.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		log.Debugf(".env file not found, using process environment")
	}

	return parse(log, env.Options{})
}

// parse читает секции из окружения, описанного opts. Отдельно от Load ради тестов.
func parse(log logger.Logger, opts env.Options) (*Config, error) {
	c := &Config{
		Minio:   &MinIOCfg{},
		Http:    &HTTPConfig{},
		Grpc:    &GRPCConfig{},
		Db:      &PGDBCfg{},
		Redis:   &RedisCfg{},
		Cache:   &CacheCfg{},
		Kafka:   &KafkaCfg{},
		Pricing: &PricingCfg{},
		Tracing: &TracingCfg{},
		Log:     &LogCfg{},
	}

	sections := []struct {
		name string
		dst  any
	}{
		{"minio", c.Minio},
		{"http", c.Http},
		{"grpc", c.Grpc},
		{"postgres", c.Db},
		{"redis", c.Redis},
		{"cache", c.Cache},
		{"kafka", c.Kafka},
		{"pricing", c.Pricing},
		{"tracing", c.Tracing},
		{"log", c.Log},
	}

	for _, s := range sections {
		if err := env.ParseWithOptions(s.dst, opts); err != nil {
			log.Errorf(err, "invalid %s config", s.name)
			return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %s: %w", e.ErrIncorrectEnvVariable, s.name, err))
		}
		if err := cfgValidator.Struct(s.dst); err != nil {
			log.Errorf(err, "invalid %s config", s.name)
			return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %s: %w", e.ErrIncorrectEnvVariable, s.name, err))
		}
	}

	c.Redis.Timeout = max(c.Redis.ReadTimeout, c.Redis.WriteTimeout)

	return c, nil
}
