package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Body encodings accepted by the order intake.
const (
	BodyEncodingDouble = "double"
	BodyEncodingPlain  = "plain"
)

type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	GRPCAddr string `yaml:"grpc_addr"`

	Redis    RedisConfig    `yaml:"redis"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Temporal TemporalConfig `yaml:"temporal"`
	S3       S3Config       `yaml:"s3"`
	Intake   IntakeConfig   `yaml:"intake"`
	Log      LogConfig      `yaml:"log"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	PoolSize int    `yaml:"pool_size"`
}

type MySQLConfig struct {
	DSN          string        `yaml:"dsn"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	ConnLifetime time.Duration `yaml:"conn_lifetime"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type TemporalConfig struct {
	HostPort            string        `yaml:"host_port"`
	Namespace           string        `yaml:"namespace"`
	TaskQueue           string        `yaml:"task_queue"`
	ActivityTimeout     time.Duration `yaml:"activity_timeout"`
	ActivityMaxAttempts int32         `yaml:"activity_max_attempts"`
}

type S3Config struct {
	Bucket       string        `yaml:"bucket"`
	Region       string        `yaml:"region"`
	Endpoint     string        `yaml:"endpoint"`
	AccessKey    string        `yaml:"access_key"`
	SecretKey    string        `yaml:"secret_key"`
	UsePathStyle bool          `yaml:"use_path_style"`
	UploadURLTTL time.Duration `yaml:"upload_url_ttl"`
}

type IntakeConfig struct {
	// BodyEncoding is "double" (a JSON string holding the JSON payload, the
	// contract existing clients send) or "plain".
	BodyEncoding string `yaml:"body_encoding"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used for local development.
func Default() *Config {
	return &Config{
		HTTPAddr: ":8080",
		GRPCAddr: ":50051",
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 100,
		},
		MySQL: MySQLConfig{
			DSN:          "root:root@tcp(localhost:3306)/shop?parseTime=true",
			MaxOpenConns: 50,
			MaxIdleConns: 25,
			ConnLifetime: 5 * time.Minute,
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017/?directConnection=true",
			Database: "shop_db",
		},
		Temporal: TemporalConfig{
			HostPort:            "127.0.0.1:7233",
			Namespace:           "default",
			TaskQueue:           "order-fulfillment",
			ActivityTimeout:     time.Minute,
			ActivityMaxAttempts: 1,
		},
		S3: S3Config{
			Bucket:       "item-images",
			Region:       "us-east-1",
			UploadURLTTL: 60 * time.Second,
		},
		Intake: IntakeConfig{
			BodyEncoding: BodyEncodingDouble,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.HTTPAddr, "HTTP_ADDR")
	setString(&c.GRPCAddr, "GRPC_ADDR")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.MySQL.DSN, "MYSQL_DSN")
	setString(&c.Mongo.URI, "MONGO_URI")
	setString(&c.Mongo.Database, "MONGO_DATABASE")
	setString(&c.Temporal.HostPort, "TEMPORAL_HOST")
	setString(&c.Temporal.Namespace, "TEMPORAL_NAMESPACE")
	setString(&c.Temporal.TaskQueue, "TEMPORAL_TASK_QUEUE")
	setString(&c.S3.Bucket, "S3_BUCKET")
	setString(&c.S3.Region, "S3_REGION")
	setString(&c.S3.Endpoint, "S3_ENDPOINT")
	setString(&c.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&c.S3.SecretKey, "S3_SECRET_KEY")
	setString(&c.Intake.BodyEncoding, "ORDER_BODY_ENCODING")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v, ok := os.LookupEnv("UPLOAD_URL_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("UPLOAD_URL_TTL: %w", err)
		}
		c.S3.UploadURLTTL = d
	}
	if v, ok := os.LookupEnv("ACTIVITY_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ACTIVITY_TIMEOUT: %w", err)
		}
		c.Temporal.ActivityTimeout = d
	}
	if v, ok := os.LookupEnv("ACTIVITY_MAX_ATTEMPTS"); ok {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("ACTIVITY_MAX_ATTEMPTS: %w", err)
		}
		c.Temporal.ActivityMaxAttempts = int32(n)
	}
	if v, ok := os.LookupEnv("S3_USE_PATH_STYLE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("S3_USE_PATH_STYLE: %w", err)
		}
		c.S3.UsePathStyle = b
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Intake.BodyEncoding != BodyEncodingDouble && c.Intake.BodyEncoding != BodyEncodingPlain {
		errs = append(errs, fmt.Errorf("intake.body_encoding must be %q or %q, got %q",
			BodyEncodingDouble, BodyEncodingPlain, c.Intake.BodyEncoding))
	}
	if c.S3.UploadURLTTL <= 0 {
		errs = append(errs, errors.New("s3.upload_url_ttl must be positive"))
	}
	if c.Temporal.ActivityMaxAttempts < 1 {
		errs = append(errs, errors.New("temporal.activity_max_attempts must be at least 1"))
	}
	if c.Temporal.ActivityTimeout <= 0 {
		errs = append(errs, errors.New("temporal.activity_timeout must be positive"))
	}
	if c.Temporal.TaskQueue == "" {
		errs = append(errs, errors.New("temporal.task_queue is required"))
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if value, exists := os.LookupEnv(key); exists {
		*dst = value
	}
}
