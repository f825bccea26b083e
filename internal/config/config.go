package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env     Env
	Server  ServerConfig
	Upload  UploadConfig
	Session SessionConfig
	NATS    NATSConfig
	Minio   MinioConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

// UploadConfig drives the session controller and the transfer driver
type UploadConfig struct {
	EndpointBase      string        `envconfig:"UPLOAD_ENDPOINT_BASE" default:"http://localhost:8012/api/cat/upload"`
	Strategy          string        `envconfig:"UPLOAD_STRATEGY" default:"streaming"`
	EagerProgress     int           `envconfig:"UPLOAD_EAGER_PROGRESS" default:"10"`
	Timeout           time.Duration `envconfig:"UPLOAD_TIMEOUT" default:"0s"`
	MaxErrorBodyBytes int64         `envconfig:"UPLOAD_MAX_ERROR_BODY" default:"65536"` // 64KB
	LockOnSuccess     bool          `envconfig:"UPLOAD_LOCK_ON_SUCCESS" default:"true"`
}

// Validate rejects settings the controller cannot honour. Progress reaches
// 100 only on a confirmed success, so the eager value must stay below it
func (c UploadConfig) Validate() error {
	if c.EagerProgress < 0 || c.EagerProgress >= 100 {
		return fmt.Errorf("UPLOAD_EAGER_PROGRESS must be within [0, 100), got %d", c.EagerProgress)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("UPLOAD_TIMEOUT must not be negative, got %s", c.Timeout)
	}
	return nil
}

type SessionConfig struct {
	TTL          time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	CleanupEvery time.Duration `envconfig:"SESSION_CLEANUP_EVERY" default:"5m"`
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" default:"UPLOAD_SESSIONS"`
	Subject      string `envconfig:"NATS_SUBJECT" default:"upload.sessions"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" default:"upload-watch"`
}

// Enabled reports whether session events should be published to NATS
func (c NATSConfig) Enabled() bool {
	return c.URL != ""
}

type MinioConfig struct {
	Endpoint   string `envconfig:"MINIO_ENDPOINT"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME" default:"uploads"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY"`
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

// Enabled reports whether minio:// locations can be selected
func (c MinioConfig) Enabled() bool {
	return c.Endpoint != ""
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Upload.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
