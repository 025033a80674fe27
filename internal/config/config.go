package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	// Auth. JWTSecretName, when set, names a Secret Manager secret that
	// overrides JWTSecret at startup.
	JWTSecret     string `envconfig:"JWT_SECRET"`
	JWTSecretName string `envconfig:"JWT_SECRET_NAME"`

	// Catalog
	CatalogSource      string `envconfig:"CATALOG_SOURCE" default:"memory"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING"`
	DBMaxConns         int32  `envconfig:"DB_MAX_CONNS" default:"10"`

	// Sessions
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"2h"`

	// Completion collaborators
	GCPProjectID          string        `envconfig:"GCP_PROJECT_ID"`
	PubSubEmulatorHost    string        `envconfig:"PUBSUB_EMULATOR_HOST"`
	PubSubCompletionTopic string        `envconfig:"PUBSUB_COMPLETION_TOPIC" default:"course-completed"`
	NotifyTimeout         time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"10s"`

	// Lesson resources
	S3URL          string        `envconfig:"S3_URL"`
	S3Bucket       string        `envconfig:"S3_BUCKET"`
	S3Region       string        `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey    string        `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey    string        `envconfig:"S3_SECRET_KEY"`
	ResourceURLTTL time.Duration `envconfig:"RESOURCE_URL_TTL" default:"15m"`

	// Certificates
	CertificateFontPath string `envconfig:"CERTIFICATE_FONT_PATH"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UsePostgresCatalog reports whether the catalog is served from Postgres.
func (c *Config) UsePostgresCatalog() bool {
	return c.CatalogSource == "postgres"
}

// PublishCompletions reports whether completion events go to Pub/Sub.
func (c *Config) PublishCompletions() bool {
	return c.GCPProjectID != "" && c.PubSubCompletionTopic != ""
}

// ResourceBucketConfigured reports whether lesson resources are presigned
// from object storage.
func (c *Config) ResourceBucketConfigured() bool {
	return c.S3Bucket != ""
}
