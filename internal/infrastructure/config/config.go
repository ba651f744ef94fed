package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Config holds all configuration for the risk service.
type Config struct {
	GRPCPort    string
	HTTPPort    string
	MetricsPort string

	// ArtifactPath points at the frozen model artifact bundle on disk.
	ArtifactPath string
	// WatchArtifact enables automatic reload when the artifact file changes.
	WatchArtifact bool

	// RegistryURL is the optional Postgres model registry. When empty the
	// service loads artifacts from ArtifactPath only.
	RegistryURL string

	KafkaBrokers []string
	EventsTopic  string

	JWTSecret string
	JWTIssuer string

	TLSCertFile string
	TLSKeyFile  string

	OTLPEndpoint string

	// HighBillThreshold is the monthly charge above which the high-bill
	// heuristic fires.
	HighBillThreshold decimal.Decimal

	Environment string
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	threshold, err := decimal.NewFromString(getEnv("HIGH_BILL_THRESHOLD", "80"))
	if err != nil {
		return nil, fmt.Errorf("invalid HIGH_BILL_THRESHOLD: %w", err)
	}
	if threshold.IsNegative() {
		return nil, fmt.Errorf("HIGH_BILL_THRESHOLD must not be negative")
	}

	return &Config{
		GRPCPort:    getEnv("GRPC_PORT", "8090"),
		HTTPPort:    getEnv("HTTP_PORT", "9090"),
		MetricsPort: getEnv("METRICS_PORT", "9190"),

		ArtifactPath:  getEnv("MODEL_ARTIFACT_PATH", "models/churn_artifact.json"),
		WatchArtifact: getEnv("MODEL_ARTIFACT_WATCH", "true") == "true",

		RegistryURL: getEnv("MODEL_REGISTRY_URL", ""),

		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		EventsTopic:  getEnv("KAFKA_EVENTS_TOPIC", "risk.assessments"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer: getEnv("JWT_ISSUER", "churnwatch"),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),

		HighBillThreshold: threshold,

		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
	}, nil
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// MetricsAddress returns the full metrics listen address.
func (c *Config) MetricsAddress() string {
	return fmt.Sprintf(":%s", c.MetricsPort)
}

// TLSEnabled reports whether a certificate pair was configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
