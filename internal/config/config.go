package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreSpanner = "spanner"
	StoreMemory  = "memory"

	UploadDrive = "drive"
	UploadLocal = "local"
)

type Config struct {
	HTTPAddr    string
	GRPCAddr    string
	MetricsAddr string

	StoreDriver     string
	SpannerDatabase string

	JWTSecret   string
	AdminEmails []string

	KafkaConfig   KafkaConfig
	JobsConfig    JobsConfig
	SMTPConfig    SMTPConfig
	UploadConfig  UploadConfig
	SpeechConfig  SpeechConfig
	TracingConfig TracingConfig
	LoggingConfig LoggingConfig
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type JobsConfig struct {
	OutboxInterval    time.Duration
	OutboxBatchSize   int
	SubscriptionSweep time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

type UploadConfig struct {
	Driver               string
	DriveCredentialsFile string
	DriveFolderID        string
	Dir                  string
	PublicBaseURL        string
}

type SpeechConfig struct {
	APIKey string
	Model  string
	Voice  string
}

type TracingConfig struct {
	CollectorHost string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		GRPCAddr:    env("GRPC_ADDR", ":50051"),
		MetricsAddr: env("METRICS_ADDR", ":9090"),

		StoreDriver:     env("STORE_DRIVER", StoreSpanner),
		SpannerDatabase: env("SPANNER_DATABASE", "projects/test-project/instances/emulator-instance/databases/test-db"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminEmails: list(os.Getenv("ADMIN_EMAILS")),

		KafkaConfig: KafkaConfig{
			Brokers: list(os.Getenv("KAFKA_BROKERS")),
			Topic:   env("KAFKA_TOPIC", "storefront.events"),
		},
		JobsConfig: JobsConfig{
			OutboxInterval:    duration("OUTBOX_INTERVAL", 5*time.Second),
			OutboxBatchSize:   integer("OUTBOX_BATCH_SIZE", 100),
			SubscriptionSweep: duration("SUBSCRIPTION_SWEEP_INTERVAL", 10*time.Minute),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     integer("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("MAIL_FROM"),
			To:       os.Getenv("ADMIN_NOTIFY_EMAIL"),
		},
		UploadConfig: UploadConfig{
			Driver:               env("UPLOAD_DRIVER", UploadLocal),
			DriveCredentialsFile: os.Getenv("DRIVE_CREDENTIALS_FILE"),
			DriveFolderID:        os.Getenv("DRIVE_FOLDER_ID"),
			Dir:                  env("UPLOAD_DIR", "public/uploads"),
			PublicBaseURL:        env("PUBLIC_BASE_URL", "http://localhost:8080"),
		},
		SpeechConfig: SpeechConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  os.Getenv("TTS_MODEL"),
			Voice:  os.Getenv("TTS_VOICE"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		LoggingConfig: LoggingConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "json"),
		},
	}
}

func env(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func integer(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}

func duration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func list(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
