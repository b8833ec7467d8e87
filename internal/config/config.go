// Package config loads service configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	WhisperURL     string        `env:"WHISPER_URL,required"`
	WhisperModel   string        `env:"WHISPER_MODEL" envDefault:"whisper-1"`
	WhisperTimeout time.Duration `env:"WHISPER_TIMEOUT" envDefault:"120s"`

	FaceMeshURL     string        `env:"FACEMESH_URL"`
	FaceMeshTimeout time.Duration `env:"FACEMESH_TIMEOUT" envDefault:"30s"`

	HTTPAddr     string        `env:"HTTP_ADDR" envDefault:":8000"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"60s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"120s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`

	// MaxUploadBytes caps multipart upload size; MaxFetchBytes caps remote
	// media downloads.
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" envDefault:"104857600"`
	MaxFetchBytes  int64         `env:"MAX_FETCH_BYTES" envDefault:"209715200"`
	FetchTimeout   time.Duration `env:"FETCH_TIMEOUT" envDefault:"60s"`

	// Workers sizes the analysis worker pool shared by the HTTP surface and
	// the watch directory.
	Workers int `env:"WORKERS" envDefault:"4"`

	// WatchDir enables directory-watch ingestion when set: media dropped in
	// the directory is analyzed and results are written as JSON sidecars.
	WatchDir      string        `env:"WATCH_DIR"`
	WatchDebounce time.Duration `env:"WATCH_DEBOUNCE" envDefault:"2s"`

	// MQTTBrokerURL enables analysis-event publishing when set.
	MQTTBrokerURL string `env:"MQTT_BROKER_URL"`
	MQTTTopic     string `env:"MQTT_TOPIC" envDefault:"chirp/analysis"`
	MQTTClientID  string `env:"MQTT_CLIENT_ID" envDefault:"chirp-ai"`
	MQTTUsername  string `env:"MQTT_USERNAME"`
	MQTTPassword  string `env:"MQTT_PASSWORD"`

	S3 S3Config `envPrefix:"S3_"`

	AuthToken string `env:"AUTH_TOKEN"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// S3Config configures the optional s3:// media fetcher. Fetching by s3 URL
// is disabled unless Bucket access is configured.
type S3Config struct {
	Endpoint  string `env:"ENDPOINT"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
}

// Enabled reports whether s3 fetching is configured.
func (c S3Config) Enabled() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

// Overrides holds CLI flag values that take priority over env vars.
type Overrides struct {
	EnvFile    string
	HTTPAddr   string
	LogLevel   string
	WhisperURL string
	WatchDir   string
}

// Load reads configuration from .env file, environment variables, and CLI overrides.
// Priority: CLI flags > environment variables > .env file > struct defaults.
func Load(overrides Overrides) (*Config, error) {
	// Load .env file (silent if missing)
	envFile := overrides.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		_ = godotenv.Load(envFile)
	}

	// Parse environment variables into config struct
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Apply CLI overrides (non-empty values win)
	if overrides.HTTPAddr != "" {
		cfg.HTTPAddr = overrides.HTTPAddr
	}
	if overrides.LogLevel != "" {
		cfg.LogLevel = overrides.LogLevel
	}
	if overrides.WhisperURL != "" {
		cfg.WhisperURL = overrides.WhisperURL
	}
	if overrides.WatchDir != "" {
		cfg.WatchDir = overrides.WatchDir
	}

	return cfg, nil
}
