package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type TrackingConfig struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	TrackingDB `yaml:"tracking_db"`
	Monitor    `yaml:"monitor"`
	Auth       `yaml:"auth"`
	Kafka      `yaml:"kafka"`
	Migrations `yaml:"migrations"`
}

type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type TrackingDB struct {
	Dsn string `yaml:"dsn" env:"TRACKING_DB_DSN"`
}

// Monitor configures the device connectivity sweep.
type Monitor struct {
	TimeoutWindow time.Duration `yaml:"timeout_window" env:"CONNECTION_TIMEOUT_WINDOW" env-default:"10m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"CONNECTION_SWEEP_INTERVAL" env-default:"5m"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

type Kafka struct {
	Host    string `yaml:"host" env:"KAFKA_HOST"`
	Port    string `yaml:"port" env:"KAFKA_PORT"`
	Enabled bool   `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
}

type Migrations struct {
	Path string `yaml:"path" env:"MIGRATIONS_PATH"`
}

func MustLoad() *TrackingConfig {
	configPath := os.Getenv("TRACKING_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("TRACKING_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg TrackingConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
