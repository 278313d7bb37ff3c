package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server struct {
		Addr         string        `yaml:"addr" env:"SERVER_ADDR" env-default:":8080"`
		ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"15s"`
	} `yaml:"server"`

	Database struct {
		// Driver is "sqlite" or "postgres".
		Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
		// DSN is a file path for sqlite, a connection string for postgres.
		DSN string `yaml:"dsn" env:"DATABASE_URL" env-default:"library.db"`
	} `yaml:"database"`

	Session struct {
		CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"library_session"`
		Secret     string `yaml:"secret" env:"SESSION_SECRET" env-default:"dev-only-secret"`
	} `yaml:"session"`

	Templates struct {
		Glob string `yaml:"glob" env:"TEMPLATES_GLOB" env-default:"web/templates/*.html"`
	} `yaml:"templates"`
}

// MustLoad reads configuration from the file named by CONFIG_PATH (or the
// -config flag) with environment overrides. Without a config file the
// defaults alone produce a runnable setup, so the binary starts bare.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configFlag := flag.String("config", "", "Path to configuration file")
		flag.Parse()
		configPath = *configFlag
	}

	var cfg Config
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("Failed to read configuration from environment: %v", err)
		}
		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file does not exist: %s", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
	return &cfg
}
